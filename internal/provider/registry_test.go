package provider

import (
	"context"
	"testing"
)

type stubProvider struct {
	name string
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Complete(_ context.Context, _ string, _ []Turn, _ string) (string, error) {
	return "stub", nil
}

func TestNewRegistryRejectsUnknownDefault(t *testing.T) {
	_, err := NewRegistry("missing", &stubProvider{name: "groq"})
	if err == nil {
		t.Fatal("expected error for unregistered default provider")
	}
}

func TestRegistryGetIsStrict(t *testing.T) {
	r, err := NewRegistry("groq", &stubProvider{name: "groq"}, &stubProvider{name: "openai"})
	if err != nil {
		t.Fatal(err)
	}

	if p, ok := r.Get("openai"); !ok || p.Name() != "openai" {
		t.Fatalf("expected exact match for openai, got %v %v", p, ok)
	}
	if _, ok := r.Get("unknown-value"); ok {
		t.Fatal("Get must not substitute for unknown discriminators")
	}
}

func TestRegistryResolveDefaults(t *testing.T) {
	r, err := NewRegistry("groq", &stubProvider{name: "groq"}, &stubProvider{name: "openai"})
	if err != nil {
		t.Fatal(err)
	}

	for _, choice := range []string{"", "unknown-value", "GROQ"} {
		if p := r.Resolve(choice); p.Name() != "groq" {
			t.Fatalf("choice %q: expected default groq, got %q", choice, p.Name())
		}
	}
	if p := r.Resolve("openai"); p.Name() != "openai" {
		t.Fatalf("expected openai, got %q", p.Name())
	}
}

func TestRegistryNames(t *testing.T) {
	r, err := NewRegistry("groq", &stubProvider{name: "groq"}, &stubProvider{name: "openai"})
	if err != nil {
		t.Fatal(err)
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "groq" || names[1] != "openai" {
		t.Fatalf("unexpected names: %v", names)
	}
}
