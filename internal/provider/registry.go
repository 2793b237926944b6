package provider

import (
	"fmt"
	"sort"
)

// Registry maps provider discriminators to implementations. Lookup is strict;
// defaulting for unknown choices is the caller's policy, via Resolve.
type Registry struct {
	providers   map[string]Provider
	defaultName string
}

// NewRegistry builds a registry from the given providers. defaultName must
// match one of them.
func NewRegistry(defaultName string, providers ...Provider) (*Registry, error) {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	if _, ok := m[defaultName]; !ok {
		return nil, fmt.Errorf("default provider %q is not registered", defaultName)
	}
	return &Registry{providers: m, defaultName: defaultName}, nil
}

// Get returns the provider for an exact discriminator match.
func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Resolve returns the provider for the given choice, falling back to the
// default provider when the choice is absent or unrecognized. Defaulting is
// deliberate: an unknown choice is not an error.
func (r *Registry) Resolve(choice string) Provider {
	if p, ok := r.providers[choice]; ok {
		return p
	}
	return r.providers[r.defaultName]
}

// Names returns the registered discriminators in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
