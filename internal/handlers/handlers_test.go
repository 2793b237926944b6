package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eldtechnologies/converse/internal/api"
	"github.com/eldtechnologies/converse/internal/chat"
	"github.com/eldtechnologies/converse/internal/handlers"
	"github.com/eldtechnologies/converse/internal/models"
	"github.com/eldtechnologies/converse/internal/provider"
)

// memStore is an in-memory Store implementation for handler tests.
type memStore struct {
	conversations map[string]*models.Conversation
	messages      map[string][]models.Message
	seq           int
}

func newMemStore() *memStore {
	return &memStore{
		conversations: make(map[string]*models.Conversation),
		messages:      make(map[string][]models.Message),
	}
}

func (s *memStore) Close() {}

func (s *memStore) Ping(_ context.Context) error { return nil }

func (s *memStore) CreateConversation(_ context.Context) (*models.Conversation, error) {
	s.seq++
	conv := &models.Conversation{ID: fmt.Sprintf("conv-%d", s.seq)}
	s.conversations[conv.ID] = conv
	return conv, nil
}

func (s *memStore) GetConversation(_ context.Context, id string) (*models.Conversation, error) {
	return s.conversations[id], nil
}

func (s *memStore) AppendMessage(_ context.Context, msg *models.Message) error {
	s.seq++
	if msg.ID == "" {
		msg.ID = fmt.Sprintf("msg-%d", s.seq)
	}
	if msg.Timestamp == 0 {
		msg.Timestamp = int64(s.seq)
	}
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], *msg)
	return nil
}

func (s *memStore) ListMessages(_ context.Context, conversationID string) ([]models.Message, error) {
	msgs := s.messages[conversationID]
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *memStore) DeleteMessages(_ context.Context, conversationID string) error {
	delete(s.messages, conversationID)
	return nil
}

// fakeProvider returns a canned reply or error.
type fakeProvider struct {
	name  string
	reply string
	err   error
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Complete(_ context.Context, _ string, _ []provider.Turn, _ string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeProvider) {
	t.Helper()
	st := newMemStore()
	groq := &fakeProvider{name: "groq", reply: "We offer several plans."}
	oai := &fakeProvider{name: "openai", reply: "OpenAI reply."}
	registry, err := provider.NewRegistry("groq", groq, oai)
	if err != nil {
		t.Fatal(err)
	}
	svc := chat.NewService(st, registry, "prompt", zerolog.Nop())
	srv := httptest.NewServer(api.NewRouter(zerolog.Nop(), svc, st))
	t.Cleanup(srv.Close)
	return srv, groq
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatal(err)
	}
}

func TestChatMessageScenario(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/chat/message", handlers.ChatMessageRequest{
		Message:  "What plans do you offer?",
		Provider: "groq",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var msgResp handlers.ChatMessageResponse
	decodeJSON(t, resp, &msgResp)
	if msgResp.Reply == "" {
		t.Fatal("expected a non-empty reply")
	}
	if msgResp.SessionID == "" {
		t.Fatal("expected a generated session id")
	}
	if msgResp.Provider != "groq" {
		t.Fatalf("expected provider groq, got %q", msgResp.Provider)
	}

	// Follow-up history shows exactly the user turn and the ai turn, in order.
	histResp, err := http.Get(srv.URL + "/chat/history/" + msgResp.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if histResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", histResp.StatusCode)
	}

	var hist handlers.HistoryResponse
	decodeJSON(t, histResp, &hist)
	if len(hist.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(hist.Messages))
	}
	if hist.Messages[0].Sender != models.SenderUser || hist.Messages[0].Text != "What plans do you offer?" {
		t.Fatalf("unexpected first message: %+v", hist.Messages[0])
	}
	if hist.Messages[1].Sender != models.SenderAI {
		t.Fatalf("unexpected second message: %+v", hist.Messages[1])
	}
}

func TestChatMessageValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/chat/message", handlers.ChatMessageRequest{Message: "   "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body map[string]string
	decodeJSON(t, resp, &body)
	if body["error"] == "" {
		t.Fatal("expected an error message")
	}
}

func TestChatMessageUnknownProviderDefaults(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/chat/message", handlers.ChatMessageRequest{
		Message:  "hi",
		Provider: "unknown-value",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var msgResp handlers.ChatMessageResponse
	decodeJSON(t, resp, &msgResp)
	if msgResp.Provider != "groq" {
		t.Fatalf("expected default provider groq, got %q", msgResp.Provider)
	}
}

func TestChatMessageProviderFailure(t *testing.T) {
	srv, groq := newTestServer(t)

	// First cycle succeeds to obtain a session.
	resp := postJSON(t, srv.URL+"/chat/message", handlers.ChatMessageRequest{Message: "hi"})
	var msgResp handlers.ChatMessageResponse
	decodeJSON(t, resp, &msgResp)

	groq.err = &provider.Error{Provider: "groq", Err: errors.New("upstream down")}
	resp = postJSON(t, srv.URL+"/chat/message", handlers.ChatMessageRequest{
		Message:   "second question",
		SessionID: msgResp.SessionID,
	})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The failed cycle's user message is visible in history; no ai reply was
	// appended for it.
	histResp, err := http.Get(srv.URL + "/chat/history/" + msgResp.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	var hist handlers.HistoryResponse
	decodeJSON(t, histResp, &hist)
	if len(hist.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(hist.Messages))
	}
	last := hist.Messages[len(hist.Messages)-1]
	if last.Sender != models.SenderUser || last.Text != "second question" {
		t.Fatalf("unexpected last message: %+v", last)
	}
}

func TestHistoryUnknownSession(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/chat/history/no-such-session")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestClearUnknownSessionSucceeds(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/chat/clear", handlers.ClearRequest{SessionID: "no-such-session"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body handlers.ClearResponse
	decodeJSON(t, resp, &body)
	if !body.Success {
		t.Fatal("expected success true")
	}
}

func TestClearRequiresSessionID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/chat/clear", handlers.ClearRequest{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var health handlers.HealthResponse
	decodeJSON(t, resp, &health)
	if health.Status != "ok" {
		t.Fatalf("expected status ok, got %q", health.Status)
	}
}
