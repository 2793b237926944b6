// Package chat implements the reply orchestration core: it resolves or
// creates the conversation for a request, reconstructs ordered dialogue
// history, dispatches to the selected LLM provider and persists both sides of
// the exchange.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eldtechnologies/converse/internal/metrics"
	"github.com/eldtechnologies/converse/internal/models"
	"github.com/eldtechnologies/converse/internal/provider"
	"github.com/eldtechnologies/converse/internal/store"
)

// Result is the outcome of a successful orchestration cycle.
type Result struct {
	Reply          string
	ConversationID string
	Provider       string
}

// Service coordinates conversation resolution, provider dispatch and
// persistence. It holds no per-request state; the store is the only shared
// mutable resource.
type Service struct {
	store        store.Store
	providers    *provider.Registry
	systemPrompt string
	logger       zerolog.Logger
}

// NewService creates a chat service with all collaborators injected.
func NewService(st store.Store, providers *provider.Registry, systemPrompt string, logger zerolog.Logger) *Service {
	return &Service{
		store:        st,
		providers:    providers,
		systemPrompt: systemPrompt,
		logger:       logger,
	}
}

// HandleMessage runs one orchestration cycle: validate, resolve provider and
// conversation, persist the user message, generate a reply, persist it.
//
// The user message is committed before the provider call, so it survives a
// generation failure; an unanswered user turn is a legitimate, visible state.
// On provider failure no reply is persisted and the classified error is
// returned without any internal retry.
func (s *Service) HandleMessage(ctx context.Context, message, sessionID, providerChoice string) (*Result, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &ValidationError{Reason: "message is required and must be a non-empty string"}
	}

	// Unknown or absent choice falls back to the configured default provider.
	p := s.providers.Resolve(providerChoice)

	conv, history, err := s.resolveConversation(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	userMsg := &models.Message{
		ConversationID: conv.ID,
		Sender:         models.SenderUser,
		Text:           message,
	}
	if err := s.store.AppendMessage(ctx, userMsg); err != nil {
		return nil, &StoreError{Op: "append user message", Err: err}
	}

	start := time.Now()
	reply, err := p.Complete(ctx, s.systemPrompt, provider.FromMessages(history), message)
	metrics.ProviderLatency.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MessagesHandled.WithLabelValues(p.Name(), "error").Inc()
		s.logger.Error().
			Err(err).
			Str("provider", p.Name()).
			Str("conversation_id", conv.ID).
			Msg("generation failed")
		return nil, err
	}

	aiMsg := &models.Message{
		ConversationID: conv.ID,
		Sender:         models.SenderAI,
		Text:           reply,
	}
	if err := s.store.AppendMessage(ctx, aiMsg); err != nil {
		return nil, &StoreError{Op: "append ai message", Err: err}
	}

	metrics.MessagesHandled.WithLabelValues(p.Name(), "ok").Inc()

	return &Result{
		Reply:          reply,
		ConversationID: conv.ID,
		Provider:       p.Name(),
	}, nil
}

// resolveConversation finds the conversation for a session id and loads its
// ordered history. An absent or unknown session id silently starts a new
// conversation; it must never fail the request. The new conversation is
// persisted before any message, so a caller can retry against the same id
// even if a later step fails.
func (s *Service) resolveConversation(ctx context.Context, sessionID string) (*models.Conversation, []models.Message, error) {
	if sessionID != "" {
		conv, err := s.store.GetConversation(ctx, sessionID)
		if err != nil {
			return nil, nil, &StoreError{Op: "get conversation", Err: err}
		}
		if conv != nil {
			history, err := s.store.ListMessages(ctx, conv.ID)
			if err != nil {
				return nil, nil, &StoreError{Op: "list messages", Err: err}
			}
			return conv, history, nil
		}
	}

	conv, err := s.store.CreateConversation(ctx)
	if err != nil {
		return nil, nil, &StoreError{Op: "create conversation", Err: err}
	}
	metrics.ConversationsCreated.Inc()
	return conv, nil, nil
}

// History returns all messages of a conversation in timestamp order. A
// cleared conversation answers with an empty list, not a not-found error.
func (s *Service) History(ctx context.Context, sessionID string) ([]models.Message, error) {
	conv, err := s.store.GetConversation(ctx, sessionID)
	if err != nil {
		return nil, &StoreError{Op: "get conversation", Err: err}
	}
	if conv == nil {
		return nil, &NotFoundError{Resource: "conversation"}
	}

	messages, err := s.store.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, &StoreError{Op: "list messages", Err: err}
	}
	return messages, nil
}

// Clear deletes all messages of a conversation while keeping the conversation
// record. It is idempotent: clearing an empty or unknown conversation
// succeeds.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return &ValidationError{Reason: "session ID is required"}
	}
	if err := s.store.DeleteMessages(ctx, sessionID); err != nil {
		return &StoreError{Op: "delete messages", Err: err}
	}
	metrics.ConversationsCleared.Inc()
	return nil
}

// Providers returns the registered provider discriminators.
func (s *Service) Providers() []string {
	return s.providers.Names()
}
