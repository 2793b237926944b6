package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/eldtechnologies/converse/internal/chat"
	"github.com/eldtechnologies/converse/internal/models"
	"github.com/eldtechnologies/converse/internal/provider"
	"github.com/eldtechnologies/converse/internal/store"
)

// ChatService is the orchestration surface the HTTP layer depends on.
type ChatService interface {
	HandleMessage(ctx context.Context, message, sessionID, providerChoice string) (*chat.Result, error)
	History(ctx context.Context, sessionID string) ([]models.Message, error)
	Clear(ctx context.Context, sessionID string) error
}

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	chat   ChatService
	store  store.Store
	logger zerolog.Logger
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(chatSvc ChatService, st store.Store, logger zerolog.Logger) *Handler {
	return &Handler{chat: chatSvc, store: st, logger: logger}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// writeError maps a classified orchestration error to a stable response
// shape. Internal causes are logged, not leaked to the caller.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var validationErr *chat.ValidationError
	if errors.As(err, &validationErr) {
		h.Error(w, http.StatusBadRequest, validationErr.Reason)
		return
	}

	var notFoundErr *chat.NotFoundError
	if errors.As(err, &notFoundErr) {
		h.Error(w, http.StatusNotFound, "Conversation not found.")
		return
	}

	var providerErr *provider.Error
	if errors.As(err, &providerErr) {
		h.logger.Error().Err(err).Str("provider", providerErr.Provider).Msg("provider failure")
		h.Error(w, http.StatusInternalServerError,
			"Failed to reach AI agent ("+providerErr.Provider+"). Please try again later.")
		return
	}

	var storeErr *chat.StoreError
	if errors.As(err, &storeErr) {
		h.logger.Error().Err(err).Str("op", storeErr.Op).Msg("store failure")
		h.Error(w, http.StatusInternalServerError, "database error")
		return
	}

	h.logger.Error().Err(err).Msg("unexpected error")
	h.Error(w, http.StatusInternalServerError, "An unexpected error occurred.")
}
