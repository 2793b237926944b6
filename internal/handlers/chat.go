package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eldtechnologies/converse/internal/models"
)

// ChatMessageRequest represents the chat message request.
type ChatMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
	Provider  string `json:"provider,omitempty"`
}

// ChatMessageResponse represents the chat message response.
type ChatMessageResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
	Provider  string `json:"provider"`
}

// HistoryResponse represents the conversation history response.
type HistoryResponse struct {
	Messages []models.Message `json:"messages"`
}

// ClearRequest represents the clear conversation request.
type ClearRequest struct {
	SessionID string `json:"sessionId"`
}

// ClearResponse represents the clear conversation response.
type ClearResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ChatMessage handles sending a message and generating a reply.
func (h *Handler) ChatMessage(w http.ResponseWriter, r *http.Request) {
	var req ChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.chat.HandleMessage(r.Context(), req.Message, req.SessionID, req.Provider)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, ChatMessageResponse{
		Reply:     result.Reply,
		SessionID: result.ConversationID,
		Provider:  result.Provider,
	})
}

// ChatHistory handles fetching the ordered history of a conversation.
func (h *Handler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	messages, err := h.chat.History(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	h.JSON(w, http.StatusOK, HistoryResponse{Messages: messages})
}

// ClearConversation handles deleting all messages of a conversation. The
// conversation record itself is kept, so a later history call answers with an
// empty list.
func (h *Handler) ClearConversation(w http.ResponseWriter, r *http.Request) {
	var req ClearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.chat.Clear(r.Context(), req.SessionID); err != nil {
		h.writeError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, ClearResponse{
		Success: true,
		Message: "Conversation cleared.",
	})
}
