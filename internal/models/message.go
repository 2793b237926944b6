package models

// Message sender values.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Message represents one turn within a conversation. Messages are immutable
// once persisted; history order is timestamp ascending with the ULID id
// breaking ties by insertion order.
type Message struct {
	ID             string `json:"id"` // ULID
	ConversationID string `json:"conversationId"`
	Sender         string `json:"sender"` // "user" or "ai"
	Text           string `json:"text"`
	Timestamp      int64  `json:"timestamp"` // Unix ms
}
