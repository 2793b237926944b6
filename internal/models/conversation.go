package models

import "time"

// Conversation represents a durable dialogue thread. A conversation with zero
// messages is valid (freshly created or cleared).
type Conversation struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
