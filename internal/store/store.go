package store

import (
	"context"

	"github.com/eldtechnologies/converse/internal/models"
)

// Store defines the interface for persistent conversation storage.
// SQLiteStore, PostgresStore and RedisStore implement this interface.
//
// GetConversation returns (nil, nil) when no conversation matches the id.
// AppendMessage assigns the message ID and timestamp when unset.
// ListMessages returns messages ordered by timestamp ascending, id ascending.
// DeleteMessages removes all messages for a conversation but keeps the
// conversation record itself; deleting from an empty or unknown conversation
// is not an error.
type Store interface {
	// Connection management
	Close()
	Ping(ctx context.Context) error

	// Conversation operations
	CreateConversation(ctx context.Context) (*models.Conversation, error)
	GetConversation(ctx context.Context, id string) (*models.Conversation, error)

	// Message operations
	AppendMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, conversationID string) ([]models.Message, error)
	DeleteMessages(ctx context.Context, conversationID string) error
}
