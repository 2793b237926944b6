package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/eldtechnologies/converse/internal/models"
)

// RedisStore handles Redis operations for conversations and messages.
// Messages live in a sorted set scored by timestamp; members serialize with
// the ULID id first, so equal scores still sort in insertion order.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis store.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() {
	s.client.Close()
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// conversationKey returns the key for a conversation record.
func conversationKey(id string) string {
	return fmt.Sprintf("conv:%s", id)
}

// messagesKey returns the key for a conversation's message sorted set.
func messagesKey(conversationID string) string {
	return fmt.Sprintf("conv:%s:messages", conversationID)
}

// CreateConversation creates a new conversation record.
func (s *RedisStore) CreateConversation(ctx context.Context) (*models.Conversation, error) {
	conv := &models.Conversation{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}

	err := s.client.HSet(ctx, conversationKey(conv.ID),
		"id", conv.ID,
		"created_at", conv.CreatedAt.Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return nil, err
	}

	return conv, nil
}

// GetConversation retrieves a conversation by ID.
func (s *RedisStore) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	fields, err := s.client.HGetAll(ctx, conversationKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, err
	}

	return &models.Conversation{ID: fields["id"], CreatedAt: createdAt}, nil
}

// AppendMessage stores a message. ID and timestamp are assigned when unset.
func (s *RedisStore) AppendMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = ulid.Make().String()
	}
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().UnixMilli()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.client.ZAdd(ctx, messagesKey(msg.ConversationID), redis.Z{
		Score:  float64(msg.Timestamp),
		Member: string(data),
	}).Err()
}

// ListMessages retrieves all messages for a conversation in history order.
func (s *RedisStore) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	raw, err := s.client.ZRange(ctx, messagesKey(conversationID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	for _, item := range raw {
		var msg models.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

// DeleteMessages removes all messages for a conversation. The conversation
// record is kept.
func (s *RedisStore) DeleteMessages(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, messagesKey(conversationID)).Err()
}
