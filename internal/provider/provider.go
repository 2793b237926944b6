// Package provider normalizes heterogeneous LLM vendor APIs into a single
// completion contract. Each variant carries fixed per-vendor decoding settings;
// callers never see a vendor-specific request or response shape.
package provider

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/eldtechnologies/converse/internal/models"
)

// Chat roles in the completion request.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// FallbackReply is returned when the upstream call succeeds but carries no
// usable text. It is a soft success, not an error.
const FallbackReply = "I'm sorry, I couldn't generate a reply."

// Turn is one prior exchange supplied as context to a provider.
type Turn struct {
	Role    string
	Content string
}

// Provider generates a reply given the system prompt, prior dialogue turns and
// the new user message. History excludes the new message; the provider appends
// it as the final turn and prepends the system prompt as the leading turn.
type Provider interface {
	Name() string
	Complete(ctx context.Context, systemPrompt string, history []Turn, message string) (string, error)
}

// Error reports an upstream generation failure and which provider failed.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FromMessages maps stored messages to completion turns: sender "user" becomes
// role "user", sender "ai" becomes role "assistant".
func FromMessages(messages []models.Message) []Turn {
	turns := make([]Turn, len(messages))
	for i, msg := range messages {
		role := RoleUser
		if msg.Sender == models.SenderAI {
			role = RoleAssistant
		}
		turns[i] = Turn{Role: role, Content: msg.Text}
	}
	return turns
}

// buildRequest assembles the wire-format message list shared by the
// OpenAI-compatible variants: system prompt, history, new user message.
func buildRequest(systemPrompt string, history []Turn, message string) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range history {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
	return msgs
}

// replyFrom extracts the generated text from a completion response, falling
// back to FallbackReply when the response carries no usable text.
func replyFrom(resp openai.ChatCompletionResponse) string {
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return FallbackReply
	}
	return resp.Choices[0].Message.Content
}
