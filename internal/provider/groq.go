package provider

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

const (
	groqName        = "groq"
	groqBaseURL     = "https://api.groq.com/openai/v1"
	groqModel       = "llama-3.3-70b-versatile"
	groqMaxTokens   = 500
	groqTemperature = 0.7
)

// Groq is the Groq chat completion variant. Groq speaks the OpenAI wire
// protocol, so it reuses the same client against a different endpoint.
type Groq struct {
	client *openai.Client
}

// NewGroq creates a Groq provider. baseURL overrides the default API endpoint
// when non-empty.
func NewGroq(apiKey, baseURL string) *Groq {
	if baseURL == "" {
		baseURL = groqBaseURL
	}
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return &Groq{client: openai.NewClientWithConfig(config)}
}

// Name returns the provider discriminator.
func (p *Groq) Name() string {
	return groqName
}

// Complete generates a reply via the Groq chat completion API.
func (p *Groq) Complete(ctx context.Context, systemPrompt string, history []Turn, message string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       groqModel,
		Messages:    buildRequest(systemPrompt, history, message),
		MaxTokens:   groqMaxTokens,
		Temperature: groqTemperature,
	})
	if err != nil {
		return "", &Error{Provider: groqName, Err: err}
	}
	return replyFrom(resp), nil
}
