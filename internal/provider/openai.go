package provider

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openAIName      = "openai"
	openAIModel     = openai.GPT3Dot5Turbo
	openAIMaxTokens = 500
)

// OpenAI is the OpenAI chat completion variant.
type OpenAI struct {
	client *openai.Client
}

// NewOpenAI creates an OpenAI provider. baseURL overrides the default API
// endpoint when non-empty.
func NewOpenAI(apiKey, baseURL string) *OpenAI {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(config)}
}

// Name returns the provider discriminator.
func (p *OpenAI) Name() string {
	return openAIName
}

// Complete generates a reply via the OpenAI chat completion API.
func (p *OpenAI) Complete(ctx context.Context, systemPrompt string, history []Turn, message string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     openAIModel,
		Messages:  buildRequest(systemPrompt, history, message),
		MaxTokens: openAIMaxTokens,
	})
	if err != nil {
		return "", &Error{Provider: openAIName, Err: err}
	}
	return replyFrom(resp), nil
}
