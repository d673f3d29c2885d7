package adapters

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// OpenAIBackend answers prompts through an OpenAI-compatible chat completion API.
type OpenAIBackend struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIBackend creates a backend. An empty baseURL targets api.openai.com.
func NewOpenAIBackend(apiKey, baseURL, model string, temperature float32) *OpenAIBackend {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIBackend{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
	}
}

// Name returns the model name prefixed with the provider.
func (b *OpenAIBackend) Name() string {
	return "openai/" + b.model
}

// Complete sends prompt as a single user message and asks for a JSON object.
func (b *OpenAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       b.model,
		Temperature: b.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", domainerror.NewAIError(domainerror.ErrCodeAIBackendFailed, "chat completion failed", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", domainerror.NewAIError(domainerror.ErrCodeAIEmptyResponse, "empty response from openai", domainerror.ErrAIEmptyResponse)
	}

	return resp.Choices[0].Message.Content, nil
}

var _ adapter.CompletionBackend = (*OpenAIBackend)(nil)
