// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GeminiBackend answers prompts with a single Google Gemini model.
type GeminiBackend struct {
	apiKey      string
	modelName   string
	temperature float32
	clientOpts  []option.ClientOption
}

// NewGeminiBackend creates a backend for modelName. Extra client options are
// appended after the API key (tests use option.WithEndpoint).
func NewGeminiBackend(apiKey, modelName string, temperature float32, opts ...option.ClientOption) *GeminiBackend {
	return &GeminiBackend{
		apiKey:      apiKey,
		modelName:   modelName,
		temperature: temperature,
		clientOpts:  opts,
	}
}

// NewGeminiBackends creates one backend per model, in priority order.
func NewGeminiBackends(apiKey string, models []string, temperature float32, opts ...option.ClientOption) []adapter.CompletionBackend {
	if apiKey == "" {
		return nil
	}
	backends := make([]adapter.CompletionBackend, 0, len(models))
	for _, m := range models {
		backends = append(backends, NewGeminiBackend(apiKey, m, temperature, opts...))
	}
	return backends
}

// Name returns the model name.
func (b *GeminiBackend) Name() string {
	return b.modelName
}

// Complete sends prompt to the model and returns the concatenated text parts.
func (b *GeminiBackend) Complete(ctx context.Context, prompt string) (string, error) {
	client, err := b.newClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(b.modelName)
	model.SetTemperature(b.temperature)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", domainerror.NewAIError(domainerror.ErrCodeAIBackendFailed, "failed to generate content", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", domainerror.NewAIError(domainerror.ErrCodeAIEmptyResponse, "empty response from gemini", domainerror.ErrAIEmptyResponse)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", domainerror.NewAIError(domainerror.ErrCodeAIEmptyResponse, "no text content in response", domainerror.ErrAIEmptyResponse)
	}

	return sb.String(), nil
}

func (b *GeminiBackend) newClient(ctx context.Context) (*genai.Client, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(b.apiKey)}, b.clientOpts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, domainerror.NewAIError(domainerror.ErrCodeAIBackendFailed, "failed to create gemini client", err)
	}
	return client, nil
}

// GeminiModelLister lists the Gemini models visible to an API key.
type GeminiModelLister struct {
	apiKey     string
	clientOpts []option.ClientOption
}

// NewGeminiModelLister creates a new GeminiModelLister.
func NewGeminiModelLister(apiKey string, opts ...option.ClientOption) *GeminiModelLister {
	return &GeminiModelLister{apiKey: apiKey, clientOpts: opts}
}

// ListModels pages through every model of the account.
func (l *GeminiModelLister) ListModels(ctx context.Context) ([]adapter.ModelInfo, error) {
	if l.apiKey == "" {
		return nil, domainerror.NewAIError(domainerror.ErrCodeAINotConfigured, "GEMINI_API_KEY is not configured", domainerror.ErrAINotConfigured)
	}

	opts := append([]option.ClientOption{option.WithAPIKey(l.apiKey)}, l.clientOpts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	var models []adapter.ModelInfo
	it := client.ListModels(ctx)
	for {
		m, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, domainerror.NewAIError(domainerror.ErrCodeAIBackendFailed, "failed to list gemini models", err)
		}
		models = append(models, adapter.ModelInfo{
			Name:                       m.Name,
			DisplayName:                m.DisplayName,
			SupportedGenerationMethods: m.SupportedGenerationMethods,
		})
	}

	return models, nil
}

var (
	_ adapter.CompletionBackend = (*GeminiBackend)(nil)
	_ adapter.ModelLister       = (*GeminiModelLister)(nil)
)
