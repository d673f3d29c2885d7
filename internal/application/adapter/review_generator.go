package adapter

import (
	"context"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ReviewRequest carries the data a narrative is generated from.
type ReviewRequest struct {
	Comparison *entity.MonthlyComparison
	Profile    *entity.Profile
}

// ReviewGenerator produces an AI narrative for a monthly report.
type ReviewGenerator interface {
	// GenerateReview tries the configured backends in order and returns the first
	// successfully parsed review.
	GenerateReview(ctx context.Context, request *ReviewRequest) (*entity.AIReview, error)

	// IsAvailable reports whether at least one backend is configured.
	IsAvailable() bool
}

// CompletionBackend is a single language model able to answer a text prompt.
type CompletionBackend interface {
	// Name identifies the backend and model, e.g. "gemini-2.5-flash".
	Name() string

	// Complete sends prompt and returns the raw text answer.
	Complete(ctx context.Context, prompt string) (string, error)
}

// ModelInfo describes a model exposed by the AI provider.
type ModelInfo struct {
	Name                       string
	DisplayName                string
	SupportedGenerationMethods []string
}

// ModelLister lists the models available to the configured API key.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}
