package dto

import (
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/aireview"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// AIReviewResponse represents a generated narrative.
type AIReviewResponse struct {
	Headline   string   `json:"headline"`
	Score      float64  `json:"score"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Risks      []string `json:"risks"`
	ActionPlan []string `json:"actionPlan"`
	Model      string   `json:"model,omitempty"`
}

// MonthlyReviewResponse is the payload of GET /ai/monthly-review.
type MonthlyReviewResponse struct {
	Month    int                       `json:"month"`
	Year     int                       `json:"year"`
	Report   MonthlyComparisonResponse `json:"report"`
	AIReview AIReviewResponse          `json:"aiReview"`
}

// ModelResponse describes a model exposed by the AI provider.
type ModelResponse struct {
	Name                       string   `json:"name"`
	DisplayName                string   `json:"displayName"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

// ToAIReviewResponse converts a domain AIReview.
func ToAIReviewResponse(r *entity.AIReview) AIReviewResponse {
	return AIReviewResponse{
		Headline:   r.Headline,
		Score:      r.Score,
		Summary:    r.Summary,
		Highlights: nonNil(r.Highlights),
		Risks:      nonNil(r.Risks),
		ActionPlan: nonNil(r.ActionPlan),
		Model:      r.Model,
	}
}

// ToMonthlyReviewResponse converts the monthly review use case output.
func ToMonthlyReviewResponse(output *aireview.GetMonthlyReviewOutput) MonthlyReviewResponse {
	return MonthlyReviewResponse{
		Month:    output.Month,
		Year:     output.Year,
		Report:   ToMonthlyComparisonResponse(output.Comparison),
		AIReview: ToAIReviewResponse(output.Review),
	}
}

// ToModelListResponse converts the models listed by the provider.
func ToModelListResponse(models []adapter.ModelInfo) []ModelResponse {
	responses := make([]ModelResponse, len(models))
	for i, m := range models {
		responses[i] = ModelResponse{
			Name:                       m.Name,
			DisplayName:                m.DisplayName,
			SupportedGenerationMethods: nonNil(m.SupportedGenerationMethods),
		}
	}
	return responses
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
