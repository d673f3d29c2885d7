// Package aireview contains the AI monthly review use case.
package aireview

import (
	"context"
	"errors"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/report"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetMonthlyReviewInput identifies the owner and month to review.
type GetMonthlyReviewInput struct {
	OwnerID string
	Month   int
	Year    int
}

// GetMonthlyReviewOutput carries the comparison report and its narrative.
type GetMonthlyReviewOutput struct {
	Month      int
	Year       int
	Comparison *entity.MonthlyComparison
	Review     *entity.AIReview
}

// GetMonthlyReviewUseCase produces a personalized AI review of a month.
type GetMonthlyReviewUseCase struct {
	profileRepo adapter.ProfileRepository
	comparison  *report.GetComparisonUseCase
	generator   adapter.ReviewGenerator
}

// NewGetMonthlyReviewUseCase creates a new GetMonthlyReviewUseCase instance.
func NewGetMonthlyReviewUseCase(
	profileRepo adapter.ProfileRepository,
	comparison *report.GetComparisonUseCase,
	generator adapter.ReviewGenerator,
) *GetMonthlyReviewUseCase {
	return &GetMonthlyReviewUseCase{
		profileRepo: profileRepo,
		comparison:  comparison,
		generator:   generator,
	}
}

// Execute requires an onboarded profile, builds the comparison and asks the
// configured language models for a narrative.
func (uc *GetMonthlyReviewUseCase) Execute(ctx context.Context, input GetMonthlyReviewInput) (*GetMonthlyReviewOutput, error) {
	profile, err := uc.profileRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return nil, domainerror.NewProfileError(
				domainerror.ErrCodeProfileNotFound,
				"Profile not found. Please onboard first.",
				domainerror.ErrProfileNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	comparison, err := uc.comparison.Execute(ctx, report.GetComparisonInput{
		OwnerID: input.OwnerID,
		Month:   input.Month,
		Year:    input.Year,
	})
	if err != nil {
		return nil, err
	}

	if !uc.generator.IsAvailable() {
		return nil, domainerror.NewAIError(
			domainerror.ErrCodeAINotConfigured,
			"no AI backend is configured",
			domainerror.ErrAINotConfigured,
		)
	}

	review, err := uc.generator.GenerateReview(ctx, &adapter.ReviewRequest{
		Comparison: comparison.Comparison,
		Profile:    profile,
	})
	if err != nil {
		return nil, err
	}

	return &GetMonthlyReviewOutput{
		Month:      input.Month,
		Year:       input.Year,
		Comparison: comparison.Comparison,
		Review:     review,
	}, nil
}
