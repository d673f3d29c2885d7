package aireview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/expense-tracker/backend/internal/application/usecase/report"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func setup(generator *adaptertest.ReviewGenerator) (*GetMonthlyReviewUseCase, *adaptertest.ProfileRepository) {
	ctx := context.Background()
	expenses := adaptertest.NewExpenseRepository()
	_ = expenses.Create(ctx, entity.NewExpense("user_1", decimal.NewFromInt(40), "Food", "", "", "", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)))
	profiles := adaptertest.NewProfileRepository()
	return NewGetMonthlyReviewUseCase(profiles, report.NewGetComparisonUseCase(expenses), generator), profiles
}

func TestGetMonthlyReview(t *testing.T) {
	ctx := context.Background()
	input := GetMonthlyReviewInput{OwnerID: "user_1", Month: 3, Year: 2025}

	t.Run("requires a profile", func(t *testing.T) {
		uc, _ := setup(&adaptertest.ReviewGenerator{Available: true})
		_, err := uc.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrProfileNotFound) {
			t.Errorf("expected profile not found, got %v", err)
		}
	})

	t.Run("not configured", func(t *testing.T) {
		uc, profiles := setup(&adaptertest.ReviewGenerator{Available: false})
		_ = profiles.Upsert(ctx, &entity.Profile{OwnerID: "user_1", FullName: "A", Email: "a@example.com"})
		_, err := uc.Execute(ctx, input)
		var aiErr *domainerror.AIError
		if !errors.As(err, &aiErr) || aiErr.Code != domainerror.ErrCodeAINotConfigured {
			t.Errorf("expected not configured error, got %v", err)
		}
	})

	t.Run("returns report and review", func(t *testing.T) {
		generator := &adaptertest.ReviewGenerator{Available: true, Review: &entity.AIReview{Headline: "Nice month", Score: 7}}
		uc, profiles := setup(generator)
		_ = profiles.Upsert(ctx, &entity.Profile{OwnerID: "user_1", FullName: "A", Email: "a@example.com"})

		output, err := uc.Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Review.Headline != "Nice month" {
			t.Errorf("unexpected review %+v", output.Review)
		}
		if !output.Comparison.Current.TotalExpense.Equal(decimal.NewFromInt(40)) {
			t.Errorf("expected current total 40, got %s", output.Comparison.Current.TotalExpense)
		}
		if len(generator.Requests) != 1 || generator.Requests[0].Profile.OwnerID != "user_1" {
			t.Errorf("expected generator to receive the profile")
		}
	})
}
