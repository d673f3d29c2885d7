package report

import (
	"context"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// GetComparisonInput identifies the owner and month to compare with its predecessor.
type GetComparisonInput struct {
	OwnerID string
	Month   int
	Year    int
}

// GetComparisonOutput carries the current report, the previous one and the delta.
type GetComparisonOutput struct {
	Comparison *entity.MonthlyComparison
}

// GetComparisonUseCase compares a month with the immediately preceding month.
type GetComparisonUseCase struct {
	reports *GetMonthlyReportUseCase
}

// NewGetComparisonUseCase creates a new GetComparisonUseCase instance.
func NewGetComparisonUseCase(expenseRepo adapter.ExpenseRepository) *GetComparisonUseCase {
	return &GetComparisonUseCase{reports: NewGetMonthlyReportUseCase(expenseRepo)}
}

// Execute builds both reports and their comparison. January is compared with
// December of the previous year.
func (uc *GetComparisonUseCase) Execute(ctx context.Context, input GetComparisonInput) (*GetComparisonOutput, error) {
	period, err := validatePeriod(input.Month, input.Year)
	if err != nil {
		return nil, err
	}

	current, err := uc.reports.build(ctx, input.OwnerID, period)
	if err != nil {
		return nil, err
	}

	previous, err := uc.reports.build(ctx, input.OwnerID, period.Previous())
	if err != nil {
		return nil, err
	}

	return &GetComparisonOutput{
		Comparison: &entity.MonthlyComparison{
			Current:    current,
			Previous:   previous,
			Comparison: Compare(current, previous),
		},
	}, nil
}
