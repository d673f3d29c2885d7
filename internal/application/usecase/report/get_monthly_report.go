package report

import (
	"context"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// GetMonthlyReportInput identifies the owner and month to report on.
type GetMonthlyReportInput struct {
	OwnerID string
	Month   int
	Year    int
}

// GetMonthlyReportOutput carries the report of the requested month.
type GetMonthlyReportOutput struct {
	Report *entity.MonthlyReport
}

// GetMonthlyReportUseCase builds the summary of a single month.
type GetMonthlyReportUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewGetMonthlyReportUseCase creates a new GetMonthlyReportUseCase instance.
func NewGetMonthlyReportUseCase(expenseRepo adapter.ExpenseRepository) *GetMonthlyReportUseCase {
	return &GetMonthlyReportUseCase{expenseRepo: expenseRepo}
}

// Execute validates the period and aggregates the owner's expenses in it.
func (uc *GetMonthlyReportUseCase) Execute(ctx context.Context, input GetMonthlyReportInput) (*GetMonthlyReportOutput, error) {
	period, err := validatePeriod(input.Month, input.Year)
	if err != nil {
		return nil, err
	}

	report, err := uc.build(ctx, input.OwnerID, period)
	if err != nil {
		return nil, err
	}

	return &GetMonthlyReportOutput{Report: report}, nil
}

func (uc *GetMonthlyReportUseCase) build(ctx context.Context, ownerID string, period valueobject.MonthPeriod) (*entity.MonthlyReport, error) {
	from, to := period.Start(), period.End()
	expenses, err := uc.expenseRepo.FindByOwner(ctx, ownerID, entity.ExpenseFilter{From: &from, To: &to})
	if err != nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeReportInternal,
			fmt.Sprintf("failed to load expenses for %s", period),
			err,
		)
	}
	return BuildMonthlyReport(period, expenses), nil
}

func validatePeriod(month, year int) (valueobject.MonthPeriod, error) {
	if month < 1 || month > 12 {
		return valueobject.MonthPeriod{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportMonth,
			"month must be between 1 and 12",
			domainerror.ErrInvalidReportMonth,
		)
	}
	if year < valueobject.MinReportYear || year > valueobject.MaxReportYear {
		return valueobject.MonthPeriod{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportYear,
			fmt.Sprintf("year must be between %d and %d", valueobject.MinReportYear, valueobject.MaxReportYear),
			domainerror.ErrInvalidReportYear,
		)
	}
	return valueobject.MonthPeriod{Month: month, Year: year}, nil
}
