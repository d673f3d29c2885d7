package expense

import (
	"context"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// ListExpensesInput represents the input for listing expenses.
// Month and Year must be provided together or not at all.
type ListExpensesInput struct {
	OwnerID string
	Month   *int
	Year    *int
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses []*entity.Expense
}

// ListExpensesUseCase handles expense listing logic.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute lists the owner's expenses sorted by date, newest first.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	var filter entity.ExpenseFilter

	switch {
	case input.Month == nil && input.Year == nil:
	case input.Month == nil || input.Year == nil:
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeMonthYearPair,
			"month and year must be provided together",
			domainerror.ErrMonthYearPair,
		)
	default:
		period, err := valueobject.NewMonthPeriod(*input.Month, *input.Year)
		if err != nil {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeInvalidExpensePeriod,
				err.Error(),
				err,
			)
		}
		from, to := period.Start(), period.End()
		filter.From = &from
		filter.To = &to
	}

	expenses, err := uc.expenseRepo.FindByOwner(ctx, input.OwnerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return &ListExpensesOutput{Expenses: expenses}, nil
}
