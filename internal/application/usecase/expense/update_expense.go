package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// UpdateExpenseInput represents the input for expense update.
// Only the fields below can be changed; nil means "leave as is".
type UpdateExpenseInput struct {
	ExpenseID     uuid.UUID
	OwnerID       string
	Amount        *decimal.Decimal
	Category      *string
	Note          *string
	PaymentMode   *entity.PaymentMode
	EssentialType *entity.EssentialType
	Date          *time.Time
}

func (i UpdateExpenseInput) isEmpty() bool {
	return i.Amount == nil && i.Category == nil && i.Note == nil &&
		i.PaymentMode == nil && i.EssentialType == nil && i.Date == nil
}

// UpdateExpenseOutput represents the output of expense update.
type UpdateExpenseOutput struct {
	Expense *entity.Expense
}

// UpdateExpenseUseCase handles expense update logic.
type UpdateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(expenseRepo adapter.ExpenseRepository) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute performs the expense update.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	if input.isEmpty() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeNoExpenseFields,
			"no updatable fields provided",
			domainerror.ErrNoExpenseFields,
		)
	}

	expense, err := uc.expenseRepo.FindByIDAndOwner(ctx, input.ExpenseID, input.OwnerID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpenseNotFound,
				"expense not found",
				domainerror.ErrExpenseNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		expense.Amount = *input.Amount
	}

	if input.Category != nil {
		category, err := normalizeCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		expense.Category = category
	}

	if input.Note != nil {
		note, err := normalizeNote(*input.Note)
		if err != nil {
			return nil, err
		}
		expense.Note = note
	}

	if input.PaymentMode != nil {
		if err := validatePaymentMode(*input.PaymentMode); err != nil {
			return nil, err
		}
		expense.PaymentMode = *input.PaymentMode
	}

	if input.EssentialType != nil {
		if err := validateEssentialType(*input.EssentialType); err != nil {
			return nil, err
		}
		expense.EssentialType = *input.EssentialType
	}

	if input.Date != nil {
		expense.Date = valueobject.DateOnly(*input.Date)
	}

	expense.UpdatedAt = time.Now().UTC()

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return &UpdateExpenseOutput{Expense: expense}, nil
}
