package expense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	OwnerID       string
	Amount        decimal.Decimal
	Category      string
	Note          string
	PaymentMode   entity.PaymentMode   // defaults to upi
	EssentialType entity.EssentialType // defaults to need
	Date          *time.Time           // defaults to today
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *entity.Expense
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	publisher   adapter.ExpenseEventPublisher
	clock       adapter.Clock
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	publisher adapter.ExpenseEventPublisher,
	clock adapter.Clock,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
		publisher:   publisher,
		clock:       clock,
	}
}

// Execute performs the expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}

	note, err := normalizeNote(input.Note)
	if err != nil {
		return nil, err
	}

	if input.PaymentMode == "" {
		input.PaymentMode = entity.PaymentModeUPI
	}
	if err := validatePaymentMode(input.PaymentMode); err != nil {
		return nil, err
	}

	if input.EssentialType == "" {
		input.EssentialType = entity.EssentialTypeNeed
	}
	if err := validateEssentialType(input.EssentialType); err != nil {
		return nil, err
	}

	date := valueobject.DateOnly(uc.clock.Now())
	if input.Date != nil {
		date = valueobject.DateOnly(*input.Date)
	}

	expense := entity.NewExpense(
		input.OwnerID,
		input.Amount,
		category,
		note,
		input.PaymentMode,
		input.EssentialType,
		date,
	)

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	if err := uc.publisher.PublishExpenseCreated(ctx, expense); err != nil {
		slog.Warn("Failed to publish expense.created event",
			"expense_id", expense.ID,
			"owner_id", expense.OwnerID,
			"error", err,
		)
	}

	return &CreateExpenseOutput{Expense: expense}, nil
}
