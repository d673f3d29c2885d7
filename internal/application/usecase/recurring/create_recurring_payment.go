package recurring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// CreateRecurringPaymentInput represents the input for recurring payment creation.
type CreateRecurringPaymentInput struct {
	OwnerID     string
	VendorName  string
	Amount      decimal.Decimal
	Category    string
	Frequency   entity.RecurringFrequency
	StartDate   *time.Time // defaults to today
	NextDueDate *time.Time
}

// CreateRecurringPaymentOutput represents the output of recurring payment creation.
type CreateRecurringPaymentOutput struct {
	RecurringPayment *entity.RecurringPayment
}

// CreateRecurringPaymentUseCase handles recurring payment creation logic.
type CreateRecurringPaymentUseCase struct {
	recurringRepo adapter.RecurringPaymentRepository
	clock         adapter.Clock
}

// NewCreateRecurringPaymentUseCase creates a new CreateRecurringPaymentUseCase instance.
func NewCreateRecurringPaymentUseCase(
	recurringRepo adapter.RecurringPaymentRepository,
	clock adapter.Clock,
) *CreateRecurringPaymentUseCase {
	return &CreateRecurringPaymentUseCase{
		recurringRepo: recurringRepo,
		clock:         clock,
	}
}

// Execute performs the recurring payment creation.
func (uc *CreateRecurringPaymentUseCase) Execute(ctx context.Context, input CreateRecurringPaymentInput) (*CreateRecurringPaymentOutput, error) {
	vendor, err := NormalizeVendorName(input.VendorName)
	if err != nil {
		return nil, err
	}

	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}

	if err := validateFrequency(input.Frequency); err != nil {
		return nil, err
	}

	startDate := valueobject.DateOnly(uc.clock.Now())
	if input.StartDate != nil {
		startDate = valueobject.DateOnly(*input.StartDate)
	}

	var nextDueDate *time.Time
	if input.NextDueDate != nil {
		d := valueobject.DateOnly(*input.NextDueDate)
		nextDueDate = &d
	}

	if err := validateDueDate(startDate, nextDueDate); err != nil {
		return nil, err
	}

	exists, err := uc.recurringRepo.ExistsByVendor(ctx, input.OwnerID, vendor, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check vendor uniqueness: %w", err)
	}
	if exists {
		return nil, duplicateVendorError(vendor)
	}

	payment := entity.NewRecurringPayment(input.OwnerID, vendor, input.Amount, category, startDate, nextDueDate)

	if err := uc.recurringRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, domainerror.ErrDuplicateVendor) {
			return nil, duplicateVendorError(vendor)
		}
		return nil, fmt.Errorf("failed to create recurring payment: %w", err)
	}

	return &CreateRecurringPaymentOutput{RecurringPayment: payment}, nil
}
