package recurring

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

// UpdateRecurringPaymentInput represents the input for recurring payment update.
// nil fields are left untouched.
type UpdateRecurringPaymentInput struct {
	RecurringPaymentID uuid.UUID
	OwnerID            string
	VendorName         *string
	Amount             *decimal.Decimal
	Category           *string
	Frequency          *entity.RecurringFrequency
	StartDate          *time.Time
	NextDueDate        *time.Time
	ClearNextDueDate   bool
	IsActive           *bool
}

func (i UpdateRecurringPaymentInput) isEmpty() bool {
	return i.VendorName == nil && i.Amount == nil && i.Category == nil && i.Frequency == nil &&
		i.StartDate == nil && i.NextDueDate == nil && !i.ClearNextDueDate && i.IsActive == nil
}

// UpdateRecurringPaymentOutput represents the output of recurring payment update.
type UpdateRecurringPaymentOutput struct {
	RecurringPayment *entity.RecurringPayment
}

// UpdateRecurringPaymentUseCase handles recurring payment update logic.
type UpdateRecurringPaymentUseCase struct {
	recurringRepo adapter.RecurringPaymentRepository
}

// NewUpdateRecurringPaymentUseCase creates a new UpdateRecurringPaymentUseCase instance.
func NewUpdateRecurringPaymentUseCase(recurringRepo adapter.RecurringPaymentRepository) *UpdateRecurringPaymentUseCase {
	return &UpdateRecurringPaymentUseCase{recurringRepo: recurringRepo}
}

// Execute performs the recurring payment update.
func (uc *UpdateRecurringPaymentUseCase) Execute(ctx context.Context, input UpdateRecurringPaymentInput) (*UpdateRecurringPaymentOutput, error) {
	if input.isEmpty() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeNoRecurringFields,
			"no updatable fields provided",
			domainerror.ErrNoRecurringFields,
		)
	}

	payment, err := uc.recurringRepo.FindByIDAndOwner(ctx, input.RecurringPaymentID, input.OwnerID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecurringNotFound) {
			return nil, notFoundError()
		}
		return nil, fmt.Errorf("failed to find recurring payment: %w", err)
	}

	if input.VendorName != nil {
		vendor, err := NormalizeVendorName(*input.VendorName)
		if err != nil {
			return nil, err
		}
		if vendor != payment.VendorName {
			exists, err := uc.recurringRepo.ExistsByVendor(ctx, input.OwnerID, vendor, &payment.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check vendor uniqueness: %w", err)
			}
			if exists {
				return nil, duplicateVendorError(vendor)
			}
		}
		payment.VendorName = vendor
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		payment.Amount = *input.Amount
	}

	if input.Category != nil {
		category, err := normalizeCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		payment.Category = category
	}

	if input.Frequency != nil {
		if err := validateFrequency(*input.Frequency); err != nil {
			return nil, err
		}
	}

	if input.StartDate != nil {
		payment.StartDate = valueobject.DateOnly(*input.StartDate)
	}

	if input.ClearNextDueDate {
		payment.NextDueDate = nil
	} else if input.NextDueDate != nil {
		d := valueobject.DateOnly(*input.NextDueDate)
		payment.NextDueDate = &d
	}

	if err := validateDueDate(payment.StartDate, payment.NextDueDate); err != nil {
		return nil, err
	}

	if input.IsActive != nil {
		payment.IsActive = *input.IsActive
	}

	payment.UpdatedAt = time.Now().UTC()

	if err := uc.recurringRepo.Update(ctx, payment); err != nil {
		if errors.Is(err, domainerror.ErrDuplicateVendor) {
			return nil, duplicateVendorError(payment.VendorName)
		}
		return nil, fmt.Errorf("failed to update recurring payment: %w", err)
	}

	return &UpdateRecurringPaymentOutput{RecurringPayment: payment}, nil
}
