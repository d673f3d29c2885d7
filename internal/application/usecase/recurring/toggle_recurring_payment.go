package recurring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ToggleRecurringPaymentInput identifies the payment whose active flag is flipped.
type ToggleRecurringPaymentInput struct {
	RecurringPaymentID uuid.UUID
	OwnerID            string
}

// ToggleRecurringPaymentOutput represents the output of toggling a recurring payment.
type ToggleRecurringPaymentOutput struct {
	RecurringPayment *entity.RecurringPayment
}

// ToggleRecurringPaymentUseCase pauses or resumes a recurring payment.
type ToggleRecurringPaymentUseCase struct {
	recurringRepo adapter.RecurringPaymentRepository
}

// NewToggleRecurringPaymentUseCase creates a new ToggleRecurringPaymentUseCase instance.
func NewToggleRecurringPaymentUseCase(recurringRepo adapter.RecurringPaymentRepository) *ToggleRecurringPaymentUseCase {
	return &ToggleRecurringPaymentUseCase{recurringRepo: recurringRepo}
}

// Execute flips the active flag of the caller's recurring payment.
func (uc *ToggleRecurringPaymentUseCase) Execute(ctx context.Context, input ToggleRecurringPaymentInput) (*ToggleRecurringPaymentOutput, error) {
	payment, err := uc.recurringRepo.FindByIDAndOwner(ctx, input.RecurringPaymentID, input.OwnerID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecurringNotFound) {
			return nil, notFoundError()
		}
		return nil, fmt.Errorf("failed to find recurring payment: %w", err)
	}

	payment.IsActive = !payment.IsActive
	payment.UpdatedAt = time.Now().UTC()

	if err := uc.recurringRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to toggle recurring payment: %w", err)
	}

	return &ToggleRecurringPaymentOutput{RecurringPayment: payment}, nil
}
