package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DeleteRecurringPaymentInput represents the input for recurring payment deletion.
type DeleteRecurringPaymentInput struct {
	RecurringPaymentID uuid.UUID
	OwnerID            string
}

// DeleteRecurringPaymentUseCase handles recurring payment deletion.
// Expenses already materialized from the payment are kept.
type DeleteRecurringPaymentUseCase struct {
	recurringRepo adapter.RecurringPaymentRepository
}

// NewDeleteRecurringPaymentUseCase creates a new DeleteRecurringPaymentUseCase instance.
func NewDeleteRecurringPaymentUseCase(recurringRepo adapter.RecurringPaymentRepository) *DeleteRecurringPaymentUseCase {
	return &DeleteRecurringPaymentUseCase{recurringRepo: recurringRepo}
}

func (uc *DeleteRecurringPaymentUseCase) Execute(ctx context.Context, input DeleteRecurringPaymentInput) error {
	if err := uc.recurringRepo.Delete(ctx, input.RecurringPaymentID, input.OwnerID); err != nil {
		if errors.Is(err, domainerror.ErrRecurringNotFound) {
			return notFoundError()
		}
		return fmt.Errorf("failed to delete recurring payment: %w", err)
	}
	return nil
}
