package recurring

import (
	"context"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ListRecurringPaymentsInput represents the input for listing recurring payments.
type ListRecurringPaymentsInput struct {
	OwnerID string
}

// ListRecurringPaymentsOutput represents the output of listing recurring payments.
type ListRecurringPaymentsOutput struct {
	RecurringPayments []*entity.RecurringPayment
}

// ListRecurringPaymentsUseCase lists an owner's recurring payments, newest first.
type ListRecurringPaymentsUseCase struct {
	recurringRepo adapter.RecurringPaymentRepository
}

// NewListRecurringPaymentsUseCase creates a new ListRecurringPaymentsUseCase instance.
func NewListRecurringPaymentsUseCase(recurringRepo adapter.RecurringPaymentRepository) *ListRecurringPaymentsUseCase {
	return &ListRecurringPaymentsUseCase{recurringRepo: recurringRepo}
}

func (uc *ListRecurringPaymentsUseCase) Execute(ctx context.Context, input ListRecurringPaymentsInput) (*ListRecurringPaymentsOutput, error) {
	payments, err := uc.recurringRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring payments: %w", err)
	}
	return &ListRecurringPaymentsOutput{RecurringPayments: payments}, nil
}
