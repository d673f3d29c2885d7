package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// RecurringPaymentRepository defines the interface for recurring payment persistence operations.
type RecurringPaymentRepository interface {
	Create(ctx context.Context, payment *entity.RecurringPayment) error

	// FindByIDAndOwner returns domainerror.ErrRecurringNotFound when missing or not owned.
	FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*entity.RecurringPayment, error)

	// FindByOwner lists the owner's recurring payments, newest first.
	FindByOwner(ctx context.Context, ownerID string) ([]*entity.RecurringPayment, error)

	// FindActive lists the active recurring payments of every owner.
	FindActive(ctx context.Context) ([]*entity.RecurringPayment, error)

	// ExistsByVendor reports whether the owner already has a payment for vendor,
	// ignoring excludeID when it is not nil.
	ExistsByVendor(ctx context.Context, ownerID, vendor string, excludeID *uuid.UUID) (bool, error)

	Update(ctx context.Context, payment *entity.RecurringPayment) error

	Delete(ctx context.Context, id uuid.UUID, ownerID string) error
}
