// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create persists a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByIDAndOwner retrieves an expense owned by ownerID.
	// Returns domainerror.ErrExpenseNotFound when it does not exist or belongs to someone else.
	FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*entity.Expense, error)

	// FindByOwner lists the owner's expenses, newest date first.
	FindByOwner(ctx context.Context, ownerID string, filter entity.ExpenseFilter) ([]*entity.Expense, error)

	// Update saves the mutable fields of an existing expense.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense owned by ownerID.
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error

	// ExistsRecurringInRange reports whether an expense materialized for vendor
	// exists for the owner with a date in [from, to).
	ExistsRecurringInRange(ctx context.Context, ownerID, vendor string, from, to time.Time) (bool, error)
}
