package adapter

import (
	"context"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseEventPublisher announces expense lifecycle events to other services.
type ExpenseEventPublisher interface {
	// PublishExpenseCreated emits an expense.created event.
	PublishExpenseCreated(ctx context.Context, expense *entity.Expense) error
}
