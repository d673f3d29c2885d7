// Package automation contains the scheduled jobs: recurring expense
// materialization and the monthly report email.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// RunRecurringExpensesOutput summarizes one run of the recurring automation.
type RunRecurringExpensesOutput struct {
	CreatedCount int
	SkippedCount int
	FailedCount  int
}

// RunRecurringExpensesUseCase turns recurring payments that are due today into expenses.
// Running it several times on the same day creates each expense at most once.
type RunRecurringExpensesUseCase struct {
	recurringRepo adapter.RecurringPaymentRepository
	expenseRepo   adapter.ExpenseRepository
	publisher     adapter.ExpenseEventPublisher
	clock         adapter.Clock
}

// NewRunRecurringExpensesUseCase creates a new RunRecurringExpensesUseCase instance.
func NewRunRecurringExpensesUseCase(
	recurringRepo adapter.RecurringPaymentRepository,
	expenseRepo adapter.ExpenseRepository,
	publisher adapter.ExpenseEventPublisher,
	clock adapter.Clock,
) *RunRecurringExpensesUseCase {
	return &RunRecurringExpensesUseCase{
		recurringRepo: recurringRepo,
		expenseRepo:   expenseRepo,
		publisher:     publisher,
		clock:         clock,
	}
}

// Execute processes every active recurring payment sequentially. A failure on
// one payment is logged and counted; the run continues with the next one.
func (uc *RunRecurringExpensesUseCase) Execute(ctx context.Context) (*RunRecurringExpensesOutput, error) {
	now := uc.clock.Now()
	today := valueobject.DateOnly(now)
	period := valueobject.MonthPeriodOf(today)

	slog.Info("Running recurring expense automation", "today", today.Format(time.DateOnly))

	payments, err := uc.recurringRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active recurring payments: %w", err)
	}

	output := &RunRecurringExpensesOutput{}

	for _, payment := range payments {
		if err := ctx.Err(); err != nil {
			return output, err
		}

		if !isDue(payment, today) {
			output.SkippedCount++
			continue
		}

		created, err := uc.process(ctx, payment, today, period)
		if created {
			output.CreatedCount++
		}
		if err != nil {
			if !created {
				output.FailedCount++
			}
			slog.Error("Failed to process recurring payment",
				"recurring_id", payment.ID,
				"owner_id", payment.OwnerID,
				"vendor", payment.VendorName,
				"error", err,
			)
			continue
		}
		if !created {
			output.SkippedCount++
		}
	}

	slog.Info("Recurring expense automation finished",
		"created", output.CreatedCount,
		"skipped", output.SkippedCount,
		"failed", output.FailedCount,
	)

	return output, nil
}

// isDue reports whether payment must be materialized on today. Payments
// without a next due date fall due on the first day of every month.
func isDue(payment *entity.RecurringPayment, today time.Time) bool {
	if payment.NextDueDate != nil {
		return valueobject.SameDate(*payment.NextDueDate, today)
	}
	return today.Day() == 1
}

// process materializes payment for today. It reports created=true once the
// expense is stored, even when advancing the due date fails afterwards.
func (uc *RunRecurringExpensesUseCase) process(
	ctx context.Context,
	payment *entity.RecurringPayment,
	today time.Time,
	period valueobject.MonthPeriod,
) (bool, error) {
	exists, err := uc.expenseRepo.ExistsRecurringInRange(ctx, payment.OwnerID, payment.VendorName, period.Start(), period.End())
	if err != nil {
		return false, fmt.Errorf("failed to check existing expense: %w", err)
	}
	if exists {
		slog.Debug("Recurring expense already created this month",
			"owner_id", payment.OwnerID,
			"vendor", payment.VendorName,
		)
		// Still due today means an earlier run stored the expense but not the
		// new due date.
		if err := uc.advanceNextDue(ctx, payment); err != nil {
			return false, err
		}
		return false, nil
	}

	category := payment.Category
	if category == "" {
		category = entity.DefaultRecurringCategory
	}

	expense := entity.NewExpense(
		payment.OwnerID,
		payment.Amount,
		category,
		entity.RecurringNote(payment.VendorName),
		entity.PaymentModeUPI,
		entity.EssentialTypeNeed,
		today,
	)
	vendor := payment.VendorName
	expense.RecurringVendor = &vendor

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return false, fmt.Errorf("failed to create expense: %w", err)
	}

	if err := uc.publisher.PublishExpenseCreated(ctx, expense); err != nil {
		slog.Warn("Failed to publish expense.created event",
			"expense_id", expense.ID,
			"owner_id", expense.OwnerID,
			"error", err,
		)
	}

	if err := uc.advanceNextDue(ctx, payment); err != nil {
		return true, fmt.Errorf("expense created: %w", err)
	}
	return true, nil
}

func (uc *RunRecurringExpensesUseCase) advanceNextDue(ctx context.Context, payment *entity.RecurringPayment) error {
	if payment.NextDueDate == nil {
		return nil
	}
	next := valueobject.AddMonthAnchored(*payment.NextDueDate, anchorDay(payment))
	payment.NextDueDate = &next
	payment.UpdatedAt = uc.clock.Now().UTC()
	if err := uc.recurringRepo.Update(ctx, payment); err != nil {
		return fmt.Errorf("failed to advance next due date: %w", err)
	}
	return nil
}

// anchorDay is the day of month the payment recurs on. A due date sitting on
// the last day of a short month, below the start date's day, was clamped and
// keeps recurring on the start day.
func anchorDay(payment *entity.RecurringPayment) int {
	next := *payment.NextDueDate
	startDay := payment.StartDate.Day()
	if startDay > next.Day() && next.Day() == valueobject.DaysIn(next.Year(), next.Month()) {
		return startDay
	}
	return next.Day()
}
