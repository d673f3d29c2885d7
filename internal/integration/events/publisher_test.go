package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func TestNewExpenseCreatedEvent(t *testing.T) {
	vendor := "netflix"
	expense := entity.NewExpense("user_1", decimal.RequireFromString("15.99"), "Subscription", "Recurring: netflix", "", "", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	expense.RecurringVendor = &vendor

	body, err := json.Marshal(NewExpenseCreatedEvent(expense))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{
		"event":           "expense.created",
		"ownerId":         "user_1",
		"amount":          "15.99",
		"paymentMode":     "upi",
		"essentialType":   "need",
		"date":            "2025-03-10",
		"recurringVendor": "netflix",
	}
	for key, value := range want {
		if got[key] != value {
			t.Errorf("%s = %v, want %q", key, got[key], value)
		}
	}
}

func TestNoopPublisher(t *testing.T) {
	if err := (NoopPublisher{}).PublishExpenseCreated(context.Background(), &entity.Expense{}); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}
