// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMode represents how an expense was paid.
type PaymentMode string

const (
	PaymentModeUPI  PaymentMode = "upi"
	PaymentModeCash PaymentMode = "cash"
	PaymentModeCard PaymentMode = "card"
	PaymentModeBank PaymentMode = "bank"
)

// IsValid reports whether the payment mode is one of the supported values.
func (p PaymentMode) IsValid() bool {
	switch p {
	case PaymentModeUPI, PaymentModeCash, PaymentModeCard, PaymentModeBank:
		return true
	}
	return false
}

// EssentialType classifies an expense as a need or a want.
type EssentialType string

const (
	EssentialTypeNeed EssentialType = "need"
	EssentialTypeWant EssentialType = "want"
)

// IsValid reports whether the essential type is one of the supported values.
func (e EssentialType) IsValid() bool {
	return e == EssentialTypeNeed || e == EssentialTypeWant
}

const (
	// MinCategoryLength is the minimum length of an expense category.
	MinCategoryLength = 2
	// MaxExpenseNoteLength is the maximum length of an expense note.
	MaxExpenseNoteLength = 200
)

// Expense represents a dated monetary transaction belonging to an owner.
type Expense struct {
	ID            uuid.UUID
	OwnerID       string
	Amount        decimal.Decimal // Always positive
	Category      string
	Note          string
	PaymentMode   PaymentMode
	EssentialType EssentialType
	Date          time.Time // Calendar date at 00:00 UTC

	// RecurringVendor is set when the expense was materialized from a recurring payment.
	RecurringVendor *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewExpense creates a new Expense entity, applying defaults for empty mode and type.
func NewExpense(
	ownerID string,
	amount decimal.Decimal,
	category string,
	note string,
	paymentMode PaymentMode,
	essentialType EssentialType,
	date time.Time,
) *Expense {
	now := time.Now().UTC()

	if paymentMode == "" {
		paymentMode = PaymentModeUPI
	}
	if essentialType == "" {
		essentialType = EssentialTypeNeed
	}

	return &Expense{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Amount:        amount,
		Category:      category,
		Note:          note,
		PaymentMode:   paymentMode,
		EssentialType: essentialType,
		Date:          date,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ExpenseFilter narrows an expense listing to a date window.
type ExpenseFilter struct {
	From *time.Time // inclusive
	To   *time.Time // exclusive
}
