package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringFrequency is how often a recurring payment is due.
type RecurringFrequency string

// FrequencyMonthly is the only supported frequency.
const FrequencyMonthly RecurringFrequency = "monthly"

const (
	MinVendorNameLength        = 2
	MaxVendorNameLength        = 50
	MinRecurringCategoryLength = 2
	MaxRecurringCategoryLength = 30

	// DefaultRecurringCategory is applied when a recurring payment has no category.
	DefaultRecurringCategory = "Subscription"
)

// RecurringPayment represents a subscription-like obligation of an owner.
type RecurringPayment struct {
	ID          uuid.UUID
	OwnerID     string
	VendorName  string // trimmed, lowercase
	Amount      decimal.Decimal
	Category    string
	Frequency   RecurringFrequency
	StartDate   time.Time
	NextDueDate *time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRecurringPayment creates an active monthly RecurringPayment.
func NewRecurringPayment(
	ownerID string,
	vendorName string,
	amount decimal.Decimal,
	category string,
	startDate time.Time,
	nextDueDate *time.Time,
) *RecurringPayment {
	now := time.Now().UTC()

	if category == "" {
		category = DefaultRecurringCategory
	}

	return &RecurringPayment{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		VendorName:  vendorName,
		Amount:      amount,
		Category:    category,
		Frequency:   FrequencyMonthly,
		StartDate:   startDate,
		NextDueDate: nextDueDate,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// RecurringNote returns the note written on expenses materialized for vendor.
func RecurringNote(vendor string) string {
	return fmt.Sprintf("Recurring: %s", vendor)
}
