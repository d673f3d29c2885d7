// Package recurring contains recurring payment use cases.
package recurring

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// NormalizeVendorName trims and lowercases a vendor name and checks its length.
func NormalizeVendorName(vendor string) (string, error) {
	vendor = strings.ToLower(strings.TrimSpace(vendor))
	n := utf8.RuneCountInString(vendor)
	if n < entity.MinVendorNameLength || n > entity.MaxVendorNameLength {
		return "", domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidVendorName,
			fmt.Sprintf("vendorName must be between %d and %d characters", entity.MinVendorNameLength, entity.MaxVendorNameLength),
			domainerror.ErrInvalidVendorName,
		)
	}
	return vendor, nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringAmount,
			"amount must be greater than 0",
			domainerror.ErrInvalidRecurringAmount,
		)
	}
	return nil
}

func normalizeCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return entity.DefaultRecurringCategory, nil
	}
	n := utf8.RuneCountInString(category)
	if n < entity.MinRecurringCategoryLength || n > entity.MaxRecurringCategoryLength {
		return "", domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringCategory,
			fmt.Sprintf("category must be between %d and %d characters", entity.MinRecurringCategoryLength, entity.MaxRecurringCategoryLength),
			domainerror.ErrInvalidRecurringCategory,
		)
	}
	return category, nil
}

func validateFrequency(frequency entity.RecurringFrequency) error {
	if frequency != "" && frequency != entity.FrequencyMonthly {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidFrequency,
			"frequency must be monthly",
			domainerror.ErrInvalidFrequency,
		)
	}
	return nil
}

func validateDueDate(startDate time.Time, nextDueDate *time.Time) error {
	if nextDueDate != nil && nextDueDate.Before(startDate) {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeNextDueBeforeStart,
			"nextDueDate cannot be before startDate",
			domainerror.ErrNextDueBeforeStart,
		)
	}
	return nil
}

func notFoundError() error {
	return domainerror.NewRecurringError(
		domainerror.ErrCodeRecurringNotFound,
		"recurring payment not found",
		domainerror.ErrRecurringNotFound,
	)
}

func duplicateVendorError(vendor string) error {
	return domainerror.NewRecurringError(
		domainerror.ErrCodeDuplicateVendor,
		fmt.Sprintf("a recurring payment for %q already exists", vendor),
		domainerror.ErrDuplicateVendor,
	)
}
