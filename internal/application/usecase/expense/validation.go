// Package expense contains expense-related use cases.
package expense

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must be greater than 0",
			domainerror.ErrInvalidExpenseAmount,
		)
	}
	return nil
}

func normalizeCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if utf8.RuneCountInString(category) < entity.MinCategoryLength {
		return "", domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseCategory,
			fmt.Sprintf("category must be at least %d characters", entity.MinCategoryLength),
			domainerror.ErrInvalidExpenseCategory,
		)
	}
	return category, nil
}

func normalizeNote(note string) (string, error) {
	note = strings.TrimSpace(note)
	if utf8.RuneCountInString(note) > entity.MaxExpenseNoteLength {
		return "", domainerror.NewExpenseError(
			domainerror.ErrCodeExpenseNoteTooLong,
			fmt.Sprintf("note must not exceed %d characters", entity.MaxExpenseNoteLength),
			domainerror.ErrExpenseNoteTooLong,
		)
	}
	return note, nil
}

func validatePaymentMode(mode entity.PaymentMode) error {
	if !mode.IsValid() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidPaymentMode,
			"paymentMode must be one of: upi, cash, card, bank",
			domainerror.ErrInvalidPaymentMode,
		)
	}
	return nil
}

func validateEssentialType(essentialType entity.EssentialType) error {
	if !essentialType.IsValid() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidEssentialType,
			"essentialType must be one of: need, want",
			domainerror.ErrInvalidEssentialType,
		)
	}
	return nil
}
