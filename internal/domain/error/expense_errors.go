// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense does not exist or is not owned by the caller.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidExpenseAmount is returned when the amount is missing or not positive.
	ErrInvalidExpenseAmount = errors.New("amount must be greater than 0")

	// ErrInvalidExpenseCategory is returned when the category is too short.
	ErrInvalidExpenseCategory = errors.New("category must be at least 2 characters")

	// ErrExpenseNoteTooLong is returned when the note exceeds the maximum length.
	ErrExpenseNoteTooLong = errors.New("note must be at most 200 characters")

	// ErrInvalidPaymentMode is returned for an unsupported payment mode.
	ErrInvalidPaymentMode = errors.New("paymentMode must be one of: upi, cash, card, bank")

	// ErrInvalidEssentialType is returned for an unsupported essential type.
	ErrInvalidEssentialType = errors.New("essentialType must be one of: need, want")

	// ErrInvalidExpenseDate is returned when the date cannot be parsed.
	ErrInvalidExpenseDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrMonthYearPair is returned when only one of month and year is provided.
	ErrMonthYearPair = errors.New("month and year must be provided together")

	// ErrNoExpenseFields is returned when an update carries no allowed fields.
	ErrNoExpenseFields = errors.New("no updatable fields provided")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpenseAmount   ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidExpenseCategory ExpenseErrorCode = "EXP-010002"
	ErrCodeExpenseNoteTooLong     ExpenseErrorCode = "EXP-010003"
	ErrCodeInvalidPaymentMode     ExpenseErrorCode = "EXP-010004"
	ErrCodeInvalidEssentialType   ExpenseErrorCode = "EXP-010005"
	ErrCodeInvalidExpenseDate     ExpenseErrorCode = "EXP-010006"
	ErrCodeMonthYearPair          ExpenseErrorCode = "EXP-010007"
	ErrCodeInvalidExpenseID       ExpenseErrorCode = "EXP-010008"
	ErrCodeNoExpenseFields        ExpenseErrorCode = "EXP-010009"
	ErrCodeInvalidExpensePeriod   ExpenseErrorCode = "EXP-010010"

	// Lookup errors (02XXXX)
	ErrCodeExpenseNotFound ExpenseErrorCode = "EXP-020001"

	// Internal errors (99XXXX)
	ErrCodeExpenseInternal ExpenseErrorCode = "EXP-990001"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
