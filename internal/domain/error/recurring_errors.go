package error

import "errors"

// Recurring payment domain errors.
var (
	ErrRecurringNotFound        = errors.New("recurring payment not found")
	ErrDuplicateVendor          = errors.New("recurring payment already exists for this vendor")
	ErrInvalidVendorName        = errors.New("vendorName must be between 2 and 50 characters")
	ErrInvalidRecurringAmount   = errors.New("amount must be greater than 0")
	ErrInvalidRecurringCategory = errors.New("category must be between 2 and 30 characters")
	ErrInvalidFrequency         = errors.New("frequency must be monthly")
	ErrInvalidRecurringDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrNextDueBeforeStart       = errors.New("nextDueDate cannot be before startDate")
	ErrNoRecurringFields        = errors.New("no updatable fields provided")
)

// RecurringErrorCode defines error codes for recurring payment errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidVendorName        RecurringErrorCode = "REC-010001"
	ErrCodeInvalidRecurringAmount   RecurringErrorCode = "REC-010002"
	ErrCodeInvalidRecurringCategory RecurringErrorCode = "REC-010003"
	ErrCodeInvalidFrequency         RecurringErrorCode = "REC-010004"
	ErrCodeInvalidRecurringDate     RecurringErrorCode = "REC-010005"
	ErrCodeNextDueBeforeStart       RecurringErrorCode = "REC-010006"
	ErrCodeInvalidRecurringID       RecurringErrorCode = "REC-010007"
	ErrCodeNoRecurringFields        RecurringErrorCode = "REC-010008"

	// Lookup errors (02XXXX)
	ErrCodeRecurringNotFound RecurringErrorCode = "REC-020001"

	// Conflict errors (03XXXX)
	ErrCodeDuplicateVendor RecurringErrorCode = "REC-030001"

	// Internal errors (99XXXX)
	ErrCodeRecurringInternal RecurringErrorCode = "REC-990001"
)

// RecurringError represents a recurring payment error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
