package error

import "errors"

// Profile domain errors.
var (
	// ErrProfileNotFound is returned when the owner has not onboarded yet.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrEmailInUse is returned when the email is linked to another owner.
	ErrEmailInUse = errors.New("email is already linked to another account")

	// ErrUsernameInUse is returned when the username is taken by another owner.
	ErrUsernameInUse = errors.New("username is already taken")

	ErrMissingFullName      = errors.New("fullName is required")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrInvalidUsername      = errors.New("username must be between 3 and 30 characters")
	ErrInvalidUserType      = errors.New("userType must be one of: student, individual, business")
	ErrInvalidIncomeMode    = errors.New("incomeTrackingMode must be one of: fixedIncome, variableIncome")
	ErrNegativeProfileValue = errors.New("monetary values cannot be negative")
)

// ProfileErrorCode defines error codes for profile errors.
// Format: PRF-XXYYYY where XX is category and YYYY is specific error.
type ProfileErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingFullName      ProfileErrorCode = "PRF-010001"
	ErrCodeInvalidEmail         ProfileErrorCode = "PRF-010002"
	ErrCodeInvalidUsername      ProfileErrorCode = "PRF-010003"
	ErrCodeInvalidUserType      ProfileErrorCode = "PRF-010004"
	ErrCodeInvalidIncomeMode    ProfileErrorCode = "PRF-010005"
	ErrCodeNegativeProfileValue ProfileErrorCode = "PRF-010006"

	// Lookup errors (02XXXX)
	ErrCodeProfileNotFound ProfileErrorCode = "PRF-020001"

	// Conflict errors (03XXXX)
	ErrCodeEmailInUse    ProfileErrorCode = "PRF-030001"
	ErrCodeUsernameInUse ProfileErrorCode = "PRF-030002"

	// Internal errors (99XXXX)
	ErrCodeProfileInternal ProfileErrorCode = "PRF-990001"
)

// ProfileError represents a profile error with code and message.
type ProfileError struct {
	Code    ProfileErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProfileError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProfileError) Unwrap() error {
	return e.Err
}

// NewProfileError creates a new ProfileError with the given code and message.
func NewProfileError(code ProfileErrorCode, message string, err error) *ProfileError {
	return &ProfileError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
