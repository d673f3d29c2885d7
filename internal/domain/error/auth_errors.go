package error

import "errors"

// Identity and access errors.
var (
	// ErrMissingIdentity is returned when a request carries no owner identity.
	ErrMissingIdentity = errors.New("authentication required")

	// ErrInvalidToken is returned when a bearer token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a bearer token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrForbiddenInProduction is returned by development-only routes in production.
	ErrForbiddenInProduction = errors.New("this endpoint is disabled in production")

	// ErrRateLimited is returned when the caller exceeded its request budget.
	ErrRateLimited = errors.New("too many requests, please try again later")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Token errors (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"

	// Access errors (05XXXX)
	ErrCodeForbidden   AuthErrorCode = "AUTH-050001"
	ErrCodeRateLimited AuthErrorCode = "AUTH-050002"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
