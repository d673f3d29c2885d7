package error

import "errors"

// AI narrative domain errors.
var (
	// ErrAINotConfigured is returned when no language model backend is configured.
	ErrAINotConfigured = errors.New("ai review is not configured")

	// ErrAINoJSON is returned when a model response contains no JSON object.
	ErrAINoJSON = errors.New("no JSON object in response")

	// ErrAIInvalidJSON is returned when the extracted JSON object cannot be decoded.
	ErrAIInvalidJSON = errors.New("invalid JSON in response")

	// ErrAIBackendFailed is returned when a backend call fails.
	ErrAIBackendFailed = errors.New("ai backend request failed")

	// ErrAIEmptyResponse is returned when a backend answers without text.
	ErrAIEmptyResponse = errors.New("empty response from model")
)

// AIErrorCode defines error codes for AI narrative errors.
// Format: AI-XXYYYY where XX is category and YYYY is specific error.
type AIErrorCode string

const (
	// Configuration errors (01XXXX)
	ErrCodeAINotConfigured AIErrorCode = "AI-010001"

	// Response errors (02XXXX)
	ErrCodeAINoJSON         AIErrorCode = "AI-020001"
	ErrCodeAIInvalidJSON    AIErrorCode = "AI-020002"
	ErrCodeAIBackendFailed  AIErrorCode = "AI-020003"
	ErrCodeAIEmptyResponse  AIErrorCode = "AI-020004"
	ErrCodeAIAllModelsError AIErrorCode = "AI-020005"
)

// AIError represents an AI narrative error with code and message.
type AIError struct {
	Code    AIErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AIError) Unwrap() error {
	return e.Err
}

// NewAIError creates a new AIError with the given code and message.
func NewAIError(code AIErrorCode, message string, err error) *AIError {
	return &AIError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
