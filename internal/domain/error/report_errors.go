package error

import "errors"

// Report domain errors.
var (
	ErrInvalidReportMonth = errors.New("month must be between 1 and 12")
	ErrInvalidReportYear  = errors.New("year must be between 2000 and 2100")
)

// ReportErrorCode defines error codes for report errors.
type ReportErrorCode string

const (
	ErrCodeInvalidReportMonth ReportErrorCode = "RPT-010001"
	ErrCodeInvalidReportYear  ReportErrorCode = "RPT-010002"

	ErrCodeReportInternal ReportErrorCode = "RPT-990001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
