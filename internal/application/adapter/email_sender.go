package adapter

import (
	"context"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	MessageID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (Resend or SMTP).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// MonthlyReportEmailInput is the content of a monthly report email.
type MonthlyReportEmailInput struct {
	Profile    *entity.Profile
	Comparison *entity.MonthlyComparison

	// Review is nil when the narrative could not be generated.
	Review *entity.AIReview
}

// EmailService renders and sends application emails.
type EmailService interface {
	// SendMonthlyReport renders the monthly report templates and sends them to the profile's email.
	SendMonthlyReport(ctx context.Context, input MonthlyReportEmailInput) (*SendEmailResult, error)
}
