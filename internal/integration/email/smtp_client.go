package email

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// SMTPClient implements the adapter.EmailSender interface over SMTP with
// PLAIN authentication and mandatory STARTTLS (Gmail app passwords work).
type SMTPClient struct {
	host     string
	port     int
	username string
	password string
	fromName string
	from     string

	// send dials the server and submits msg; replaced in tests.
	send func(ctx context.Context, msg *mail.Msg) error
}

// NewSMTPClient creates a new SMTP client. An empty from defaults to username.
func NewSMTPClient(host string, port int, username, password, fromName, from string) *SMTPClient {
	if from == "" {
		from = username
	}
	c := &SMTPClient{
		host:     host,
		port:     port,
		username: username,
		password: password,
		fromName: fromName,
		from:     from,
	}
	c.send = c.dialAndSend
	return c
}

// Send builds a multipart/alternative message and submits it.
func (c *SMTPClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	messageID := fmt.Sprintf("%s@%s", uuid.NewString(), c.host)

	msg, err := c.buildMessage(messageID, input)
	if err != nil {
		return nil, domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "invalid email message", err)
	}

	if err := c.send(ctx, msg); err != nil {
		return nil, classifySendError(err)
	}

	return &adapter.SendEmailResult{MessageID: "<" + messageID + ">"}, nil
}

// buildMessage encodes both bodies as quoted-printable, keeping every line
// within the SMTP line length limit.
func (c *SMTPClient) buildMessage(messageID string, input adapter.SendEmailInput) (*mail.Msg, error) {
	msg := mail.NewMsg(mail.WithEncoding(mail.EncodingQP), mail.WithCharset(mail.CharsetUTF8))

	if err := msg.FromFormat(c.fromName, c.from); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.AddToFormat(input.Name, input.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(input.Subject)
	msg.SetMessageIDWithValue(messageID)
	msg.SetDate()

	switch {
	case input.Text != "" && input.HTML != "":
		msg.SetBodyString(mail.TypeTextPlain, input.Text)
		msg.AddAlternativeString(mail.TypeTextHTML, input.HTML)
	case input.HTML != "":
		msg.SetBodyString(mail.TypeTextHTML, input.HTML)
	default:
		msg.SetBodyString(mail.TypeTextPlain, input.Text)
	}

	return msg, nil
}

func (c *SMTPClient) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.username),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("invalid smtp configuration: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

var _ adapter.EmailSender = (*SMTPClient)(nil)
