package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends codes through the SendGrid v3 API.
type SendGridMailer struct {
	client *sendgrid.Client
	sender string
	logger *slog.Logger
}

// NewSendGridMailer creates a SendGridMailer.
func NewSendGridMailer(apiKey, sender string, logger *slog.Logger) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
		logger: logger,
	}
}

// SendOTP implements Mailer.
func (m *SendGridMailer) SendOTP(ctx context.Context, email, code string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("", m.sender),
		otpSubject,
		mail.NewEmail("", email),
		otpText(code),
		fmt.Sprintf("<strong>%s</strong>", otpText(code)),
	)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected email: status %d: %s", resp.StatusCode, resp.Body)
	}

	m.logger.Debug("OTP email sent", "provider", "sendgrid", "email", email, "status", resp.StatusCode)
	return nil
}
