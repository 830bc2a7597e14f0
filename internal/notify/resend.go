package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends codes through the Resend API.
type ResendMailer struct {
	client *resend.Client
	sender string
	logger *slog.Logger
}

// NewResendMailer creates a ResendMailer.
func NewResendMailer(apiKey, sender string, logger *slog.Logger) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		sender: sender,
		logger: logger,
	}
}

// SendOTP implements Mailer.
func (m *ResendMailer) SendOTP(ctx context.Context, email, code string) error {
	params := &resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{email},
		Subject: otpSubject,
		Text:    otpText(code),
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email via resend: %w", err)
	}

	m.logger.Debug("OTP email sent", "provider", "resend", "email", email, "id", sent.Id)
	return nil
}
