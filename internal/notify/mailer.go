// Package notify delivers one-time codes by email.
package notify

import (
	"context"
	"fmt"
	"log/slog"
)

const otpSubject = "Your OTP Code"

// Mailer sends a one-time code to an email address.
type Mailer interface {
	SendOTP(ctx context.Context, email, code string) error
}

// Config selects and configures a Mailer.
type Config struct {
	// Provider is "resend", "sendgrid" or empty for the log mailer.
	Provider string
	APIKey   string
	Sender   string
}

// New returns the mailer named by cfg.Provider.
func New(cfg Config, logger *slog.Logger) (Mailer, error) {
	switch cfg.Provider {
	case "":
		return NewLogMailer(logger), nil
	case "resend":
		if cfg.APIKey == "" || cfg.Sender == "" {
			return nil, fmt.Errorf("resend mailer needs EMAIL_API_KEY and EMAIL_SENDER")
		}
		return NewResendMailer(cfg.APIKey, cfg.Sender, logger), nil
	case "sendgrid":
		if cfg.APIKey == "" || cfg.Sender == "" {
			return nil, fmt.Errorf("sendgrid mailer needs EMAIL_API_KEY and EMAIL_SENDER")
		}
		return NewSendGridMailer(cfg.APIKey, cfg.Sender, logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

func otpText(code string) string {
	return fmt.Sprintf("Your OTP code is: %s", code)
}
