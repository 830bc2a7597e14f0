package notify

import (
	"context"
	"log/slog"
)

// LogMailer only logs deliveries. Used when no provider is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendOTP logs the code at debug level.
func (m *LogMailer) SendOTP(_ context.Context, email, code string) error {
	m.logger.Debug("OTP delivery (no email provider configured)", "email", email, "code", code)
	return nil
}
