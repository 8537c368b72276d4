package notification

import (
	"context"

	"kledje/domain"
	"kledje/pkg/logger"
)

// LogMailer is used when no email transport is configured.
type LogMailer struct{}

func NewLogMailer() LogMailer {
	return LogMailer{}
}

func (LogMailer) SendEmail(_ context.Context, msg domain.EmailMessage) error {
	logger.Info("Email transport disabled, dropping message", "to", msg.ToEmail, "subject", msg.Subject)
	return nil
}
