package mailer

import (
	"context"

	"nuffjamz/pkg/logger"
)

// LogGateway records emails instead of sending them. Used when no
// SendGrid API key is configured, so local and test environments keep
// the full notification flow without external calls.
type LogGateway struct {
	log *logger.Logger
}

func NewLogGateway(log *logger.Logger) *LogGateway {
	return &LogGateway{log: log}
}

func (g *LogGateway) Send(_ context.Context, email Email) error {
	g.log.Info("Email delivery skipped (no SendGrid API key)",
		"to", email.To,
		"from", email.From,
		"subject", email.Subject,
		"body_length", len(email.Body),
	)
	return nil
}
