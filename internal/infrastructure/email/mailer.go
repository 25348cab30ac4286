package email

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/greenstreet/ledger-api/internal/core/ports"
)

// LogMailer is a development mailer that writes outbound mail to the log
// instead of delivering it. Swap for a real provider in production.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, mail ports.Mail) error {
	m.log.Info().
		Str("to", mail.To).
		Str("subject", mail.Subject).
		Msg("outbound mail")
	return nil
}
