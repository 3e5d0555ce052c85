// Package logmail provides a mailer that logs messages instead of sending
// them. It is the default mail backend for local development, standing in for
// a sandbox transport.
package logmail

import (
	"context"
	"log/slog"

	"github.com/plannerhq/planner-api/internal/ports/out/mailer"
)

type Mailer struct {
	log *slog.Logger
}

func NewMailer(log *slog.Logger) *Mailer {
	if log == nil {
		log = slog.Default()
	}
	return &Mailer{log: log}
}

func (m *Mailer) Send(ctx context.Context, msg mailer.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.log.InfoContext(ctx, "mail dispatched",
		"to", msg.To.Email,
		"subject", msg.Subject,
		"bytes", len(msg.HTML),
	)
	return nil
}
