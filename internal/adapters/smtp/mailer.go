// Package smtp delivers messages over SMTP using wneessen/go-mail.
package smtp

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/plannerhq/planner-api/internal/ports/out/mailer"
)

// Mailer is an SMTP implementation of mailer.Mailer.
type Mailer struct {
	client *gomail.Client
}

// NewMailer dials nothing up-front; the connection is established per Send.
func NewMailer(host string, port int, username, password string) (*Mailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}
	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &Mailer{client: client}, nil
}

func (m *Mailer) Send(ctx context.Context, msg mailer.Message) error {
	mm := gomail.NewMsg()
	if err := mm.FromFormat(msg.From.Name, msg.From.Email); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := mm.To(msg.To.Email); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("send to %s: %w", msg.To.Email, err)
	}
	return nil
}
