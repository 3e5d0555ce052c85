package participants

import (
	"fmt"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/mailer"
	"github.com/plannerhq/planner-api/internal/ports/out/participantrepo"
	"github.com/plannerhq/planner-api/internal/ports/out/triprepo"
)

// inviteEmail is the single confirmation message sent when a participant is
// invited to an existing trip.
func inviteEmail(cfg Config, t triprepo.Trip, p participantrepo.Participant) mailer.Message {
	link := fmt.Sprintf("%s/participants/%s/confirm", cfg.APIBaseURL, p.ID)
	start := domain.FormatLongDate(t.StartsAt)
	end := domain.FormatLongDate(t.EndsAt)

	return mailer.Message{
		From:    cfg.Sender,
		To:      mailer.Address{Email: p.Email},
		Subject: fmt.Sprintf("Confirm your presence on the trip to %s on %s!", t.Destination, start),
		HTML: fmt.Sprintf(`<div style="font-family: sans-serif; font-size: 16px; line-height: 1.6;">
  <p>You have been invited to a trip to <strong>%s</strong> from <strong>%s</strong> to <strong>%s</strong>.</p>
  <p></p>
  <p>To confirm your presence on the trip, click the link below:</p>
  <p></p>
  <p><a href="%s">Confirm my presence</a></p>
  <p></p>
  <p>If you don't know what this email is about, just ignore it.</p>
</div>`, t.Destination, start, end, link),
	}
}
