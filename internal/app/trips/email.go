package trips

import (
	"fmt"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/mailer"
	"github.com/plannerhq/planner-api/internal/ports/out/participantrepo"
	"github.com/plannerhq/planner-api/internal/ports/out/triprepo"
)

// participantConfirmationEmail is the message fanned out to each non-owner
// participant when a trip is confirmed. The link targets the participant's own
// confirmation endpoint.
func participantConfirmationEmail(cfg Config, t triprepo.Trip, p participantrepo.Participant) mailer.Message {
	link := fmt.Sprintf("%s/participants/%s/confirm", cfg.APIBaseURL, p.ID)
	start := domain.FormatLongDate(t.StartsAt)
	end := domain.FormatLongDate(t.EndsAt)

	return mailer.Message{
		From:    cfg.Sender,
		To:      mailer.Address{Email: p.Email},
		Subject: fmt.Sprintf("Confirm your presence on the trip to %s on %s!", t.Destination, start),
		HTML: invitationHTML(
			fmt.Sprintf("You have been invited to a trip to <strong>%s</strong> from <strong>%s</strong> to <strong>%s</strong>.", t.Destination, start, end),
			"To confirm your presence on the trip, click the link below:",
			link,
			"Confirm my presence",
		),
	}
}

// ownerConfirmationEmail asks the trip owner to confirm the freshly created
// trip; its link targets the trip confirmation endpoint.
func ownerConfirmationEmail(cfg Config, t triprepo.Trip, ownerName, ownerEmail string) mailer.Message {
	link := fmt.Sprintf("%s/trips/%s/confirm", cfg.APIBaseURL, t.ID)
	start := domain.FormatLongDate(t.StartsAt)
	end := domain.FormatLongDate(t.EndsAt)

	return mailer.Message{
		From:    cfg.Sender,
		To:      mailer.Address{Name: ownerName, Email: ownerEmail},
		Subject: fmt.Sprintf("Confirm your trip to %s on %s!", t.Destination, start),
		HTML: invitationHTML(
			fmt.Sprintf("You requested a trip to <strong>%s</strong> from <strong>%s</strong> to <strong>%s</strong>.", t.Destination, start, end),
			"To confirm your trip, click the link below:",
			link,
			"Confirm trip",
		),
	}
}

func invitationHTML(intro, callToAction, link, linkLabel string) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; font-size: 16px; line-height: 1.6;">
  <p>%s</p>
  <p></p>
  <p>%s</p>
  <p></p>
  <p><a href="%s">%s</a></p>
  <p></p>
  <p>If you don't know what this email is about, just ignore it.</p>
</div>`, intro, callToAction, link, linkLabel)
}
