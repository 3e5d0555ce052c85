package participants

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/platform/metrics"
	"github.com/plannerhq/planner-api/internal/ports/out/mailer"
	"github.com/plannerhq/planner-api/internal/ports/out/participantrepo"
	"github.com/plannerhq/planner-api/internal/ports/out/triprepo"
)

// Config carries the deployment-specific values embedded into confirmation
// links and redirect targets.
type Config struct {
	WebBaseURL string
	APIBaseURL string

	Sender mailer.Address

	MailTimeout time.Duration
}

type Service struct {
	trips        triprepo.Repository
	participants participantrepo.Repository
	mail         mailer.Mailer
	cfg          Config

	newParticipantID func() domain.ParticipantID
	now              func() time.Time
}

func NewService(tripsRepo triprepo.Repository, participantsRepo participantrepo.Repository, mail mailer.Mailer, cfg Config) *Service {
	return &Service{
		trips:        tripsRepo,
		participants: participantsRepo,
		mail:         mail,
		cfg:          cfg,
		newParticipantID: func() domain.ParticipantID {
			return domain.ParticipantID(uuid.NewString())
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// SetNewParticipantIDForTest overrides participant ID generation for deterministic tests.
// It should not be used in production code.
func (s *Service) SetNewParticipantIDForTest(fn func() domain.ParticipantID) {
	if fn != nil {
		s.newParticipantID = fn
	}
}

// SetNowForTest overrides the clock for deterministic tests.
func (s *Service) SetNowForTest(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Invite persists a new non-owner participant for the trip and sends exactly
// one confirmation email. The participant row is durable before any dispatch
// is attempted, and it stays durable if the dispatch fails: mail delivery is
// best-effort and never surfaces as a workflow failure.
func (s *Service) Invite(ctx context.Context, tripID domain.TripID, email string) (domain.ParticipantID, error) {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return "", &Error{Status: 400, Code: "TRIP_NOT_FOUND", Message: "Trip not found"}
		}
		return "", err
	}

	p := participantrepo.Participant{
		ID:        s.newParticipantID(),
		TripID:    tripID,
		Email:     email,
		CreatedAt: s.now(),
	}
	if err := s.participants.Create(ctx, p); err != nil {
		return "", err
	}

	if err := s.dispatch(ctx, inviteEmail(s.cfg, t, p)); err != nil {
		slog.WarnContext(ctx, "invite mail failed",
			"trip_id", tripID, "participant_id", p.ID, "to", p.Email, "error", err)
	}

	return p.ID, nil
}

// Confirm records the participant's confirmation click (idempotent) and
// returns the redirect target for the participant's trip page.
func (s *Service) Confirm(ctx context.Context, participantID domain.ParticipantID) (string, error) {
	p, err := s.participants.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, participantrepo.ErrNotFound) {
			return "", &Error{Status: 400, Code: "PARTICIPANT_NOT_FOUND", Message: "Participant not found"}
		}
		return "", err
	}

	redirect := fmt.Sprintf("%s/trips/%s", s.cfg.WebBaseURL, p.TripID)
	if p.IsConfirmed {
		return redirect, nil
	}

	p.IsConfirmed = true
	if err := s.participants.Save(ctx, p); err != nil {
		return "", err
	}
	return redirect, nil
}

// List returns the trip's participants, owner included.
func (s *Service) List(ctx context.Context, tripID domain.TripID) ([]participantrepo.Participant, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return nil, &Error{Status: 400, Code: "TRIP_NOT_FOUND", Message: "Trip not found"}
		}
		return nil, err
	}
	return s.participants.ListByTrip(ctx, tripID)
}

func (s *Service) dispatch(ctx context.Context, msg mailer.Message) error {
	if s.cfg.MailTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.MailTimeout)
		defer cancel()
	}
	err := s.mail.Send(ctx, msg)
	metrics.ObserveMailDispatch(err)
	return err
}
