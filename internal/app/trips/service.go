package trips

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/platform/metrics"
	"github.com/plannerhq/planner-api/internal/ports/out/mailer"
	"github.com/plannerhq/planner-api/internal/ports/out/participantrepo"
	"github.com/plannerhq/planner-api/internal/ports/out/triprepo"
)

type Service struct {
	trips        triprepo.Repository
	participants participantrepo.Repository
	mail         mailer.Mailer
	cfg          Config

	newTripID        func() domain.TripID
	newParticipantID func() domain.ParticipantID
	now              func() time.Time
}

func NewService(tripsRepo triprepo.Repository, participantsRepo participantrepo.Repository, mail mailer.Mailer, cfg Config) *Service {
	return &Service{
		trips:        tripsRepo,
		participants: participantsRepo,
		mail:         mail,
		cfg:          cfg,
		newTripID: func() domain.TripID {
			return domain.TripID(uuid.NewString())
		},
		newParticipantID: func() domain.ParticipantID {
			return domain.ParticipantID(uuid.NewString())
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// SetNewTripIDForTest overrides trip ID generation for deterministic tests.
// It should not be used in production code.
func (s *Service) SetNewTripIDForTest(fn func() domain.TripID) {
	if fn != nil {
		s.newTripID = fn
	}
}

// SetNewParticipantIDForTest overrides participant ID generation for deterministic tests.
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

// Create persists a new unconfirmed trip, its owner participant (already
// confirmed), and one pending participant per invited email in a single
// store write, then sends the owner a confirmation email. Mail failure does
// not fail the creation.
func (s *Service) Create(ctx context.Context, in CreateTripInput) (TripCreated, error) {
	now := s.now()
	if in.StartsAt.Before(now) {
		return TripCreated{}, &Error{Status: 400, Code: "INVALID_START_DATE", Message: "Invalid trip start date"}
	}
	if in.EndsAt.Before(in.StartsAt) {
		return TripCreated{}, &Error{Status: 400, Code: "INVALID_END_DATE", Message: "Invalid trip end date"}
	}

	t := triprepo.Trip{
		ID:          s.newTripID(),
		Destination: in.Destination,
		StartsAt:    in.StartsAt.UTC(),
		EndsAt:      in.EndsAt.UTC(),
		IsConfirmed: false,
		CreatedAt:   now,
	}

	rows := make([]participantrepo.Participant, 0, 1+len(in.EmailsToInvite))
	rows = append(rows, participantrepo.Participant{
		ID:          s.newParticipantID(),
		TripID:      t.ID,
		Email:       in.OwnerEmail,
		IsOwner:     true,
		IsConfirmed: true,
		CreatedAt:   now,
	})
	for _, email := range in.EmailsToInvite {
		rows = append(rows, participantrepo.Participant{
			ID:        s.newParticipantID(),
			TripID:    t.ID,
			Email:     email,
			CreatedAt: now,
		})
	}

	if err := s.trips.CreateWithParticipants(ctx, t, rows); err != nil {
		if errors.Is(err, triprepo.ErrAlreadyExists) {
			return TripCreated{}, &Error{Status: 409, Code: "TRIP_ID_CONFLICT", Message: "trip id conflict"}
		}
		return TripCreated{}, err
	}

	msg := ownerConfirmationEmail(s.cfg, t, in.OwnerName, in.OwnerEmail)
	if err := s.dispatch(ctx, msg); err != nil {
		slog.WarnContext(ctx, "owner confirmation mail failed",
			"trip_id", t.ID, "to", in.OwnerEmail, "error", err)
	}

	return TripCreated{ID: t.ID}, nil
}

func (s *Service) Get(ctx context.Context, tripID domain.TripID) (triprepo.Trip, error) {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return triprepo.Trip{}, &Error{Status: 400, Code: "TRIP_NOT_FOUND", Message: "Trip not found"}
		}
		return triprepo.Trip{}, err
	}
	return t, nil
}

// Update applies a partial edit to the trip's destination and date window.
// Existing activities are not re-validated against a changed window.
func (s *Service) Update(ctx context.Context, tripID domain.TripID, in UpdateTripInput) (triprepo.Trip, error) {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return triprepo.Trip{}, &Error{Status: 400, Code: "TRIP_NOT_FOUND", Message: "Trip not found"}
		}
		return triprepo.Trip{}, err
	}

	if in.Destination.IsSpecified() {
		t.Destination = in.Destination.Value()
	}
	if in.StartsAt.IsSpecified() {
		t.StartsAt = in.StartsAt.Value().UTC()
	}
	if in.EndsAt.IsSpecified() {
		t.EndsAt = in.EndsAt.Value().UTC()
	}

	if t.EndsAt.Before(t.StartsAt) {
		return triprepo.Trip{}, &Error{Status: 400, Code: "INVALID_END_DATE", Message: "Invalid trip end date"}
	}

	if err := s.trips.Save(ctx, t); err != nil {
		return triprepo.Trip{}, err
	}
	return t, nil
}

// Confirm transitions the trip to confirmed exactly once and fans out a
// confirmation email to every non-owner participant. Confirmed is terminal:
// re-entry short-circuits to the same redirect with no writes and no mail.
// The returned string is the redirect target for the boundary layer.
func (s *Service) Confirm(ctx context.Context, tripID domain.TripID) (string, error) {
	redirect := fmt.Sprintf("%s/trips/%s", s.cfg.WebBaseURL, tripID)

	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return "", &Error{Status: 400, Code: "TRIP_NOT_FOUND", Message: "Trip not found"}
		}
		return "", err
	}
	if t.IsConfirmed {
		return redirect, nil
	}

	recipients, err := s.participants.ListNonOwnersByTrip(ctx, tripID)
	if err != nil {
		return "", err
	}

	// The state change is committed before any notification fires: a crash
	// between the write and the fan-out leaves the trip correctly confirmed
	// even if notifications are lost.
	if err := s.trips.MarkConfirmed(ctx, tripID); err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return "", &Error{Status: 400, Code: "TRIP_NOT_FOUND", Message: "Trip not found"}
		}
		return "", err
	}

	// Fan-out: one dispatch per recipient, issued concurrently. A failed
	// dispatch must not cancel its siblings, so outcomes are collected per
	// recipient instead of joining through an error group.
	outcomes := make([]error, len(recipients))
	var wg sync.WaitGroup
	for i, p := range recipients {
		wg.Add(1)
		go func(i int, p participantrepo.Participant) {
			defer wg.Done()
			outcomes[i] = s.dispatch(ctx, participantConfirmationEmail(s.cfg, t, p))
		}(i, p)
	}
	wg.Wait()

	for i, err := range outcomes {
		if err != nil {
			slog.WarnContext(ctx, "participant confirmation mail failed",
				"trip_id", tripID, "participant_id", recipients[i].ID, "to", recipients[i].Email, "error", err)
		}
	}

	return redirect, nil
}

// dispatch sends one message, bounded by the configured per-dispatch timeout,
// and records the outcome.
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
