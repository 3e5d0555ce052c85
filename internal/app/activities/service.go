package activities

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/activityrepo"
	"github.com/plannerhq/planner-api/internal/ports/out/triprepo"
)

type Service struct {
	trips      triprepo.Repository
	activities activityrepo.Repository

	newActivityID func() domain.ActivityID
}

func NewService(tripsRepo triprepo.Repository, activitiesRepo activityrepo.Repository) *Service {
	return &Service{
		trips:      tripsRepo,
		activities: activitiesRepo,
		newActivityID: func() domain.ActivityID {
			return domain.ActivityID(uuid.NewString())
		},
	}
}

// SetNewActivityIDForTest overrides activity ID generation for deterministic tests.
// It should not be used in production code.
func (s *Service) SetNewActivityIDForTest(fn func() domain.ActivityID) {
	if fn != nil {
		s.newActivityID = fn
	}
}

// Create records an activity inside the trip's date window. Both window
// bounds are inclusive. The two error messages intentionally differ only in
// the boundary direction; both describe the occurs_at check.
func (s *Service) Create(ctx context.Context, tripID domain.TripID, title string, occursAt time.Time) (domain.ActivityID, error) {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return "", &Error{Status: 400, Code: "TRIP_NOT_FOUND", Message: "Trip not found"}
		}
		return "", err
	}

	if err := domain.ValidateWithinWindow(t.StartsAt, t.EndsAt, occursAt); err != nil {
		var we *domain.WindowError
		if errors.As(err, &we) {
			switch we.Bound {
			case domain.WindowBeforeStart:
				return "", &Error{Status: 400, Code: "INVALID_ACTIVITY_DATE", Message: "Invalid activity starts_at"}
			case domain.WindowAfterEnd:
				return "", &Error{Status: 400, Code: "INVALID_ACTIVITY_DATE", Message: "Invalid activity ends_at"}
			}
		}
		return "", err
	}

	a := activityrepo.Activity{
		ID:       s.newActivityID(),
		TripID:   tripID,
		Title:    title,
		OccursAt: occursAt.UTC(),
	}
	if err := s.activities.Create(ctx, a); err != nil {
		return "", err
	}
	return a.ID, nil
}

// Day is one calendar day of the trip window with its scheduled activities.
type Day struct {
	Date       time.Time
	Activities []activityrepo.Activity
}

// List returns the trip's activities grouped per calendar day across the
// whole trip window; days without activities are included empty.
func (s *Service) List(ctx context.Context, tripID domain.TripID) ([]Day, error) {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return nil, &Error{Status: 400, Code: "TRIP_NOT_FOUND", Message: "Trip not found"}
		}
		return nil, err
	}

	as, err := s.activities.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	byDay := make(map[time.Time][]activityrepo.Activity)
	for _, a := range as {
		d := truncateToDay(a.OccursAt)
		byDay[d] = append(byDay[d], a)
	}

	start := truncateToDay(t.StartsAt)
	end := truncateToDay(t.EndsAt)
	out := make([]Day, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		acts := byDay[d]
		if acts == nil {
			acts = []activityrepo.Activity{}
		}
		out = append(out, Day{Date: d, Activities: acts})
	}
	return out, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
