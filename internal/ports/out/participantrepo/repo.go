package participantrepo

import (
	"context"
	"time"

	"github.com/plannerhq/planner-api/internal/domain"
)

// Participant is the persistence shape used by the participant repository.
type Participant struct {
	ID     domain.ParticipantID
	TripID domain.TripID

	Email string

	IsOwner bool
	// IsConfirmed tracks the participant's own confirmation click; it is
	// independent of the trip's confirmed state.
	IsConfirmed bool

	CreatedAt time.Time
}

// Repository provides access to persisted participants.
//
// List methods return results ordered by CreatedAt ascending (ID as
// tie-breaker) to keep behavior deterministic.
type Repository interface {
	Create(ctx context.Context, p Participant) error
	Save(ctx context.Context, p Participant) error

	GetByID(ctx context.Context, id domain.ParticipantID) (Participant, error)

	ListByTrip(ctx context.Context, tripID domain.TripID) ([]Participant, error)

	// ListNonOwnersByTrip returns the trip's participants with is_owner = false,
	// i.e. the recipients of a confirmation fan-out.
	ListNonOwnersByTrip(ctx context.Context, tripID domain.TripID) ([]Participant, error)
}
