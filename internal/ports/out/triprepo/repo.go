package triprepo

import (
	"context"
	"time"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/participantrepo"
)

// Trip is the persistence shape used by the trip repository.
// It is not an HTTP DTO.
type Trip struct {
	ID domain.TripID

	Destination string

	StartsAt time.Time
	EndsAt   time.Time

	IsConfirmed bool

	CreatedAt time.Time
}

// Repository provides access to persisted trips.
type Repository interface {
	Create(ctx context.Context, t Trip) error

	// CreateWithParticipants persists the trip and its initial participant
	// rows as a single unit: either everything is written or nothing is.
	CreateWithParticipants(ctx context.Context, t Trip, ps []participantrepo.Participant) error

	Save(ctx context.Context, t Trip) error

	GetByID(ctx context.Context, id domain.TripID) (Trip, error)

	// MarkConfirmed sets is_confirmed = true for the trip.
	// It is the only write the confirmation workflow issues.
	MarkConfirmed(ctx context.Context, id domain.TripID) error
}
