package activityrepo

import (
	"context"
	"time"

	"github.com/plannerhq/planner-api/internal/domain"
)

// Activity is the persistence shape used by the activity repository.
type Activity struct {
	ID     domain.ActivityID
	TripID domain.TripID

	Title    string
	OccursAt time.Time
}

// Repository provides access to persisted activities.
type Repository interface {
	Create(ctx context.Context, a Activity) error

	// ListByTrip returns the trip's activities ordered by OccursAt ascending.
	ListByTrip(ctx context.Context, tripID domain.TripID) ([]Activity, error)
}
