package linkrepo

import (
	"context"

	"github.com/plannerhq/planner-api/internal/domain"
)

// Link is the persistence shape for an important URL attached to a trip.
type Link struct {
	ID     domain.LinkID
	TripID domain.TripID

	Title string
	URL   string
}

// Repository provides access to persisted trip links.
type Repository interface {
	Create(ctx context.Context, l Link) error

	// ListByTrip returns the trip's links ordered by Title ascending.
	ListByTrip(ctx context.Context, tripID domain.TripID) ([]Link, error)
}
