package links

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/linkrepo"
	"github.com/plannerhq/planner-api/internal/ports/out/triprepo"
)

type Service struct {
	trips triprepo.Repository
	links linkrepo.Repository

	newLinkID func() domain.LinkID
}

func NewService(tripsRepo triprepo.Repository, linksRepo linkrepo.Repository) *Service {
	return &Service{
		trips: tripsRepo,
		links: linksRepo,
		newLinkID: func() domain.LinkID {
			return domain.LinkID(uuid.NewString())
		},
	}
}

// SetNewLinkIDForTest overrides link ID generation for deterministic tests.
func (s *Service) SetNewLinkIDForTest(fn func() domain.LinkID) {
	if fn != nil {
		s.newLinkID = fn
	}
}

func (s *Service) Create(ctx context.Context, tripID domain.TripID, title, url string) (domain.LinkID, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return "", &Error{Status: 400, Code: "TRIP_NOT_FOUND", Message: "Trip not found"}
		}
		return "", err
	}

	l := linkrepo.Link{
		ID:     s.newLinkID(),
		TripID: tripID,
		Title:  title,
		URL:    url,
	}
	if err := s.links.Create(ctx, l); err != nil {
		return "", err
	}
	return l.ID, nil
}

func (s *Service) List(ctx context.Context, tripID domain.TripID) ([]linkrepo.Link, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return nil, &Error{Status: 400, Code: "TRIP_NOT_FOUND", Message: "Trip not found"}
		}
		return nil, err
	}
	return s.links.ListByTrip(ctx, tripID)
}
