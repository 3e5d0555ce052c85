package links_test

import (
	"context"
	"errors"
	"testing"
	"time"

	memlinkrepo "github.com/plannerhq/planner-api/internal/adapters/memory/linkrepo"
	memtriprepo "github.com/plannerhq/planner-api/internal/adapters/memory/triprepo"
	"github.com/plannerhq/planner-api/internal/app/links"
	"github.com/plannerhq/planner-api/internal/domain"
	porttriprepo "github.com/plannerhq/planner-api/internal/ports/out/triprepo"
)

func newFixture(t *testing.T) (*memtriprepo.Repo, *links.Service) {
	t.Helper()
	tripsRepo := memtriprepo.NewRepo()
	svc := links.NewService(tripsRepo, memlinkrepo.NewRepo())
	return tripsRepo, svc
}

func seedTrip(t *testing.T, repo *memtriprepo.Repo, id domain.TripID) {
	t.Helper()
	if err := repo.Create(context.Background(), porttriprepo.Trip{
		ID:          id,
		Destination: "Lisbon",
		StartsAt:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Unix(100, 0).UTC(),
	}); err != nil {
		t.Fatalf("create trip: %v", err)
	}
}

func TestService_CreateAndList(t *testing.T) {
	t.Parallel()

	tripsRepo, svc := newFixture(t)
	seedTrip(t, tripsRepo, "t1")
	svc.SetNewLinkIDForTest(func() domain.LinkID { return "l1" })

	id, err := svc.Create(context.Background(), "t1", "Airbnb booking", "https://example.com/booking")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != "l1" {
		t.Fatalf("id=%s", id)
	}

	ls, err := svc.List(context.Background(), "t1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ls) != 1 || ls[0].Title != "Airbnb booking" || ls[0].URL != "https://example.com/booking" {
		t.Fatalf("links=%+v", ls)
	}
}

func TestService_Create_UnknownTrip(t *testing.T) {
	t.Parallel()

	_, svc := newFixture(t)

	_, err := svc.Create(context.Background(), "missing", "Airbnb booking", "https://example.com/booking")
	var ae *links.Error
	if !errors.As(err, &ae) || ae.Status != 400 || ae.Message != "Trip not found" {
		t.Fatalf("err=%v", err)
	}
}
