package participantrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	memparticipantrepo "github.com/plannerhq/planner-api/internal/adapters/memory/participantrepo"
	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/participantrepo"
)

func seed(t *testing.T, repo *memparticipantrepo.Repo) {
	t.Helper()
	rows := []participantrepo.Participant{
		{ID: "p1", TripID: "t1", Email: "owner@example.com", IsOwner: true, IsConfirmed: true, CreatedAt: time.Unix(100, 0).UTC()},
		{ID: "p2", TripID: "t1", Email: "alice@example.com", CreatedAt: time.Unix(200, 0).UTC()},
		{ID: "p3", TripID: "t1", Email: "bob@example.com", CreatedAt: time.Unix(300, 0).UTC()},
		{ID: "p4", TripID: "t2", Email: "carol@example.com", CreatedAt: time.Unix(400, 0).UTC()},
	}
	for _, p := range rows {
		if err := repo.Create(context.Background(), p); err != nil {
			t.Fatalf("Create %s: %v", p.ID, err)
		}
	}
}

func TestRepo_ListByTrip_FiltersAndOrders(t *testing.T) {
	t.Parallel()

	repo := memparticipantrepo.NewRepo()
	seed(t, repo)

	ps, err := repo.ListByTrip(context.Background(), "t1")
	if err != nil {
		t.Fatalf("ListByTrip: %v", err)
	}
	if len(ps) != 3 {
		t.Fatalf("participants=%d, want 3", len(ps))
	}
	for i, want := range []domain.ParticipantID{"p1", "p2", "p3"} {
		if ps[i].ID != want {
			t.Fatalf("ps[%d].ID=%s, want %s", i, ps[i].ID, want)
		}
	}
}

func TestRepo_ListNonOwnersByTrip_ExcludesOwner(t *testing.T) {
	t.Parallel()

	repo := memparticipantrepo.NewRepo()
	seed(t, repo)

	ps, err := repo.ListNonOwnersByTrip(context.Background(), "t1")
	if err != nil {
		t.Fatalf("ListNonOwnersByTrip: %v", err)
	}
	if len(ps) != 2 || ps[0].ID != "p2" || ps[1].ID != "p3" {
		t.Fatalf("participants=%+v", ps)
	}
}

func TestRepo_Save(t *testing.T) {
	t.Parallel()

	repo := memparticipantrepo.NewRepo()
	seed(t, repo)

	p, _ := repo.GetByID(context.Background(), "p2")
	p.IsConfirmed = true
	if err := repo.Save(context.Background(), p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ := repo.GetByID(context.Background(), "p2")
	if !got.IsConfirmed {
		t.Fatalf("participant=%+v", got)
	}

	if err := repo.Save(context.Background(), participantrepo.Participant{ID: "missing"}); !errors.Is(err, participantrepo.ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestRepo_Create_Duplicate(t *testing.T) {
	t.Parallel()

	repo := memparticipantrepo.NewRepo()
	seed(t, repo)

	err := repo.Create(context.Background(), participantrepo.Participant{ID: "p1", TripID: "t1"})
	if !errors.Is(err, participantrepo.ErrAlreadyExists) {
		t.Fatalf("err=%v", err)
	}
}
