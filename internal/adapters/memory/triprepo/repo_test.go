package triprepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	memparticipantrepo "github.com/plannerhq/planner-api/internal/adapters/memory/participantrepo"
	memtriprepo "github.com/plannerhq/planner-api/internal/adapters/memory/triprepo"
	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/participantrepo"
	"github.com/plannerhq/planner-api/internal/ports/out/triprepo"
)

func sampleTrip(id domain.TripID) triprepo.Trip {
	return triprepo.Trip{
		ID:          id,
		Destination: "Lisbon",
		StartsAt:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Unix(100, 0).UTC(),
	}
}

func TestRepo_CreateAndGet(t *testing.T) {
	t.Parallel()

	repo := memtriprepo.NewRepo()
	tr := sampleTrip("t1")
	if err := repo.Create(context.Background(), tr); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Destination != "Lisbon" || got.IsConfirmed {
		t.Fatalf("trip=%+v", got)
	}

	if err := repo.Create(context.Background(), tr); !errors.Is(err, triprepo.ErrAlreadyExists) {
		t.Fatalf("duplicate Create err=%v", err)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	repo := memtriprepo.NewRepo()
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, triprepo.ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestRepo_MarkConfirmed(t *testing.T) {
	t.Parallel()

	repo := memtriprepo.NewRepo()
	if err := repo.Create(context.Background(), sampleTrip("t1")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.MarkConfirmed(context.Background(), "t1"); err != nil {
		t.Fatalf("MarkConfirmed: %v", err)
	}
	got, _ := repo.GetByID(context.Background(), "t1")
	if !got.IsConfirmed {
		t.Fatalf("trip not confirmed: %+v", got)
	}

	if err := repo.MarkConfirmed(context.Background(), "missing"); !errors.Is(err, triprepo.ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestRepo_CreateWithParticipants(t *testing.T) {
	t.Parallel()

	participants := memparticipantrepo.NewRepo()
	repo := memtriprepo.NewRepoWithParticipants(participants)

	err := repo.CreateWithParticipants(context.Background(), sampleTrip("t1"), []participantrepo.Participant{
		{ID: "p1", TripID: "t1", Email: "owner@example.com", IsOwner: true, IsConfirmed: true, CreatedAt: time.Unix(100, 0).UTC()},
		{ID: "p2", TripID: "t1", Email: "alice@example.com", CreatedAt: time.Unix(100, 0).UTC()},
	})
	if err != nil {
		t.Fatalf("CreateWithParticipants: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "t1"); err != nil {
		t.Fatalf("trip: %v", err)
	}
	ps, _ := participants.ListByTrip(context.Background(), "t1")
	if len(ps) != 2 {
		t.Fatalf("participants=%d, want 2", len(ps))
	}
}

func TestRepo_CreateWithParticipants_AllOrNothing(t *testing.T) {
	t.Parallel()

	participants := memparticipantrepo.NewRepo()
	repo := memtriprepo.NewRepoWithParticipants(participants)

	// Duplicate participant ID inside the batch must reject the whole write.
	err := repo.CreateWithParticipants(context.Background(), sampleTrip("t1"), []participantrepo.Participant{
		{ID: "p1", TripID: "t1", Email: "owner@example.com", IsOwner: true, CreatedAt: time.Unix(100, 0).UTC()},
		{ID: "p1", TripID: "t1", Email: "alice@example.com", CreatedAt: time.Unix(100, 0).UTC()},
	})
	if !errors.Is(err, participantrepo.ErrAlreadyExists) {
		t.Fatalf("err=%v", err)
	}

	if _, err := repo.GetByID(context.Background(), "t1"); !errors.Is(err, triprepo.ErrNotFound) {
		t.Fatalf("trip persisted despite failed batch: err=%v", err)
	}
	ps, _ := participants.ListByTrip(context.Background(), "t1")
	if len(ps) != 0 {
		t.Fatalf("participants=%d, want 0", len(ps))
	}
	if repo.WriteCount() != 0 {
		t.Fatalf("writes=%d, want 0", repo.WriteCount())
	}
}

func TestRepo_WriteCount(t *testing.T) {
	t.Parallel()

	repo := memtriprepo.NewRepo()
	if repo.WriteCount() != 0 {
		t.Fatalf("writes=%d, want 0", repo.WriteCount())
	}
	if err := repo.Create(context.Background(), sampleTrip("t1")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.MarkConfirmed(context.Background(), "t1"); err != nil {
		t.Fatalf("MarkConfirmed: %v", err)
	}
	if repo.WriteCount() != 2 {
		t.Fatalf("writes=%d, want 2", repo.WriteCount())
	}

	// Reads do not count.
	_, _ = repo.GetByID(context.Background(), "t1")
	if repo.WriteCount() != 2 {
		t.Fatalf("writes=%d, want 2", repo.WriteCount())
	}
}
