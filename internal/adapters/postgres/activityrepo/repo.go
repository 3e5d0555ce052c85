package activityrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/plannerhq/planner-api/internal/adapters/postgres"
	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/activityrepo"
)

// Repo is a Postgres implementation of activityrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, a activityrepo.Activity) error {
	aUUID, err := uuid.Parse(string(a.ID))
	if err != nil {
		return fmt.Errorf("invalid activity id: %w", err)
	}
	tripUUID, err := uuid.Parse(string(a.TripID))
	if err != nil {
		return fmt.Errorf("invalid trip id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO activities (id, trip_id, title, occurs_at)
		VALUES ($1, $2, $3, $4)
	`, aUUID, tripUUID, a.Title, a.OccursAt.UTC())
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return activityrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) ListByTrip(ctx context.Context, tripID domain.TripID) ([]activityrepo.Activity, error) {
	tripUUID, err := uuid.Parse(string(tripID))
	if err != nil {
		return []activityrepo.Activity{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, trip_id, title, occurs_at
		FROM activities
		WHERE trip_id = $1
		ORDER BY occurs_at, id
	`, tripUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activityrepo.Activity, 0)
	for rows.Next() {
		var a activityrepo.Activity
		var id, tid uuid.UUID
		if err := rows.Scan(&id, &tid, &a.Title, &a.OccursAt); err != nil {
			return nil, err
		}
		a.ID = domain.ActivityID(id.String())
		a.TripID = domain.TripID(tid.String())
		out = append(out, a)
	}
	return out, rows.Err()
}
