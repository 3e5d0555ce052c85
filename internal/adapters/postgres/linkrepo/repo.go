package linkrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/plannerhq/planner-api/internal/adapters/postgres"
	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/linkrepo"
)

// Repo is a Postgres implementation of linkrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, l linkrepo.Link) error {
	lUUID, err := uuid.Parse(string(l.ID))
	if err != nil {
		return fmt.Errorf("invalid link id: %w", err)
	}
	tripUUID, err := uuid.Parse(string(l.TripID))
	if err != nil {
		return fmt.Errorf("invalid trip id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO links (id, trip_id, title, url)
		VALUES ($1, $2, $3, $4)
	`, lUUID, tripUUID, l.Title, l.URL)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return linkrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) ListByTrip(ctx context.Context, tripID domain.TripID) ([]linkrepo.Link, error) {
	tripUUID, err := uuid.Parse(string(tripID))
	if err != nil {
		return []linkrepo.Link{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, trip_id, title, url
		FROM links
		WHERE trip_id = $1
		ORDER BY title, id
	`, tripUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]linkrepo.Link, 0)
	for rows.Next() {
		var l linkrepo.Link
		var id, tid uuid.UUID
		if err := rows.Scan(&id, &tid, &l.Title, &l.URL); err != nil {
			return nil, err
		}
		l.ID = domain.LinkID(id.String())
		l.TripID = domain.TripID(tid.String())
		out = append(out, l)
	}
	return out, rows.Err()
}
