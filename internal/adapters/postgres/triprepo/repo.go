package triprepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/plannerhq/planner-api/internal/adapters/postgres"
	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/participantrepo"
	"github.com/plannerhq/planner-api/internal/ports/out/triprepo"
)

// Repo is a Postgres implementation of triprepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, t triprepo.Trip) error {
	tripUUID, err := uuid.Parse(string(t.ID))
	if err != nil {
		return fmt.Errorf("invalid trip id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO trips (id, destination, starts_at, ends_at, is_confirmed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		tripUUID,
		t.Destination,
		t.StartsAt.UTC(),
		t.EndsAt.UTC(),
		t.IsConfirmed,
		t.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return triprepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// CreateWithParticipants inserts the trip and its initial participant rows in
// one transaction, so a rejected participant never leaves an ownerless trip.
func (r *Repo) CreateWithParticipants(ctx context.Context, t triprepo.Trip, ps []participantrepo.Participant) error {
	tripUUID, err := uuid.Parse(string(t.ID))
	if err != nil {
		return fmt.Errorf("invalid trip id: %w", err)
	}

	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO trips (id, destination, starts_at, ends_at, is_confirmed, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			tripUUID,
			t.Destination,
			t.StartsAt.UTC(),
			t.EndsAt.UTC(),
			t.IsConfirmed,
			t.CreatedAt.UTC(),
		)
		if err != nil {
			return err
		}
		for _, p := range ps {
			pUUID, err := uuid.Parse(string(p.ID))
			if err != nil {
				return fmt.Errorf("invalid participant id: %w", err)
			}
			_, err = tx.Exec(ctx, `
				INSERT INTO participants (id, trip_id, email, is_owner, is_confirmed, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`,
				pUUID,
				tripUUID,
				p.Email,
				p.IsOwner,
				p.IsConfirmed,
				p.CreatedAt.UTC(),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			if pe.TableName == "participants" {
				return participantrepo.ErrAlreadyExists
			}
			return triprepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) Save(ctx context.Context, t triprepo.Trip) error {
	tripUUID, err := uuid.Parse(string(t.ID))
	if err != nil {
		return fmt.Errorf("invalid trip id: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE trips
		SET destination = $2,
		    starts_at = $3,
		    ends_at = $4,
		    is_confirmed = $5
		WHERE id = $1
	`,
		tripUUID,
		t.Destination,
		t.StartsAt.UTC(),
		t.EndsAt.UTC(),
		t.IsConfirmed,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return triprepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.TripID) (triprepo.Trip, error) {
	tripUUID, err := uuid.Parse(string(id))
	if err != nil {
		return triprepo.Trip{}, triprepo.ErrNotFound
	}

	var t triprepo.Trip
	var dbID uuid.UUID
	err = r.pool.QueryRow(ctx, `
		SELECT id, destination, starts_at, ends_at, is_confirmed, created_at
		FROM trips
		WHERE id = $1
	`, tripUUID).Scan(&dbID, &t.Destination, &t.StartsAt, &t.EndsAt, &t.IsConfirmed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return triprepo.Trip{}, triprepo.ErrNotFound
		}
		return triprepo.Trip{}, err
	}
	t.ID = domain.TripID(dbID.String())
	return t, nil
}

func (r *Repo) MarkConfirmed(ctx context.Context, id domain.TripID) error {
	tripUUID, err := uuid.Parse(string(id))
	if err != nil {
		return triprepo.ErrNotFound
	}

	tag, err := r.pool.Exec(ctx, `UPDATE trips SET is_confirmed = TRUE WHERE id = $1`, tripUUID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return triprepo.ErrNotFound
	}
	return nil
}
