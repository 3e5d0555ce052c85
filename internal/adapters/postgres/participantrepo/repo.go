package participantrepo

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
)

// Repo is a Postgres implementation of participantrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, p participantrepo.Participant) error {
	pUUID, err := uuid.Parse(string(p.ID))
	if err != nil {
		return fmt.Errorf("invalid participant id: %w", err)
	}
	tripUUID, err := uuid.Parse(string(p.TripID))
	if err != nil {
		return fmt.Errorf("invalid trip id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
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
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return participantrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) Save(ctx context.Context, p participantrepo.Participant) error {
	pUUID, err := uuid.Parse(string(p.ID))
	if err != nil {
		return fmt.Errorf("invalid participant id: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE participants
		SET email = $2,
		    is_owner = $3,
		    is_confirmed = $4
		WHERE id = $1
	`,
		pUUID,
		p.Email,
		p.IsOwner,
		p.IsConfirmed,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return participantrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ParticipantID) (participantrepo.Participant, error) {
	pUUID, err := uuid.Parse(string(id))
	if err != nil {
		return participantrepo.Participant{}, participantrepo.ErrNotFound
	}

	row := r.pool.QueryRow(ctx, `
		SELECT id, trip_id, email, is_owner, is_confirmed, created_at
		FROM participants
		WHERE id = $1
	`, pUUID)
	p, err := scanParticipant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return participantrepo.Participant{}, participantrepo.ErrNotFound
		}
		return participantrepo.Participant{}, err
	}
	return p, nil
}

func (r *Repo) ListByTrip(ctx context.Context, tripID domain.TripID) ([]participantrepo.Participant, error) {
	return r.listByTrip(ctx, tripID, false)
}

func (r *Repo) ListNonOwnersByTrip(ctx context.Context, tripID domain.TripID) ([]participantrepo.Participant, error) {
	return r.listByTrip(ctx, tripID, true)
}

func (r *Repo) listByTrip(ctx context.Context, tripID domain.TripID, nonOwnersOnly bool) ([]participantrepo.Participant, error) {
	tripUUID, err := uuid.Parse(string(tripID))
	if err != nil {
		return []participantrepo.Participant{}, nil
	}

	q := `
		SELECT id, trip_id, email, is_owner, is_confirmed, created_at
		FROM participants
		WHERE trip_id = $1
	`
	if nonOwnersOnly {
		q += ` AND is_owner = FALSE`
	}
	q += ` ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, q, tripUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]participantrepo.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanParticipant(row pgx.Row) (participantrepo.Participant, error) {
	var p participantrepo.Participant
	var id, tripID uuid.UUID
	if err := row.Scan(&id, &tripID, &p.Email, &p.IsOwner, &p.IsConfirmed, &p.CreatedAt); err != nil {
		return participantrepo.Participant{}, err
	}
	p.ID = domain.ParticipantID(id.String())
	p.TripID = domain.TripID(tripID.String())
	return p, nil
}
