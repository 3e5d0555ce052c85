package triprepo

import (
	"context"
	"errors"
	"sync"

	memparticipantrepo "github.com/plannerhq/planner-api/internal/adapters/memory/participantrepo"
	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/participantrepo"
	"github.com/plannerhq/planner-api/internal/ports/out/triprepo"
)

// Repo is an in-memory implementation of triprepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.TripID]triprepo.Trip

	// participants is the store CreateWithParticipants writes into; nil on a
	// repo built with NewRepo, which then only accepts participant-less calls.
	participants *memparticipantrepo.Repo

	writes int
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.TripID]triprepo.Trip),
	}
}

// NewRepoWithParticipants links the participant store so trip creation can
// write the trip and its participant rows as one unit.
func NewRepoWithParticipants(participants *memparticipantrepo.Repo) *Repo {
	r := NewRepo()
	r.participants = participants
	return r
}

func (r *Repo) Create(ctx context.Context, t triprepo.Trip) error {
	_ = ctx
	if t.ID == "" {
		return triprepo.ErrAlreadyExists // treat empty ID as invalid for now
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[t.ID]; ok {
		return triprepo.ErrAlreadyExists
	}
	r.byID[t.ID] = t
	r.writes++
	return nil
}

// CreateWithParticipants writes the trip and its participants all-or-nothing.
// The trip lock is held across the participant insert, so a rejected
// participant leaves neither store changed.
func (r *Repo) CreateWithParticipants(ctx context.Context, t triprepo.Trip, ps []participantrepo.Participant) error {
	if t.ID == "" {
		return triprepo.ErrAlreadyExists
	}
	if len(ps) > 0 && r.participants == nil {
		return errors.New("no participant store linked")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[t.ID]; ok {
		return triprepo.ErrAlreadyExists
	}
	if len(ps) > 0 {
		if err := r.participants.CreateAll(ctx, ps); err != nil {
			return err
		}
	}
	r.byID[t.ID] = t
	r.writes++
	return nil
}

func (r *Repo) Save(ctx context.Context, t triprepo.Trip) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[t.ID]; !ok {
		return triprepo.ErrNotFound
	}
	r.byID[t.ID] = t
	r.writes++
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.TripID) (triprepo.Trip, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return triprepo.Trip{}, triprepo.ErrNotFound
	}
	return t, nil
}

func (r *Repo) MarkConfirmed(ctx context.Context, id domain.TripID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return triprepo.ErrNotFound
	}
	t.IsConfirmed = true
	r.byID[id] = t
	r.writes++
	return nil
}

// WriteCount reports the number of mutating calls accepted so far.
// Tests use it to assert that idempotent re-entry performs zero writes.
func (r *Repo) WriteCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}
