package participantrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/participantrepo"
)

// Repo is an in-memory implementation of participantrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.ParticipantID]participantrepo.Participant
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.ParticipantID]participantrepo.Participant),
	}
}

func (r *Repo) Create(ctx context.Context, p participantrepo.Participant) error {
	_ = ctx
	if p.ID == "" {
		return participantrepo.ErrAlreadyExists
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; ok {
		return participantrepo.ErrAlreadyExists
	}
	r.byID[p.ID] = p
	return nil
}

// CreateAll inserts every participant or none: all IDs are checked against
// the store (and against each other) before the first write happens.
func (r *Repo) CreateAll(ctx context.Context, ps []participantrepo.Participant) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[domain.ParticipantID]bool, len(ps))
	for _, p := range ps {
		if p.ID == "" || seen[p.ID] {
			return participantrepo.ErrAlreadyExists
		}
		if _, ok := r.byID[p.ID]; ok {
			return participantrepo.ErrAlreadyExists
		}
		seen[p.ID] = true
	}
	for _, p := range ps {
		r.byID[p.ID] = p
	}
	return nil
}

func (r *Repo) Save(ctx context.Context, p participantrepo.Participant) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return participantrepo.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ParticipantID) (participantrepo.Participant, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return participantrepo.Participant{}, participantrepo.ErrNotFound
	}
	return p, nil
}

func (r *Repo) ListByTrip(ctx context.Context, tripID domain.TripID) ([]participantrepo.Participant, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]participantrepo.Participant, 0)
	for _, p := range r.byID {
		if p.TripID == tripID {
			out = append(out, p)
		}
	}
	sortParticipants(out)
	return out, nil
}

func (r *Repo) ListNonOwnersByTrip(ctx context.Context, tripID domain.TripID) ([]participantrepo.Participant, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]participantrepo.Participant, 0)
	for _, p := range r.byID {
		if p.TripID == tripID && !p.IsOwner {
			out = append(out, p)
		}
	}
	sortParticipants(out)
	return out, nil
}

func sortParticipants(ps []participantrepo.Participant) {
	sort.Slice(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return string(a.ID) < string(b.ID)
	})
}
