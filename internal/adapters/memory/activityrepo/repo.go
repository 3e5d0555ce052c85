package activityrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/activityrepo"
)

// Repo is an in-memory implementation of activityrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.ActivityID]activityrepo.Activity
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.ActivityID]activityrepo.Activity),
	}
}

func (r *Repo) Create(ctx context.Context, a activityrepo.Activity) error {
	_ = ctx
	if a.ID == "" {
		return activityrepo.ErrAlreadyExists
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; ok {
		return activityrepo.ErrAlreadyExists
	}
	r.byID[a.ID] = a
	return nil
}

func (r *Repo) ListByTrip(ctx context.Context, tripID domain.TripID) ([]activityrepo.Activity, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]activityrepo.Activity, 0)
	for _, a := range r.byID {
		if a.TripID == tripID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccursAt.Equal(out[j].OccursAt) {
			return out[i].OccursAt.Before(out[j].OccursAt)
		}
		return string(out[i].ID) < string(out[j].ID)
	})
	return out, nil
}
