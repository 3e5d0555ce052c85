package linkrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/linkrepo"
)

// Repo is an in-memory implementation of linkrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.LinkID]linkrepo.Link
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.LinkID]linkrepo.Link),
	}
}

func (r *Repo) Create(ctx context.Context, l linkrepo.Link) error {
	_ = ctx
	if l.ID == "" {
		return linkrepo.ErrAlreadyExists
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[l.ID]; ok {
		return linkrepo.ErrAlreadyExists
	}
	r.byID[l.ID] = l
	return nil
}

func (r *Repo) ListByTrip(ctx context.Context, tripID domain.TripID) ([]linkrepo.Link, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]linkrepo.Link, 0)
	for _, l := range r.byID {
		if l.TripID == tripID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return string(out[i].ID) < string(out[j].ID)
	})
	return out, nil
}
