package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/store"
)

// Profiles is an in-memory implementation of store.ProfileStore.
// It is safe for concurrent use.
type Profiles struct {
	mu   sync.RWMutex
	byID map[domain.ProfileID]domain.Profile
}

func NewProfiles() *Profiles {
	return &Profiles{byID: make(map[domain.ProfileID]domain.Profile)}
}

func (r *Profiles) GetProfile(ctx context.Context, id domain.ProfileID) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return domain.Profile{}, store.ErrNotFound
	}
	return p, nil
}

func (r *Profiles) GetProfiles(ctx context.Context, ids []domain.ProfileID) (map[domain.ProfileID]domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[domain.ProfileID]domain.Profile, len(ids))
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *Profiles) QueryProfiles(ctx context.Context, q store.ProfileQuery, limit int) ([]domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Profile, 0)
	for _, p := range r.byID {
		if q.Matches(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Profiles) SaveProfile(ctx context.Context, p domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	return nil
}
