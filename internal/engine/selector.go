package engine

import (
	"context"
	"strings"

	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/store"
)

// Selector computes the candidate pool for a viewer.
type Selector struct {
	profiles     store.ProfileStore
	defaultLimit int
}

func NewSelector(profiles store.ProfileStore, defaultLimit int) *Selector {
	if defaultLimit <= 0 {
		defaultLimit = DefaultCandidateLimit
	}
	return &Selector{profiles: profiles, defaultLimit: defaultLimit}
}

// SelectCandidates returns up to limit profiles with the opposite gender and
// the same OS as viewer, never including viewer itself. Order is the store's
// (id ascending). limit <= 0 uses the default.
//
// Errors: domain.ErrUnknownGender / domain.ErrIncompleteProfile for a viewer
// that cannot be paired, ErrLookupFailure when the store query fails.
func (s *Selector) SelectCandidates(ctx context.Context, viewer domain.Profile, limit int) ([]domain.Profile, error) {
	target, err := viewer.Gender.Opposite()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(viewer.OS) == "" {
		// an empty OS would leave the query unconstrained
		return nil, domain.ErrIncompleteProfile
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}

	// one spare row in case the viewer is returned
	found, err := s.profiles.QueryProfiles(ctx, store.ProfileQuery{Gender: target, OS: viewer.OS}, limit+1)
	if err != nil {
		return nil, wrap(ErrLookupFailure, "select candidates", err)
	}

	pool := make([]domain.Profile, 0, min(len(found), limit))
	for _, p := range found {
		if p.ID == viewer.ID || p.Gender != target || p.OS != viewer.OS {
			continue
		}
		pool = append(pool, p)
		if len(pool) == limit {
			break
		}
	}
	return pool, nil
}
