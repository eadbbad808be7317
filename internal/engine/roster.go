package engine

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"golang.org/x/sync/errgroup"

	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/store"
)

const hydrateBatchCapacity = 100

// Roster computes a viewer's mutual matches from the Interest Ledger.
// Nothing is cached: every call rescans the ledger.
type Roster struct {
	ledger   store.InterestLedger
	profiles store.ProfileStore
	wait     time.Duration
	log      *slog.Logger
}

func NewRoster(ledger store.InterestLedger, profiles store.ProfileStore, hydrateWait time.Duration, log *slog.Logger) *Roster {
	if hydrateWait <= 0 {
		hydrateWait = DefaultHydrateWait
	}
	return &Roster{ledger: ledger, profiles: profiles, wait: hydrateWait, log: log}
}

// ComputeMatches returns the profiles that viewer liked and that liked viewer
// back, ordered by id. Ids that no longer resolve to a profile are skipped.
func (r *Roster) ComputeMatches(ctx context.Context, viewer domain.ProfileID) ([]domain.Profile, error) {
	var outgoing, incoming []domain.InterestEvent

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		outgoing, err = r.ledger.QueryInterest(gctx, store.ByFrom, viewer)
		return err
	})
	g.Go(func() error {
		var err error
		incoming, err = r.ledger.QueryInterest(gctx, store.ByTo, viewer)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, wrap(ErrLookupFailure, "scan interests", err)
	}

	ids := MutualIDs(viewer, outgoing, incoming)
	if len(ids) == 0 {
		return []domain.Profile{}, nil
	}
	return r.hydrate(ctx, ids)
}

// MutualIDs intersects the targets of outgoing with the sources of incoming.
// Duplicate events collapse; viewer itself is never part of the result.
func MutualIDs(viewer domain.ProfileID, outgoing, incoming []domain.InterestEvent) []domain.ProfileID {
	liked := make(map[domain.ProfileID]struct{}, len(outgoing))
	for _, ev := range outgoing {
		if ev.From == viewer && ev.To != viewer {
			liked[ev.To] = struct{}{}
		}
	}

	seen := make(map[domain.ProfileID]struct{}, len(incoming))
	ids := make([]domain.ProfileID, 0)
	for _, ev := range incoming {
		if ev.To != viewer {
			continue
		}
		if _, ok := liked[ev.From]; !ok {
			continue
		}
		if _, dup := seen[ev.From]; dup {
			continue
		}
		seen[ev.From] = struct{}{}
		ids = append(ids, ev.From)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// hydrate resolves ids through a per-call dataloader so the lookups collapse
// into batched GetProfiles calls.
func (r *Roster) hydrate(ctx context.Context, ids []domain.ProfileID) ([]domain.Profile, error) {
	loader := dataloader.NewBatchedLoader(
		r.batchProfiles,
		dataloader.WithWait[domain.ProfileID, domain.Profile](r.wait),
		dataloader.WithBatchCapacity[domain.ProfileID, domain.Profile](hydrateBatchCapacity),
	)

	thunks := make([]dataloader.Thunk[domain.Profile], len(ids))
	for i, id := range ids {
		thunks[i] = loader.Load(ctx, id)
	}

	out := make([]domain.Profile, 0, len(ids))
	for i, thunk := range thunks {
		p, err := thunk()
		switch {
		case err == nil:
			out = append(out, p)
		case errors.Is(err, store.ErrNotFound):
			r.log.Debug("roster skips unresolved profile", "id", ids[i])
		default:
			return nil, wrap(ErrLookupFailure, "hydrate roster", err)
		}
	}
	return out, nil
}

func (r *Roster) batchProfiles(ctx context.Context, keys []domain.ProfileID) []*dataloader.Result[domain.Profile] {
	results := make([]*dataloader.Result[domain.Profile], len(keys))

	found, err := r.profiles.GetProfiles(ctx, keys)
	for i, key := range keys {
		if err != nil {
			results[i] = &dataloader.Result[domain.Profile]{Error: err}
			continue
		}
		p, ok := found[key]
		if !ok {
			results[i] = &dataloader.Result[domain.Profile]{Error: store.ErrNotFound}
			continue
		}
		results[i] = &dataloader.Result[domain.Profile]{Data: p}
	}
	return results
}
