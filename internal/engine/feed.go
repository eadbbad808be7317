package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/oggyb/osmatch/internal/domain"
)

// Feed owns the active session of one viewing component.
//
// Every Refresh or Invalidate bumps a generation counter. A refresh installs
// its pool only if its generation is still current and its context was not
// cancelled, so an abandoned or superseded fetch never becomes visible.
type Feed struct {
	engine *Engine
	viewer domain.Profile
	limit  int

	mu      sync.Mutex
	gen     uint64
	session *Session
}

// NewFeed binds a feed to viewer. limit <= 0 uses the engine default.
func (e *Engine) NewFeed(viewer domain.Profile, limit int) *Feed {
	return &Feed{engine: e, viewer: viewer, limit: limit}
}

func (f *Feed) Viewer() domain.Profile { return f.viewer }

// Refresh selects a fresh pool and installs a new session over it.
//
// On ErrLookupFailure an empty (exhausted) session is installed and returned
// together with the error, so callers can render an empty state and offer a
// retry. ErrStaleRefresh means another refresh or an Invalidate won the race,
// or ctx was cancelled; nothing was installed.
func (f *Feed) Refresh(ctx context.Context) (*Session, error) {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.mu.Unlock()

	pool, err := f.engine.SelectCandidates(ctx, f.viewer, f.limit)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen || ctx.Err() != nil {
		f.engine.log.Debug("discarding stale feed refresh", "viewer", f.viewer.ID, "generation", gen)
		return nil, wrap(ErrStaleRefresh, "refresh feed", ctx.Err())
	}
	if err != nil && !errors.Is(err, ErrLookupFailure) {
		return nil, err
	}

	f.session = NewSession(f.viewer, pool)
	return f.session, err
}

// Invalidate drops the current session and cancels the effect of any
// refresh still in flight.
func (f *Feed) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.session = nil
}

// Session returns the installed session, or nil before the first refresh
// and after Invalidate.
func (f *Feed) Session() *Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}
