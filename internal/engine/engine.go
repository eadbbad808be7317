// Package engine implements the matching engine: candidate selection, swipe
// sessions, mutual-like detection and the match roster.
//
// The engine holds no per-user state of its own. Every call receives the
// viewer explicitly, and all persistence goes through the store ports.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oggyb/osmatch/internal/clock"
	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/logger"
	"github.com/oggyb/osmatch/internal/store"
)

const (
	DefaultCandidateLimit      = 20
	DefaultProfileFetchTimeout = 5 * time.Second
	DefaultHydrateWait         = 2 * time.Millisecond
)

type Options struct {
	CandidateLimit      int
	ProfileFetchTimeout time.Duration
	// HydrateWait is the batching window used when hydrating the roster.
	HydrateWait time.Duration
	Clock       clock.Clock
}

func DefaultOptions() Options {
	return Options{
		CandidateLimit:      DefaultCandidateLimit,
		ProfileFetchTimeout: DefaultProfileFetchTimeout,
		HydrateWait:         DefaultHydrateWait,
		Clock:               clock.NewSystem(),
	}
}

type Engine struct {
	profiles store.ProfileStore

	selector *Selector
	detector *Detector
	roster   *Roster

	clock        clock.Clock
	fetchTimeout time.Duration
	log          *slog.Logger
}

// New wires the engine over its two collaborators. Zero option fields fall
// back to the defaults; a nil logger discards output.
func New(profiles store.ProfileStore, ledger store.InterestLedger, log *slog.Logger, opts Options) *Engine {
	def := DefaultOptions()
	if opts.CandidateLimit <= 0 {
		opts.CandidateLimit = def.CandidateLimit
	}
	if opts.ProfileFetchTimeout <= 0 {
		opts.ProfileFetchTimeout = def.ProfileFetchTimeout
	}
	if opts.HydrateWait <= 0 {
		opts.HydrateWait = def.HydrateWait
	}
	if opts.Clock == nil {
		opts.Clock = def.Clock
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Engine{
		profiles:     profiles,
		selector:     NewSelector(profiles, opts.CandidateLimit),
		detector:     NewDetector(ledger, log),
		roster:       NewRoster(ledger, profiles, opts.HydrateWait, log),
		clock:        opts.Clock,
		fetchTimeout: opts.ProfileFetchTimeout,
		log:          log,
	}
}

func (e *Engine) SelectCandidates(ctx context.Context, viewer domain.Profile, limit int) ([]domain.Profile, error) {
	return e.selector.SelectCandidates(ctx, viewer, limit)
}

// StartSession selects a pool for viewer and opens a session over it.
// On ErrLookupFailure the returned session is empty and already exhausted.
func (e *Engine) StartSession(ctx context.Context, viewer domain.Profile, limit int) (*Session, error) {
	pool, err := e.selector.SelectCandidates(ctx, viewer, limit)
	if err != nil {
		if errors.Is(err, ErrLookupFailure) {
			e.log.Warn("candidate lookup failed, starting empty session", "viewer", viewer.ID, "error", err)
			return NewSession(viewer, nil), err
		}
		return nil, err
	}

	s := NewSession(viewer, pool)
	e.log.Debug("session started", "session_id", s.ID(), "viewer", viewer.ID, "candidates", len(pool))
	return s, nil
}

// DecisionOutcome is the result of one decision on a session.
type DecisionOutcome struct {
	Consumed  domain.Profile
	Direction domain.Direction
	Match     MatchResult
	// MatchedProfile is set only when Match.Matched.
	MatchedProfile *domain.Profile
	// Position and State describe the session after the decision.
	Position int
	State    State
	// Warning carries a non-blocking failure of the like write or the
	// reciprocal lookup. The session has advanced regardless.
	Warning error
}

// Decide consumes the profile under the session cursor.
//
// A like is recorded and checked for reciprocity before the new position
// becomes visible, so the match result arrives together with the advance.
// A pass touches no store. Decisions on one session are processed one at a
// time in the order they arrive.
func (e *Engine) Decide(ctx context.Context, s *Session, dir domain.Direction) (DecisionOutcome, error) {
	if !dir.Valid() {
		return DecisionOutcome{}, domain.ErrInvalidDirection
	}

	viewer := s.Viewer()
	var (
		result  MatchResult
		likeErr error
	)
	consumed, pos, state, err := s.advance(func(p domain.Profile) {
		if dir == domain.DirectionLike {
			result, likeErr = e.detector.RecordLike(ctx, viewer.ID, p.ID)
		}
	})
	if err != nil {
		e.log.Warn("decision rejected on exhausted session", "session_id", s.ID(), "viewer", viewer.ID, "position", pos)
		return DecisionOutcome{Direction: dir, Position: pos, State: state}, wrap(ErrSessionExhausted, "decide", nil)
	}

	out := DecisionOutcome{
		Consumed:  consumed,
		Direction: dir,
		Match:     result,
		Position:  pos,
		State:     state,
		Warning:   likeErr,
	}
	if likeErr != nil {
		e.log.Warn("like not confirmed", "viewer", viewer.ID, "target", consumed.ID, "error", likeErr)
	}
	if result.Matched {
		// the pool already holds the full profile
		matched := consumed
		out.MatchedProfile = &matched
	}
	return out, nil
}

// RecordLike records from -> to outside of any session.
func (e *Engine) RecordLike(ctx context.Context, from, to domain.ProfileID) (MatchResult, error) {
	return e.detector.RecordLike(ctx, from, to)
}

// GetRoster recomputes viewer's mutual matches.
func (e *Engine) GetRoster(ctx context.Context, viewer domain.ProfileID) ([]domain.Profile, error) {
	return e.roster.ComputeMatches(ctx, viewer)
}

// LoadViewer fetches a profile with a bounded wait. A missing profile and a
// fetch that outlives the wait both yield ErrProfileNotFound.
func (e *Engine) LoadViewer(ctx context.Context, id domain.ProfileID) (domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	type fetched struct {
		p   domain.Profile
		err error
	}
	done := make(chan fetched, 1)
	go func() {
		p, err := e.profiles.GetProfile(ctx, id)
		done <- fetched{p: p, err: err}
	}()

	select {
	case r := <-done:
		switch {
		case r.err == nil:
			return r.p, nil
		case errors.Is(r.err, store.ErrNotFound), errors.Is(r.err, context.DeadlineExceeded):
			return domain.Profile{}, wrap(ErrProfileNotFound, "load viewer", nil)
		case errors.Is(r.err, context.Canceled):
			return domain.Profile{}, r.err
		default:
			return domain.Profile{}, wrap(ErrLookupFailure, "load viewer", r.err)
		}
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			e.log.Warn("profile fetch timed out", "id", id, "timeout", e.fetchTimeout)
			return domain.Profile{}, wrap(ErrProfileNotFound, "load viewer", nil)
		}
		return domain.Profile{}, ctx.Err()
	}
}

// SaveProfile creates or replaces p. An empty id gets a fresh uuid.
func (e *Engine) SaveProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	if p.ID == "" {
		p.ID = domain.ProfileID(uuid.NewString())
	}
	g, err := domain.ParseGender(string(p.Gender))
	if err != nil {
		return domain.Profile{}, err
	}
	p.Gender = g
	p.Name = strings.TrimSpace(p.Name)
	p.OS = strings.TrimSpace(p.OS)

	if err := p.Validate(); err != nil {
		return domain.Profile{}, err
	}
	if err := e.profiles.SaveProfile(ctx, p); err != nil {
		return domain.Profile{}, wrap(ErrWriteFailure, "save profile", err)
	}
	e.log.Debug("profile saved", "id", p.ID, "gender", p.Gender, "os", p.OS)
	return p, nil
}

// AgeOf returns p's age in full years as of the engine clock.
func (e *Engine) AgeOf(p domain.Profile) int {
	return p.AgeOn(e.clock.Now())
}
