package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/oggyb/osmatch/internal/domain"
)

type State int

const (
	StateActive State = iota + 1
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Session is a forward-only cursor over one candidate pool.
//
// Invariants:
//   - position starts at 0 and only ever grows by one per decision.
//   - position == len(pool) is terminal (an empty pool starts exhausted).
//   - the pool never changes; re-scanning requires a new Session.
type Session struct {
	id     string
	viewer domain.Profile
	pool   []domain.Profile

	// mu serializes decisions: one in flight per session.
	mu       sync.Mutex
	position int
}

func NewSession(viewer domain.Profile, pool []domain.Profile) *Session {
	return &Session{
		id:     uuid.NewString(),
		viewer: viewer,
		pool:   append([]domain.Profile(nil), pool...),
	}
}

func (s *Session) ID() string             { return s.id }
func (s *Session) Viewer() domain.Profile { return s.viewer }
func (s *Session) Len() int               { return len(s.pool) }

// Pool returns a copy of the full candidate pool.
func (s *Session) Pool() []domain.Profile {
	return append([]domain.Profile(nil), s.pool...)
}

func (s *Session) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pool) - s.position
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Current returns the profile under the cursor; false once exhausted.
func (s *Session) Current() (domain.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.position >= len(s.pool) {
		return domain.Profile{}, false
	}
	return s.pool[s.position], true
}

func (s *Session) stateLocked() State {
	if s.position >= len(s.pool) {
		return StateExhausted
	}
	return StateActive
}

// advance hands the profile under the cursor to fn and then moves the cursor
// by one. fn runs under the session lock, so its result is visible together
// with the new position. In the exhausted state nothing changes.
func (s *Session) advance(fn func(p domain.Profile)) (domain.Profile, int, State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.position >= len(s.pool) {
		return domain.Profile{}, s.position, StateExhausted, ErrSessionExhausted
	}
	p := s.pool[s.position]
	if fn != nil {
		fn(p)
	}
	s.position++
	return p, s.position, s.stateLocked(), nil
}
