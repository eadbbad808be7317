package match

import (
	"sync"

	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/engine"
)

// sessionRegistry keeps at most one live feed per viewer and indexes the
// sessions those feeds installed by id.
type sessionRegistry struct {
	mu       sync.Mutex
	feeds    map[domain.ProfileID]*engine.Feed
	sessions map[string]*engine.Session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		feeds:    make(map[domain.ProfileID]*engine.Feed),
		sessions: make(map[string]*engine.Session),
	}
}

// replace makes feed the viewer's live feed. The previous feed is invalidated
// so a refresh still running on it can no longer install a session.
func (r *sessionRegistry) replace(feed *engine.Feed) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := feed.Viewer().ID
	if old, ok := r.feeds[id]; ok {
		r.dropLocked(old)
	}
	r.feeds[id] = feed
}

// track indexes s if it is still the current session of the viewer's live feed.
func (r *sessionRegistry) track(feed *engine.Feed, s *engine.Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.feeds[feed.Viewer().ID] != feed || feed.Session() != s {
		return false
	}
	r.sessions[s.ID()] = s
	return true
}

func (r *sessionRegistry) session(id string) (*engine.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// end forgets the session and, if it belongs to the viewer's live feed, the feed too.
func (r *sessionRegistry) end(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return false
	}
	delete(r.sessions, id)

	viewer := s.Viewer().ID
	if feed, ok := r.feeds[viewer]; ok && feed.Session() == s {
		feed.Invalidate()
		delete(r.feeds, viewer)
	}
	return true
}

func (r *sessionRegistry) dropLocked(feed *engine.Feed) {
	if s := feed.Session(); s != nil {
		delete(r.sessions, s.ID())
	}
	feed.Invalidate()
}
