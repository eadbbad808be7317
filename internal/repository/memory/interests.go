package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oggyb/osmatch/internal/clock"
	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/store"
)

type pair struct {
	from, to domain.ProfileID
}

// Interests is an in-memory implementation of store.InterestLedger.
// Events are kept in append order; timestamps are strictly increasing.
// It is safe for concurrent use.
type Interests struct {
	clock clock.Clock

	mu     sync.RWMutex
	events []domain.InterestEvent
	byPair map[pair]int
	last   time.Time
}

func NewInterests(c clock.Clock) *Interests {
	if c == nil {
		c = clock.NewSystem()
	}
	return &Interests{clock: c, byPair: make(map[pair]int)}
}

func (l *Interests) AppendInterest(ctx context.Context, from, to domain.ProfileID) (domain.InterestEvent, error) {
	if err := ctx.Err(); err != nil {
		return domain.InterestEvent{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if idx, ok := l.byPair[pair{from, to}]; ok {
		return l.events[idx], nil
	}

	ts := l.clock.Now()
	if !ts.After(l.last) {
		ts = l.last.Add(time.Nanosecond)
	}
	l.last = ts

	ev := domain.InterestEvent{From: from, To: to, Timestamp: ts}
	l.byPair[pair{from, to}] = len(l.events)
	l.events = append(l.events, ev)
	return ev, nil
}

func (l *Interests) QueryInterest(ctx context.Context, by store.InterestField, id domain.ProfileID) ([]domain.InterestEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.InterestEvent, 0)
	for _, ev := range l.events {
		if (by == store.ByFrom && ev.From == id) || (by == store.ByTo && ev.To == id) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (l *Interests) HasInterest(ctx context.Context, from, to domain.ProfileID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.byPair[pair{from, to}]
	return ok, nil
}
