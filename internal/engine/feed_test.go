package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/engine"
	"github.com/oggyb/osmatch/internal/repository/memory"
)

type refreshResult struct {
	s   *engine.Session
	err error
}

func TestFeed_RefreshInstallsSession(t *testing.T) {
	f := newFixture(t, ubuntuScenario()...)
	feed := f.engine.NewFeed(ubuntuScenario()[0], 0)
	assert.Nil(t, feed.Session())

	s, err := feed.Refresh(context.Background())
	require.NoError(t, err)
	assert.Same(t, s, feed.Session())
	assert.Equal(t, 3, s.Len())

	feed.Invalidate()
	assert.Nil(t, feed.Session())
}

func TestFeed_RefreshStartsFromTheTop(t *testing.T) {
	f := newFixture(t, ubuntuScenario()...)
	feed := f.engine.NewFeed(ubuntuScenario()[0], 0)

	first, err := feed.Refresh(context.Background())
	require.NoError(t, err)
	_, err = f.engine.Decide(context.Background(), first, domain.DirectionPass)
	require.NoError(t, err)

	second, err := feed.Refresh(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, 0, second.Position())
	assert.Equal(t, 1, first.Position())
}

func TestFeed_InvalidateDiscardsInFlightRefresh(t *testing.T) {
	f := newFixture(t, ubuntuScenario()...)
	gated := newGatedProfiles(f.profiles)
	eng := newEngine(gated, f.ledger, f.clock)
	feed := eng.NewFeed(ubuntuScenario()[0], 0)

	done := make(chan refreshResult, 1)
	go func() {
		s, err := feed.Refresh(context.Background())
		done <- refreshResult{s, err}
	}()

	<-gated.entered
	feed.Invalidate()
	close(gated.release)

	r := <-done
	assert.ErrorIs(t, r.err, engine.ErrStaleRefresh)
	assert.Nil(t, r.s)
	assert.Nil(t, feed.Session())
}

func TestFeed_CancelledRefreshInstallsNothing(t *testing.T) {
	f := newFixture(t, ubuntuScenario()...)
	gated := newGatedProfiles(f.profiles)
	eng := newEngine(gated, f.ledger, f.clock)
	feed := eng.NewFeed(ubuntuScenario()[0], 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan refreshResult, 1)
	go func() {
		s, err := feed.Refresh(ctx)
		done <- refreshResult{s, err}
	}()

	<-gated.entered
	cancel()
	close(gated.release)

	r := <-done
	assert.ErrorIs(t, r.err, engine.ErrStaleRefresh)
	assert.ErrorIs(t, r.err, context.Canceled)
	assert.Nil(t, feed.Session())
}

func TestFeed_SupersededRefreshLoses(t *testing.T) {
	f := newFixture(t, ubuntuScenario()...)
	gated := newGatedProfiles(f.profiles)
	eng := newEngine(gated, f.ledger, f.clock)
	feed := eng.NewFeed(ubuntuScenario()[0], 0)

	done := make(chan refreshResult, 1)
	go func() {
		s, err := feed.Refresh(context.Background())
		done <- refreshResult{s, err}
	}()
	<-gated.entered

	gated.blocking.Store(false)
	latest, err := feed.Refresh(context.Background())
	require.NoError(t, err)

	close(gated.release)
	r := <-done
	assert.ErrorIs(t, r.err, engine.ErrStaleRefresh)
	assert.Same(t, latest, feed.Session())
}

func TestFeed_LookupFailureInstallsEmptySession(t *testing.T) {
	profiles := &faultyProfiles{ProfileStore: memory.NewProfiles(), queryErr: errStoreDown}
	eng := newEngine(profiles, memory.NewInterests(nil), nil)
	feed := eng.NewFeed(profile("m", domain.GenderMale, "Ubuntu"), 0)

	s, err := feed.Refresh(context.Background())
	assert.ErrorIs(t, err, engine.ErrLookupFailure)
	require.NotNil(t, s)
	assert.Equal(t, engine.StateExhausted, s.State())
	assert.Same(t, s, feed.Session())
}

func TestFeed_InvalidViewerInstallsNothing(t *testing.T) {
	f := newFixture(t)
	feed := f.engine.NewFeed(profile("x", domain.Gender("?"), "Ubuntu"), 0)

	s, err := feed.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnknownGender)
	assert.Nil(t, s)
	assert.Nil(t, feed.Session())
}
