package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/osmatch/internal/clock"
	"github.com/oggyb/osmatch/internal/store"
)

func TestInterestsTimestampsStrictlyIncrease(t *testing.T) {
	ctx := context.Background()
	c := clock.NewManual(time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC))
	l := NewInterests(c)

	// frozen clock: the ledger still hands out increasing timestamps
	first, err := l.AppendInterest(ctx, "a", "b")
	require.NoError(t, err)
	second, err := l.AppendInterest(ctx, "a", "c")
	require.NoError(t, err)
	assert.True(t, second.Timestamp.After(first.Timestamp))

	c.Advance(time.Hour)
	third, err := l.AppendInterest(ctx, "a", "d")
	require.NoError(t, err)
	assert.Equal(t, c.Now(), third.Timestamp)

	out, err := l.QueryInterest(ctx, store.ByFrom, "a")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "b", out[0].To.String())
	assert.Equal(t, "d", out[2].To.String())
}

func TestInterestsHonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewInterests(nil).AppendInterest(ctx, "a", "b")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewProfiles().GetProfile(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}
