package cache_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/osmatch/internal/cache"
	"github.com/oggyb/osmatch/internal/clock"
	"github.com/oggyb/osmatch/internal/config"
	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/store"
	"github.com/oggyb/osmatch/internal/store/storetest"
)

func setupRedis(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.Password = ""
	cfg.Redis.DB = 0

	rc := cache.NewRedisCache(cfg)
	t.Cleanup(func() { _ = rc.Close() })
	require.NoError(t, rc.Ping(context.Background()))
	return rc, mr
}

func TestContract_RedisInterestLedger(t *testing.T) {
	storetest.RunInterestLedger(t, func(t *testing.T) store.InterestLedger {
		rc, _ := setupRedis(t)
		return cache.NewInterestLedger(rc, nil)
	})
}

func TestRedisInterestLedgerLayout(t *testing.T) {
	ctx := context.Background()
	rc, mr := setupRedis(t)
	at := time.Date(2026, time.May, 4, 9, 30, 0, 0, time.UTC)
	l := cache.NewInterestLedger(rc, clock.NewManual(at))

	ev, err := l.AppendInterest(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, ev.Timestamp.Equal(at))

	assert.Equal(t, strconv.FormatInt(at.UnixMilli(), 10), mr.HGet("interest:pairs:a", "b"))
	members, err := mr.ZMembers("interest:out:a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, members)
	members, err = mr.ZMembers("interest:in:b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, members)

	in, err := l.QueryInterest(ctx, store.ByTo, "b")
	require.NoError(t, err)
	require.Len(t, in, 1)
	assert.True(t, in[0].Timestamp.Equal(at))
}

func TestRedisInterestLedgerRestoresMissingIndexes(t *testing.T) {
	ctx := context.Background()
	rc, mr := setupRedis(t)
	stored := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	later := stored.Add(time.Hour)
	l := cache.NewInterestLedger(rc, clock.NewManual(later))

	// pair claimed but never indexed
	mr.HSet("interest:pairs:a", "b", strconv.FormatInt(stored.UnixMilli(), 10))

	ev, err := l.AppendInterest(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, ev.Timestamp.Equal(stored))

	out, err := l.QueryInterest(ctx, store.ByFrom, "a")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.ProfileID("b"), out[0].To)
	assert.True(t, out[0].Timestamp.Equal(stored))

	in, err := l.QueryInterest(ctx, store.ByTo, "b")
	require.NoError(t, err)
	require.Len(t, in, 1)
	assert.Equal(t, domain.ProfileID("a"), in[0].From)
	assert.True(t, in[0].Timestamp.Equal(stored))
}

func TestRedisInterestLedgerUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	rc := cache.NewRedisCache(cfg)
	t.Cleanup(func() { _ = rc.Close() })
	l := cache.NewInterestLedger(rc, nil)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = l.AppendInterest(ctx, "a", "b")
	assert.Error(t, err)
	_, err = l.QueryInterest(ctx, store.ByFrom, "a")
	assert.Error(t, err)
}
