package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/engine"
	"github.com/oggyb/osmatch/internal/logger"
	"github.com/oggyb/osmatch/internal/repository/memory"
	"github.com/oggyb/osmatch/internal/store"
)

func TestRecordLike_SecondLikeObservesMatch(t *testing.T) {
	cases := []struct {
		name          string
		first, second domain.ProfileID
	}{
		{name: "a then b", first: "a", second: "b"},
		{name: "b then a", first: "b", second: "a"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := engine.NewDetector(memory.NewInterests(nil), logger.Nop())
			ctx := context.Background()

			res, err := d.RecordLike(ctx, tc.first, tc.second)
			require.NoError(t, err)
			assert.Equal(t, engine.NoMatch, res)

			res, err = d.RecordLike(ctx, tc.second, tc.first)
			require.NoError(t, err)
			assert.True(t, res.Matched)
			assert.Equal(t, tc.first, res.With)
		})
	}
}

func TestRecordLike_RepeatedLikeDoesNotMatchItself(t *testing.T) {
	ledger := memory.NewInterests(nil)
	d := engine.NewDetector(ledger, logger.Nop())

	for i := 0; i < 3; i++ {
		res, err := d.RecordLike(context.Background(), "a", "b")
		require.NoError(t, err)
		assert.False(t, res.Matched)
	}

	events, err := ledger.QueryInterest(context.Background(), store.ByFrom, "a")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestRecordLike_SelfInterest(t *testing.T) {
	ledger := &faultyLedger{InterestLedger: memory.NewInterests(nil)}
	d := engine.NewDetector(ledger, logger.Nop())

	_, err := d.RecordLike(context.Background(), "a", "a")
	assert.ErrorIs(t, err, engine.ErrSelfInterest)
	assert.Zero(t, ledger.appends.Load())
}

func TestRecordLike_Failures(t *testing.T) {
	t.Run("append", func(t *testing.T) {
		ledger := &faultyLedger{InterestLedger: memory.NewInterests(nil), appendErr: errStoreDown}
		d := engine.NewDetector(ledger, logger.Nop())

		res, err := d.RecordLike(context.Background(), "a", "b")
		assert.ErrorIs(t, err, engine.ErrWriteFailure)
		assert.ErrorIs(t, err, errStoreDown)
		assert.False(t, res.Matched)
		assert.Zero(t, ledger.hasCall.Load())
	})

	t.Run("reverse lookup", func(t *testing.T) {
		inner := memory.NewInterests(nil)
		ledger := &faultyLedger{InterestLedger: inner, hasErr: errStoreDown}
		d := engine.NewDetector(ledger, logger.Nop())

		_, err := d.RecordLike(context.Background(), "a", "b")
		assert.ErrorIs(t, err, engine.ErrLookupFailure)

		ok, err := inner.HasInterest(context.Background(), "a", "b")
		require.NoError(t, err)
		assert.True(t, ok, "the like itself persisted")
	})
}
