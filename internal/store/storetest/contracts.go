// Package storetest holds contract suites every store adapter must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/store"
)

type ProfileStoreFactory func(t *testing.T) store.ProfileStore
type InterestLedgerFactory func(t *testing.T) store.InterestLedger

func profile(id, gender, os string) domain.Profile {
	return domain.Profile{
		ID:        domain.ProfileID(id),
		Name:      "name-" + id,
		Gender:    domain.Gender(gender),
		OS:        os,
		BirthDate: time.Date(1998, time.March, 9, 0, 0, 0, 0, time.UTC),
	}
}

// RunProfileStore exercises the ProfileStore contract against a fresh store per subtest.
func RunProfileStore(t *testing.T, newStore ProfileStoreFactory) {
	t.Helper()

	t.Run("save and get round trip", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		p := profile("p1", "kadin", "Ubuntu")
		p.Bio = "tiling wm enjoyer"
		p.Image = "https://example.com/p1.png"
		require.NoError(t, s.SaveProfile(ctx, p))

		got, err := s.GetProfile(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, p.Name, got.Name)
		assert.Equal(t, p.Gender, got.Gender)
		assert.Equal(t, p.OS, got.OS)
		assert.Equal(t, p.Bio, got.Bio)
		assert.Equal(t, p.Image, got.Image)
		assert.Equal(t, "1998-03-09", got.BirthDate.UTC().Format("2006-01-02"))
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := newStore(t).GetProfile(context.Background(), "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("save replaces existing document", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		p := profile("p1", "erkek", "Fedora")
		require.NoError(t, s.SaveProfile(ctx, p))
		p.OS = "Arch Linux"
		p.Name = "renamed"
		require.NoError(t, s.SaveProfile(ctx, p))

		got, err := s.GetProfile(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Arch Linux", got.OS)
		assert.Equal(t, "renamed", got.Name)
	})

	t.Run("query filters by equality, orders by id and caps at limit", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		for _, p := range []domain.Profile{
			profile("c", "kadin", "Ubuntu"),
			profile("a", "kadin", "Ubuntu"),
			profile("b", "kadin", "Ubuntu"),
			profile("d", "kadin", "Windows 11"),
			profile("e", "erkek", "Ubuntu"),
		} {
			require.NoError(t, s.SaveProfile(ctx, p))
		}

		got, err := s.QueryProfiles(ctx, store.ProfileQuery{Gender: "kadin", OS: "Ubuntu"}, 10)
		require.NoError(t, err)
		assert.Equal(t, []domain.ProfileID{"a", "b", "c"}, ids(got))

		got, err = s.QueryProfiles(ctx, store.ProfileQuery{Gender: "kadin", OS: "Ubuntu"}, 2)
		require.NoError(t, err)
		assert.Equal(t, []domain.ProfileID{"a", "b"}, ids(got))

		got, err = s.QueryProfiles(ctx, store.ProfileQuery{OS: "Ubuntu"}, 10)
		require.NoError(t, err)
		assert.Equal(t, []domain.ProfileID{"a", "b", "c", "e"}, ids(got))
	})

	t.Run("batch get omits unknown ids", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.SaveProfile(ctx, profile("x", "erkek", "Debian")))
		require.NoError(t, s.SaveProfile(ctx, profile("y", "kadin", "Debian")))

		got, err := s.GetProfiles(ctx, []domain.ProfileID{"x", "ghost", "y"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, "name-x", got["x"].Name)
		assert.Equal(t, "name-y", got["y"].Name)

		got, err = s.GetProfiles(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

// RunInterestLedger exercises the InterestLedger contract against a fresh ledger per subtest.
func RunInterestLedger(t *testing.T, newLedger InterestLedgerFactory) {
	t.Helper()

	t.Run("append records a timestamped event", func(t *testing.T) {
		ev, err := newLedger(t).AppendInterest(context.Background(), "a", "b")
		require.NoError(t, err)
		assert.Equal(t, domain.ProfileID("a"), ev.From)
		assert.Equal(t, domain.ProfileID("b"), ev.To)
		assert.False(t, ev.Timestamp.IsZero())
	})

	t.Run("duplicate pair collapses to the first event", func(t *testing.T) {
		ctx := context.Background()
		l := newLedger(t)

		first, err := l.AppendInterest(ctx, "a", "b")
		require.NoError(t, err)
		again, err := l.AppendInterest(ctx, "a", "b")
		require.NoError(t, err)
		assert.True(t, first.Timestamp.Equal(again.Timestamp))

		out, err := l.QueryInterest(ctx, store.ByFrom, "a")
		require.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("queries by from and to", func(t *testing.T) {
		ctx := context.Background()
		l := newLedger(t)

		for _, pair := range [][2]domain.ProfileID{{"a", "b"}, {"a", "c"}, {"c", "a"}, {"d", "b"}} {
			_, err := l.AppendInterest(ctx, pair[0], pair[1])
			require.NoError(t, err)
		}

		out, err := l.QueryInterest(ctx, store.ByFrom, "a")
		require.NoError(t, err)
		assert.ElementsMatch(t, []domain.ProfileID{"b", "c"}, targets(out))

		in, err := l.QueryInterest(ctx, store.ByTo, "b")
		require.NoError(t, err)
		assert.ElementsMatch(t, []domain.ProfileID{"a", "d"}, sources(in))

		none, err := l.QueryInterest(ctx, store.ByTo, "zzz")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("has interest is directional", func(t *testing.T) {
		ctx := context.Background()
		l := newLedger(t)

		_, err := l.AppendInterest(ctx, "a", "b")
		require.NoError(t, err)

		ok, err := l.HasInterest(ctx, "a", "b")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = l.HasInterest(ctx, "b", "a")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ids containing separators stay distinct", func(t *testing.T) {
		ctx := context.Background()
		l := newLedger(t)

		_, err := l.AppendInterest(ctx, "a", "b:c")
		require.NoError(t, err)

		ok, err := l.HasInterest(ctx, "a:b", "c")
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = l.AppendInterest(ctx, "a:b", "c")
		require.NoError(t, err)

		ok, err = l.HasInterest(ctx, "a:b", "c")
		require.NoError(t, err)
		assert.True(t, ok)

		out, err := l.QueryInterest(ctx, store.ByFrom, "a:b")
		require.NoError(t, err)
		assert.Equal(t, []domain.ProfileID{"c"}, targets(out))

		in, err := l.QueryInterest(ctx, store.ByTo, "c")
		require.NoError(t, err)
		assert.Equal(t, []domain.ProfileID{"a:b"}, sources(in))

		out, err = l.QueryInterest(ctx, store.ByFrom, "a")
		require.NoError(t, err)
		assert.Equal(t, []domain.ProfileID{"b:c"}, targets(out))
	})
}

func ids(ps []domain.Profile) []domain.ProfileID {
	out := make([]domain.ProfileID, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func targets(evs []domain.InterestEvent) []domain.ProfileID {
	out := make([]domain.ProfileID, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.To)
	}
	return out
}

func sources(evs []domain.InterestEvent) []domain.ProfileID {
	out := make([]domain.ProfileID, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.From)
	}
	return out
}
