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

func TestSelectCandidates_UbuntuScenario(t *testing.T) {
	f := newFixture(t, ubuntuScenario()...)

	viewer, err := f.profiles.GetProfile(context.Background(), "m1")
	require.NoError(t, err)

	pool, err := f.engine.SelectCandidates(context.Background(), viewer, 0)
	require.NoError(t, err)
	assert.Equal(t, []domain.ProfileID{"f1", "f2", "f3"}, ids(pool))
}

func TestSelectCandidates_PredicateHoldsForEveryViewer(t *testing.T) {
	seed := []domain.Profile{
		profile("a", domain.GenderMale, "Ubuntu"),
		profile("b", domain.GenderMale, "Arch Linux"),
		profile("c", domain.GenderFemale, "Ubuntu"),
		profile("d", domain.GenderFemale, "Arch Linux"),
		profile("e", domain.GenderFemale, "Ubuntu"),
		profile("f", domain.GenderMale, "Ubuntu"),
		profile("g", domain.GenderMale, "macOS"),
	}
	f := newFixture(t, seed...)

	for _, viewer := range seed {
		t.Run(string(viewer.ID), func(t *testing.T) {
			pool, err := f.engine.SelectCandidates(context.Background(), viewer, 0)
			require.NoError(t, err)

			want, err := viewer.Gender.Opposite()
			require.NoError(t, err)
			for _, p := range pool {
				assert.Equal(t, want, p.Gender)
				assert.Equal(t, viewer.OS, p.OS)
				assert.NotEqual(t, viewer.ID, p.ID)
			}
		})
	}
}

func TestSelectCandidates_ExcludesViewerEvenWithSameGenderData(t *testing.T) {
	// a viewer whose stored document disagrees with the one passed in must
	// still never be offered to itself
	f := newFixture(t,
		profile("a", domain.GenderFemale, "Ubuntu"),
		profile("b", domain.GenderFemale, "Ubuntu"),
	)
	viewer := profile("a", domain.GenderMale, "Ubuntu")

	pool, err := f.engine.SelectCandidates(context.Background(), viewer, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.ProfileID{"b"}, ids(pool))
}

func TestSelectCandidates_Limit(t *testing.T) {
	f := newFixture(t,
		profile("m", domain.GenderMale, "Fedora"),
		profile("w1", domain.GenderFemale, "Fedora"),
		profile("w2", domain.GenderFemale, "Fedora"),
		profile("w3", domain.GenderFemale, "Fedora"),
	)

	pool, err := f.engine.SelectCandidates(context.Background(), profile("m", domain.GenderMale, "Fedora"), 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.ProfileID{"w1", "w2"}, ids(pool))
}

func TestSelectCandidates_DefaultLimit(t *testing.T) {
	profiles := memory.NewProfiles()
	for i := 0; i < 30; i++ {
		id := string(rune('A'+i/10)) + string(rune('0'+i%10))
		require.NoError(t, profiles.SaveProfile(context.Background(), profile(id, domain.GenderFemale, "Debian")))
	}
	eng := newEngine(profiles, memory.NewInterests(nil), nil)

	pool, err := eng.SelectCandidates(context.Background(), profile("viewer", domain.GenderMale, "Debian"), 0)
	require.NoError(t, err)
	assert.Len(t, pool, engine.DefaultCandidateLimit)
}

func TestSelectCandidates_InvalidViewer(t *testing.T) {
	f := newFixture(t, ubuntuScenario()...)

	_, err := f.engine.SelectCandidates(context.Background(), profile("x", domain.Gender("other"), "Ubuntu"), 0)
	assert.ErrorIs(t, err, domain.ErrUnknownGender)

	_, err = f.engine.SelectCandidates(context.Background(), profile("x", domain.GenderMale, " "), 0)
	assert.ErrorIs(t, err, domain.ErrIncompleteProfile)
}

func TestSelectCandidates_LookupFailure(t *testing.T) {
	profiles := &faultyProfiles{ProfileStore: memory.NewProfiles(), queryErr: errStoreDown}
	eng := newEngine(profiles, memory.NewInterests(nil), nil)

	pool, err := eng.SelectCandidates(context.Background(), profile("m", domain.GenderMale, "Ubuntu"), 0)
	assert.Nil(t, pool)
	assert.ErrorIs(t, err, engine.ErrLookupFailure)
	assert.ErrorIs(t, err, errStoreDown)
}
