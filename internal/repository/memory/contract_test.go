package memory

import (
	"testing"

	"github.com/oggyb/osmatch/internal/store"
	"github.com/oggyb/osmatch/internal/store/storetest"
)

func TestContract_Profiles(t *testing.T) {
	storetest.RunProfileStore(t, func(t *testing.T) store.ProfileStore {
		t.Helper()
		return NewProfiles()
	})
}

func TestContract_Interests(t *testing.T) {
	storetest.RunInterestLedger(t, func(t *testing.T) store.InterestLedger {
		t.Helper()
		return NewInterests(nil)
	})
}
