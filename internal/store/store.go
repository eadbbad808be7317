// Package store declares the collaborators the matching engine reads and
// writes through: the Profile Store and the Interest Ledger.
package store

import (
	"context"
	"errors"

	"github.com/oggyb/osmatch/internal/domain"
)

// ErrNotFound indicates the requested profile does not exist.
var ErrNotFound = errors.New("profile not found")

// ProfileQuery is an equality-only filter over profiles.
// Zero-valued fields are not constrained.
type ProfileQuery struct {
	Gender domain.Gender
	OS     string
}

// Matches reports whether p satisfies every set field of q.
func (q ProfileQuery) Matches(p domain.Profile) bool {
	if q.Gender != "" && p.Gender != q.Gender {
		return false
	}
	if q.OS != "" && p.OS != q.OS {
		return false
	}
	return true
}

// ProfileStore holds profile documents.
//
// Result ordering expectations:
//   - QueryProfiles returns results ordered by ID ascending so a pool is stable within one query.
type ProfileStore interface {
	// GetProfile returns ErrNotFound when id is unknown.
	GetProfile(ctx context.Context, id domain.ProfileID) (domain.Profile, error)
	// GetProfiles resolves a batch of ids; unknown ids are absent from the result.
	GetProfiles(ctx context.Context, ids []domain.ProfileID) (map[domain.ProfileID]domain.Profile, error)
	QueryProfiles(ctx context.Context, q ProfileQuery, limit int) ([]domain.Profile, error)
	// SaveProfile creates the profile or replaces the stored document.
	SaveProfile(ctx context.Context, p domain.Profile) error
}

// InterestField selects which side of an InterestEvent a ledger query matches on.
type InterestField int

const (
	ByFrom InterestField = iota + 1
	ByTo
)

func (f InterestField) String() string {
	switch f {
	case ByFrom:
		return "from"
	case ByTo:
		return "to"
	}
	return "unknown"
}

// InterestLedger is the append-only record of directional likes.
//
// Adapters enforce at most one event per ordered (from, to) pair: appending an
// existing pair is a no-op that returns the originally stored event.
// Query results are ordered by timestamp ascending.
type InterestLedger interface {
	AppendInterest(ctx context.Context, from, to domain.ProfileID) (domain.InterestEvent, error)
	QueryInterest(ctx context.Context, by InterestField, id domain.ProfileID) ([]domain.InterestEvent, error)
	// HasInterest reports whether an event from -> to exists.
	HasInterest(ctx context.Context, from, to domain.ProfileID) (bool, error)
}
