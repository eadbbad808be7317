package engine

import (
	"context"
	"log/slog"

	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/store"
)

// MatchResult tells whether a like completed a reciprocal pair.
// With names the other profile; the caller hydrates it only when Matched.
type MatchResult struct {
	Matched bool
	With    domain.ProfileID
}

// NoMatch is the result of a one-way like.
var NoMatch = MatchResult{}

// Detector records likes and checks them for reciprocity.
type Detector struct {
	ledger store.InterestLedger
	log    *slog.Logger
}

func NewDetector(ledger store.InterestLedger, log *slog.Logger) *Detector {
	return &Detector{ledger: ledger, log: log}
}

// RecordLike appends from -> to and then looks for to -> from.
//
// The append and the reverse lookup are two separate store calls. When two
// profiles like each other at the same instant, both may observe NoMatch; the
// pair still shows up in the roster afterwards. This window is not retried.
//
// Errors: ErrSelfInterest; ErrWriteFailure when the append fails (nothing else
// is attempted); ErrLookupFailure when the like persisted but the reverse
// lookup failed.
func (d *Detector) RecordLike(ctx context.Context, from, to domain.ProfileID) (MatchResult, error) {
	if from == to {
		return NoMatch, ErrSelfInterest
	}

	if _, err := d.ledger.AppendInterest(ctx, from, to); err != nil {
		return NoMatch, wrap(ErrWriteFailure, "record like", err)
	}

	reciprocal, err := d.ledger.HasInterest(ctx, to, from)
	if err != nil {
		return NoMatch, wrap(ErrLookupFailure, "check reciprocal like", err)
	}
	if !reciprocal {
		d.log.Debug("like recorded", "from", from, "to", to)
		return NoMatch, nil
	}

	d.log.Debug("mutual match", "from", from, "to", to)
	return MatchResult{Matched: true, With: to}, nil
}
