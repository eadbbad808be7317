package engine

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced by the engine. Store-facing errors never leave the
// engine raw: they are wrapped in an *Error carrying one of these kinds.
var (
	// ErrLookupFailure: the store was unreachable or a query failed. Callers
	// treat the result as empty and may offer a retry.
	ErrLookupFailure = errors.New("lookup failure")
	// ErrSessionExhausted: a decision was issued past the end of the pool.
	ErrSessionExhausted = errors.New("session exhausted")
	// ErrProfileNotFound: an id does not resolve to a profile, or the bounded
	// fetch gave up waiting.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrWriteFailure: a write did not persist. A failed like still advances
	// the session but is not durable.
	ErrWriteFailure = errors.New("write failure")

	ErrSelfInterest = errors.New("cannot express interest in yourself")
	// ErrStaleRefresh: a feed refresh was cancelled or superseded before it finished.
	ErrStaleRefresh = errors.New("refresh no longer relevant")
)

// Error annotates a failure kind with the operation and its cause.
// errors.Is matches both the kind and the cause.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func wrap(kind error, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}
