// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/engine"
	"github.com/oggyb/osmatch/internal/store"
)

// Map converts engine/store errors into gRPC status errors.
// Engine kinds are checked before context errors: a stale refresh or a timed
// out profile fetch carries its own meaning.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, engine.ErrProfileNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return status.Error(codes.NotFound, "profile not found")

	case errors.Is(err, engine.ErrSessionExhausted):
		return status.Error(codes.FailedPrecondition, "session exhausted")

	case errors.Is(err, engine.ErrStaleRefresh):
		return status.Error(codes.FailedPrecondition, "session was superseded")

	case errors.Is(err, domain.ErrUnknownGender),
		errors.Is(err, domain.ErrIncompleteProfile),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, engine.ErrSelfInterest):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, engine.ErrLookupFailure),
		errors.Is(err, engine.ErrWriteFailure):
		// raw store errors stay in the logs
		return status.Error(codes.Unavailable, "store unavailable, try again")

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled")

	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// InvalidArgument creates a gRPC InvalidArgument error.
// Use this in service layer for bad input validation.
func InvalidArgument(msg string) error {
	return status.Error(codes.InvalidArgument, msg)
}

// FailedPrecondition creates a gRPC FailedPrecondition error,
// e.g. for a decision on an unknown or ended session.
func FailedPrecondition(msg string) error {
	return status.Error(codes.FailedPrecondition, msg)
}
