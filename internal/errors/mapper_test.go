package errors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/engine"
	svcErr "github.com/oggyb/osmatch/internal/errors"
	"github.com/oggyb/osmatch/internal/store"
)

func TestMap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"profile not found", &engine.Error{Kind: engine.ErrProfileNotFound, Op: "load viewer"}, codes.NotFound},
		{"store not found", fmt.Errorf("get: %w", store.ErrNotFound), codes.NotFound},
		{"gorm not found", gorm.ErrRecordNotFound, codes.NotFound},
		{"exhausted", &engine.Error{Kind: engine.ErrSessionExhausted, Op: "decide"}, codes.FailedPrecondition},
		{"stale beats canceled", &engine.Error{Kind: engine.ErrStaleRefresh, Op: "refresh", Err: context.Canceled}, codes.FailedPrecondition},
		{"unknown gender", domain.ErrUnknownGender, codes.InvalidArgument},
		{"incomplete", fmt.Errorf("%w: os is required", domain.ErrIncompleteProfile), codes.InvalidArgument},
		{"direction", domain.ErrInvalidDirection, codes.InvalidArgument},
		{"self", engine.ErrSelfInterest, codes.InvalidArgument},
		{"lookup", &engine.Error{Kind: engine.ErrLookupFailure, Op: "scan", Err: cause}, codes.Unavailable},
		{"write", &engine.Error{Kind: engine.ErrWriteFailure, Op: "save", Err: cause}, codes.Unavailable},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"canceled", context.Canceled, codes.Canceled},
		{"other", cause, codes.Internal},
		{"already a status", status.Error(codes.PermissionDenied, "no"), codes.PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svcErr.Map(tt.err)
			assert.Equal(t, tt.want, status.Code(got))
		})
	}

	assert.NoError(t, svcErr.Map(nil))
}

func TestMap_HidesStoreCause(t *testing.T) {
	err := &engine.Error{Kind: engine.ErrLookupFailure, Op: "scan", Err: errors.New("password=secret")}
	assert.NotContains(t, svcErr.Map(err).Error(), "secret")
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, codes.InvalidArgument, status.Code(svcErr.InvalidArgument("bad")))
	assert.Equal(t, codes.FailedPrecondition, status.Code(svcErr.FailedPrecondition("gone")))
}
