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

	svcErr "github.com/oggyb/muzz-match/internal/errors"
	"github.com/oggyb/muzz-match/internal/matching"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"validation", fmt.Errorf("%w: bad id", matching.ErrValidation), codes.InvalidArgument},
		{"store unavailable", fmt.Errorf("%w: upsert: %w", matching.ErrStoreUnavailable, errors.New("conn reset")), codes.Unavailable},
		{"store timeout", fmt.Errorf("%w: upsert: %w", matching.ErrStoreUnavailable, context.DeadlineExceeded), codes.Unavailable},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"not found", gorm.ErrRecordNotFound, codes.NotFound},
		{"canceled", context.Canceled, codes.Canceled},
		{"status passes through", status.Error(codes.PermissionDenied, "nope"), codes.PermissionDenied},
		{"unknown", errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(svcErr.Map(tt.err)))
		})
	}

	assert.NoError(t, svcErr.Map(nil))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, codes.InvalidArgument, status.Code(svcErr.InvalidArgument("x")))
	assert.Equal(t, codes.PermissionDenied, status.Code(svcErr.PermissionDenied("x")))
	assert.Equal(t, codes.ResourceExhausted, status.Code(svcErr.ResourceExhausted("x")))
}
