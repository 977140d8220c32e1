package transport

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/partlog/partlog-go-sdk/internal/xerrors"
)

func TestError(t *testing.T) {
	base := errors.New("connection reset")

	t.Run("Retryable", func(t *testing.T) {
		err := fmt.Errorf("put: %w", NewError("PutMessages", CodeUnavailable, base))
		require.True(t, IsRetryable(err))
		require.False(t, IsFatal(err))
		require.Error(t, xerrors.RetryableError(err))
		require.ErrorIs(t, err, base)
	})

	t.Run("Fatal", func(t *testing.T) {
		err := NewError("PutMessages", CodeUnauthorized, base)
		require.False(t, IsRetryable(err))
		require.True(t, IsFatal(err))
		require.NoError(t, xerrors.RetryableError(err))
	})

	t.Run("Permanent", func(t *testing.T) {
		err := NewError("PutMessages", CodeInvalidArgument, base)
		require.False(t, IsRetryable(err))
		require.False(t, IsFatal(err))
		require.Contains(t, err.Error(), "InvalidArgument")
	})

	t.Run("CodeFromContext", func(t *testing.T) {
		require.Equal(t, CodeTimeout, CodeFromContext(context.DeadlineExceeded))
		require.Equal(t, CodeUnavailable, CodeFromContext(context.Canceled))
		require.Equal(t, CodeUnknown, CodeFromContext(base))
	})
}
