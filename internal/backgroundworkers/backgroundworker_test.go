package backgroundworkers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackgroundWorker(t *testing.T) {
	t.Run("StartAndClose", func(t *testing.T) {
		w := New(context.Background())

		started := make(chan struct{})
		require.True(t, w.Start("test", func(ctx context.Context) {
			close(started)
			<-ctx.Done()
		}))
		<-started
		require.Equal(t, 1, w.Running())

		closeErr := errors.New("close")
		require.NoError(t, w.Close(context.Background(), closeErr))
		require.Equal(t, 0, w.Running())
		require.ErrorIs(t, w.Context().Err(), closeErr)
	})

	t.Run("StartAfterClose", func(t *testing.T) {
		var w BackgroundWorker
		require.NoError(t, w.Close(context.Background(), errors.New("closed")))

		require.False(t, w.Start("test", func(ctx context.Context) {
			t.Fatal("must not start")
		}))
	})

	t.Run("CloseTimeout", func(t *testing.T) {
		w := New(context.Background())
		release := make(chan struct{})
		defer close(release)

		w.Start("stuck", func(ctx context.Context) {
			<-release
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		require.ErrorIs(t, w.Close(ctx, errors.New("close")), context.DeadlineExceeded)
	})
}
