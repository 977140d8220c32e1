package xcontext

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithErrCancel(t *testing.T) {
	ctx, cancel := WithErrCancel(context.Background())
	require.NoError(t, ctx.Err())

	testErr := errors.New("test")
	cancel(testErr)
	<-ctx.Done()
	require.ErrorIs(t, ctx.Err(), testErr)

	cancel(errors.New("second"))
	require.ErrorIs(t, ctx.Err(), testErr)
}
