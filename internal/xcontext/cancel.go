package xcontext

import "context"

type CancelErrFunc func(err error)

type errCtx struct {
	context.Context
}

// Err returns the error passed to the cancel func instead of context.Canceled.
func (c errCtx) Err() error {
	if c.Context.Err() == nil {
		return nil
	}

	return context.Cause(c.Context)
}

func WithErrCancel(ctx context.Context) (context.Context, CancelErrFunc) {
	ctx, cancel := context.WithCancelCause(ctx)

	return errCtx{Context: ctx}, CancelErrFunc(cancel)
}
