package xerrors

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// WithStackTrace annotates err with the stack of the caller.
// An error that already carries a stack trace is returned as is.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	var st stackTracer
	if errors.As(err, &st) {
		return err
	}

	return pkgerrors.WithStack(err)
}

// NewWithStackTrace is errors.New with a stack trace.
func NewWithStackTrace(text string) error {
	return pkgerrors.New(text)
}
