package transport

import (
	"context"
	"errors"
	"fmt"
)

type Code uint8

const (
	CodeUnknown Code = iota
	CodeUnavailable
	CodeTimeout
	CodeInvalidArgument
	CodeUnauthorized
	CodeNotFound
)

func (c Code) String() string {
	switch c {
	case CodeUnknown:
		return "Unknown"
	case CodeUnavailable:
		return "Unavailable"
	case CodeTimeout:
		return "Timeout"
	case CodeInvalidArgument:
		return "InvalidArgument"
	case CodeUnauthorized:
		return "Unauthorized"
	case CodeNotFound:
		return "NotFound"
	default:
		return fmt.Sprintf("Code(%d)", uint8(c))
	}
}

// Error is a failed transport call.
type Error struct {
	Op   string
	Code Code
	Err  error
}

func NewError(op string, code Code, err error) *Error {
	return &Error{Op: op, Code: code, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("partlog: transport %s failed (%s): %v", e.Op, e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the same call may succeed later.
func (e *Error) IsRetryable() bool {
	return e.Code == CodeUnavailable || e.Code == CodeTimeout
}

// IsFatal reports whether the client can't make progress at all,
// a writer stops accepting messages after such error.
func (e *Error) IsFatal() bool {
	return e.Code == CodeUnauthorized || e.Code == CodeNotFound
}

func IsRetryable(err error) bool {
	var e *Error

	return errors.As(err, &e) && e.IsRetryable()
}

func IsFatal(err error) bool {
	var e *Error

	return errors.As(err, &e) && e.IsFatal()
}

// CodeFromContext maps context errors, other errors become CodeUnknown.
func CodeFromContext(err error) Code {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, context.Canceled):
		return CodeUnavailable
	default:
		return CodeUnknown
	}
}
