package xerrors

import "errors"

type retryabler interface {
	error
	IsRetryable() bool
}

type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return e.err.Error()
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func (e *retryableError) IsRetryable() bool {
	return true
}

// Retryable marks err as safe to retry.
func Retryable(err error) error {
	if err == nil {
		return nil
	}

	return &retryableError{err: err}
}

// RetryableError returns the retryable error from the chain of err or nil.
func RetryableError(err error) error {
	var r retryabler
	if errors.As(err, &r) && r.IsRetryable() {
		return r
	}

	return nil
}
