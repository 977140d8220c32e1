package retry

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/partlog/partlog-go-sdk/internal/xerrors"
)

type Info struct {
	Attempt int
	Delay   time.Duration
	Error   error
}

// Do calls op until it succeeds, returns a non retryable error or the policy
// runs out of attempts. It returns number of calls made and the last error.
// onRetry may be nil.
func Do(
	ctx context.Context,
	clock clockwork.Clock,
	policy Policy,
	op func(ctx context.Context, attempt int) error,
	onRetry func(Info),
) (attempts int, err error) {
	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err == nil {
				err = ctxErr
			}

			return attempt - 1, err
		}

		err = op(ctx, attempt)
		if err == nil {
			return attempt, nil
		}
		if ctx.Err() != nil || xerrors.RetryableError(err) == nil || !policy.attemptsLeft(attempt) {
			return attempt, err
		}

		delay := policy.Delay(attempt)
		if onRetry != nil {
			onRetry(Info{Attempt: attempt, Delay: delay, Error: err})
		}

		select {
		case <-ctx.Done():
			return attempt, err
		case <-clock.After(delay):
		}
	}
}
