package retry

import (
	"math"
	"math/rand"
	"time"
)

// Backoff computes a delay before the next attempt.
type Backoff interface {
	// Delay returns delay after attempt-th failed call, attempt starts from 1
	Delay(attempt int) time.Duration
}

// Policy is a bounded exponential backoff.
type Policy struct {
	// MaxAttempts counts all calls including the first one.
	// Zero or negative means retry until the context is done.
	MaxAttempts int

	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Factor         float64

	// Jitter is a fraction of the delay added at random, 0.1 adds up to 10%.
	Jitter float64
}

var _ Backoff = Policy{}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    5,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		Factor:         2,
		Jitter:         0.1,
	}
}

func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	factor := p.Factor
	if factor < 1 {
		factor = 1
	}

	d := float64(p.InitialBackoff) * math.Pow(factor, float64(attempt-1))
	if p.MaxBackoff > 0 && d > float64(p.MaxBackoff) {
		d = float64(p.MaxBackoff)
	}

	delay := time.Duration(d)
	if p.Jitter > 0 && delay > 0 {
		if j := int64(float64(delay) * p.Jitter); j > 0 {
			delay += time.Duration(rand.Int63n(j))
		}
	}

	return delay
}

func (p Policy) attemptsLeft(attempt int) bool {
	return p.MaxAttempts <= 0 || attempt < p.MaxAttempts
}
