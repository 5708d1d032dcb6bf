// Package retry runs an operation again when it reports a rate-limit signal.
//
// The loop is bounded and the wait is delegated to a Sleeper, so callers and
// tests control time explicitly instead of relying on real timers.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrRetriesExhausted wraps the last rate-limit error once MaxRetries is spent.
var ErrRetriesExhausted = errors.New("rate limit retries exhausted")

// RateLimited is implemented by errors that ask the caller to back off.
// RetryHint returns the server-provided wait, or zero when there is none.
type RateLimited interface {
	error
	RetryHint() time.Duration
}

// Sleeper waits for d or until ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

type realSleeper struct{}

// RealSleeper blocks on a timer.
var RealSleeper Sleeper = realSleeper{}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Policy describes the backoff: BaseDelay doubles per attempt unless the
// error carries its own hint.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Sleeper    Sleeper
}

// DefaultPolicy is 3 retries starting at 2s.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: 3, BaseDelay: 2 * time.Second, Sleeper: RealSleeper}
}

// Delay returns the wait before retry number attempt (0-based).
func (p Policy) Delay(attempt int, hint time.Duration) time.Duration {
	if hint > 0 {
		return hint
	}
	return p.BaseDelay * time.Duration(1<<uint(attempt))
}

// Do calls op until it succeeds, fails with a non rate-limit error, or the
// retry budget is spent. Only RateLimited errors are retried.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	sleeper := p.Sleeper
	if sleeper == nil {
		sleeper = RealSleeper
	}

	var zero T
	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		var limited RateLimited
		if !errors.As(err, &limited) {
			return zero, err
		}
		if attempt >= p.MaxRetries {
			return zero, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempt+1, err)
		}

		if serr := sleeper.Sleep(ctx, p.Delay(attempt, limited.RetryHint())); serr != nil {
			return zero, serr
		}
	}
}
