package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a remote cache backend cannot be reached.
var ErrUnavailable = errors.New("cache backend unavailable")

// backoff is the retry schedule used by [RetryWithBackoff]: up to attempts
// calls, sleeping delay before the second and doubling it each time after.
var backoff = struct {
	attempts int
	delay    time.Duration
}{attempts: 3, delay: time.Second}

// retryable marks an error as transient.
type retryable struct{ error }

func (r retryable) Unwrap() error { return r.error }

// Retryable marks err as transient so that [RetryWithBackoff] tries again.
// A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryable{err}
}

// IsRetryable reports whether err, or any error it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var r retryable
	return errors.As(err, &r)
}

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// [Retryable], runs out of attempts, or ctx ends. It returns the last error
// from fn, or ctx.Err() if the context ended while waiting.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := backoff.delay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == backoff.attempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
