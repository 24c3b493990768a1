package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses, 409 conflicts)
// with this type so that [Retry] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a [RetryableError]. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Policy bounds how often and how fast [Retry] re-runs an operation.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	// A policy with MaxRetries 5 makes at most 6 attempts.
	MaxRetries int

	// Delay is the wait before the first retry.
	Delay time.Duration

	// Multiplier scales Delay after each retry. Values below 1 are treated
	// as 1, which gives a fixed delay.
	Multiplier float64

	// OnRetry, if set, is called before each wait with the 1-based retry
	// number and the error that caused it.
	OnRetry func(retry int, err error)
}

// DefaultConflictPolicy retries up to 5 times with a fixed one second delay.
func DefaultConflictPolicy() Policy {
	return Policy{MaxRetries: 5, Delay: time.Second, Multiplier: 1}
}

// Retry executes fn until it succeeds, returns a non-retryable error, or the
// policy runs out of retries. Only errors wrapped with [RetryableError] are
// retried. When retries are exhausted the last error is returned with the
// RetryableError wrapper removed. Returns ctx.Err() if cancelled while waiting.
func Retry(ctx context.Context, p Policy, fn func() error) error {
	retries := max(p.MaxRetries, 0)
	delay := p.Delay
	mult := max(p.Multiplier, 1)

	for i := 0; ; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i >= retries {
			return re.Err
		}

		if p.OnRetry != nil {
			p.OnRetry(i+1, re.Err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * mult)
		}
	}
}

// RetryWithBackoff is a convenience wrapper around [Retry] with sensible
// defaults: 3 attempts with 1 second initial delay (doubling each retry).
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, Policy{MaxRetries: 2, Delay: time.Second, Multiplier: 2}, fn)
}
