package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss reports a key that a remote backend does not hold.
	ErrCacheMiss = errors.New("cache miss")

	// ErrNetwork reports a remote backend that could not be reached.
	ErrNetwork = errors.New("network error")
)

// RetryableError marks a backend failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable marks err for RetryWithBackoff. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err or anything it wraps was marked Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// backoff is the retry schedule used by remote backends.
var backoff = struct {
	attempts int
	first    time.Duration
}{attempts: 3, first: 50 * time.Millisecond}

// RetryWithBackoff calls fn until it succeeds, returns an error that is not
// retryable, or runs out of attempts. The wait doubles after each failure.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	wait := backoff.first
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == backoff.attempts {
			return err
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
}
