package pipeline

import (
	"context"
	"errors"
	"time"
)

// terminalError marks a failure that retrying cannot fix, such as malformed
// input. It short-circuits the retry loop without consuming budget.
type terminalError struct {
	err error
}

func (e *terminalError) Error() string { return e.err.Error() }
func (e *terminalError) Unwrap() error { return e.err }

// Terminal wraps err so the retry controller gives up immediately.
func Terminal(err error) error {
	if err == nil {
		return nil
	}
	return &terminalError{err: err}
}

// IsTerminal reports whether err (or anything it wraps) was marked Terminal.
func IsTerminal(err error) bool {
	var t *terminalError
	return errors.As(err, &t)
}

// Attempt invokes op up to maxRetries+1 times, waiting a constant delay
// between attempts. It returns the value of the first success, the number of
// invocations made, and on exhaustion the last error seen. Terminal errors
// and context cancellation end the loop early.
func Attempt[R any](ctx context.Context, maxRetries int, delay time.Duration, op func(context.Context) (R, error)) (R, int, error) {
	var (
		zero    R
		lastErr error
	)
	if maxRetries < 0 {
		maxRetries = 0
	}

	attempts := 0
	for attempts <= maxRetries {
		value, err := op(ctx)
		attempts++
		if err == nil {
			return value, attempts, nil
		}
		lastErr = err

		if IsTerminal(err) {
			return zero, attempts, err
		}
		if attempts > maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return zero, attempts, ctx.Err()
		case <-time.After(delay):
		}
	}
	return zero, attempts, lastErr
}
