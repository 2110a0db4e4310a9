package tryon

import (
	"context"
	"errors"
	"time"
)

// ErrPollExhausted is returned when the attempt ceiling is reached before
// the polled operation finishes.
var ErrPollExhausted = errors.New("poll attempts exhausted")

// poll invokes check every interval until it reports done, fails, or
// maxAttempts is spent. The first check runs after one interval, matching
// job APIs that never finish immediately. A context cancellation aborts
// the wait.
func poll(ctx context.Context, interval time.Duration, maxAttempts int, check func() (done bool, err error)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		done, err := check()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return ErrPollExhausted
}
