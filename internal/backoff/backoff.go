// README: Exponential backoff shared by the model client and the orchestrator.
package backoff

import (
	"context"
	"math/rand"
	"time"
)

const (
	// Base is the first retry delay; it doubles on every attempt.
	Base = time.Second
	// Cap bounds any single delay, jittered or not.
	Cap = 10 * time.Second
	// maxJitter is added to end-to-end retries so concurrent requests fan out.
	maxJitter = time.Second
)

// Delay returns the wait before retry number attempt (0-based): Base doubled
// per attempt, capped at Cap.
func Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := Base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= Cap {
			return Cap
		}
	}
	if d > Cap {
		return Cap
	}
	return d
}

// DelayJitter is Delay plus up to one second of random jitter, still capped.
func DelayJitter(attempt int) time.Duration {
	d := Delay(attempt) + time.Duration(rand.Int63n(int64(maxJitter)))
	if d > Cap {
		return Cap
	}
	return d
}

// Sleep waits d or until ctx is done, returning ctx.Err() in the latter case.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
