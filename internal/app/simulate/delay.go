// Package simulate provides the fixed artificial latency that makes local
// calls behave like remote ones.
package simulate

import (
	"context"
	"time"
)

// Delay waits d. It returns ctx's error if the context ends first, so callers
// must call it before touching any state.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
