package latency

import (
	"context"
	"time"
)

// Delay simulates the round trip of a network call. The zero Delay returns
// immediately, which is what tests use.
type Delay struct {
	Duration time.Duration
}

func New(d time.Duration) Delay {
	return Delay{Duration: d}
}

// Wait blocks for the configured duration or until ctx ends.
func (d Delay) Wait(ctx context.Context) error {
	if d.Duration <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d.Duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
