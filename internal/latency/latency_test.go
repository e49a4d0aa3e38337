package latency

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestZeroDelayReturnsImmediately(t *testing.T) {
	start := time.Now()
	if err := New(0).Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Fatal("zero delay blocked")
	}
}

func TestDelayWaits(t *testing.T) {
	start := time.Now()
	if err := New(20 * time.Millisecond).Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Fatal("returned before the delay elapsed")
	}
}

func TestDelayStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := New(time.Hour).Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait = %v, want context.Canceled", err)
	}
}
