package scraper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestGateWindowInvariant(t *testing.T) {
	gate := newRequestGate(3, 0)
	gate.window = 300 * time.Millisecond

	var grants []time.Time
	ctx := context.Background()
	for i := 0; i < 8; i++ {
		require.NoError(t, gate.Wait(ctx))
		grants = append(grants, time.Now())
	}

	// No trailing window may contain more grants than the cap.
	for i := range grants {
		inWindow := 0
		for j := 0; j <= i; j++ {
			if grants[i].Sub(grants[j]) < gate.window {
				inWindow++
			}
		}
		assert.LessOrEqual(t, inWindow, 3, "window ending at grant %d", i)
	}
}

func TestRequestGateMinDelay(t *testing.T) {
	delay := 25 * time.Millisecond
	gate := newRequestGate(1000, delay)

	var grants []time.Time
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, gate.Wait(ctx))
		grants = append(grants, time.Now())
	}

	for i := 1; i < len(grants); i++ {
		gap := grants[i].Sub(grants[i-1])
		assert.GreaterOrEqual(t, gap, delay-time.Millisecond, "gap between grants %d and %d", i-1, i)
	}
}

func TestRequestGateCancel(t *testing.T) {
	gate := newRequestGate(1, 0)
	gate.window = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, gate.Wait(ctx))

	done := make(chan error, 1)
	go func() { done <- gate.Wait(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancellation")
	}
}
