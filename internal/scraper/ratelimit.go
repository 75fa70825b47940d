package scraper

import (
	"context"
	"sync"
	"time"
)

// requestGate throttles outgoing requests with two stacked constraints:
// a sliding-window cap (at most perMinute grants inside any trailing
// window) and a fixed minimum delay between consecutive grants. Wait
// checks the window first, then the delay, so a burst that exhausts the
// window blocks for the window remainder before the per-request pacing
// applies.
type requestGate struct {
	mu        sync.Mutex
	perMinute int
	minDelay  time.Duration
	window    time.Duration
	stamps    []time.Time
	last      time.Time
}

func newRequestGate(perMinute int, minDelay time.Duration) *requestGate {
	return &requestGate{
		perMinute: perMinute,
		minDelay:  minDelay,
		window:    time.Minute,
	}
}

// Wait blocks until the next request is allowed, or until ctx is done.
// Concurrent callers serialize; each grant is recorded atomically with
// the wait that earned it.
func (g *requestGate) Wait(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	g.prune(now)

	if g.perMinute > 0 && len(g.stamps) >= g.perMinute {
		wait := g.window - now.Sub(g.stamps[0])
		if wait > 0 {
			if err := sleepCtx(ctx, wait); err != nil {
				return err
			}
		}
		now = time.Now()
		g.prune(now)
	}

	if g.minDelay > 0 && !g.last.IsZero() {
		if since := now.Sub(g.last); since < g.minDelay {
			if err := sleepCtx(ctx, g.minDelay-since); err != nil {
				return err
			}
			now = time.Now()
		}
	}

	g.stamps = append(g.stamps, now)
	g.last = now
	return nil
}

func (g *requestGate) prune(now time.Time) {
	cutoff := now.Add(-g.window)
	kept := g.stamps[:0]
	for _, t := range g.stamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	g.stamps = kept
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
