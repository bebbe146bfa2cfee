package archive

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer throttles live fetches against the metadata service so that
// successive requests never exceed a fixed queries-per-second budget.
// Cached hits bypass the pacer entirely.
//
// Design decision: We wrap a token bucket rather than sleeping after
// each request. The bucket naturally credits back the time a request
// itself took, and injecting the clock makes the pacing contract
// testable without wall-clock sleeps.
type Pacer struct {
	// limiter is the underlying token bucket, sized for burst 1 so
	// request starts are spaced by at least the inter-request interval.
	limiter *rate.Limiter

	// now and sleep are the injected clock. Defaults are time.Now and
	// time.Sleep.
	now   func() time.Time
	sleep func(time.Duration)
}

// PacerOption configures a Pacer.
type PacerOption func(*Pacer)

// WithClock injects the time source and sleep function.
// Tests use this to verify pacing without real delays.
func WithClock(now func() time.Time, sleep func(time.Duration)) PacerOption {
	return func(p *Pacer) {
		p.now = now
		p.sleep = sleep
	}
}

// NewPacer creates a Pacer limited to maxQPS queries per second.
// A non-positive maxQPS disables pacing.
func NewPacer(maxQPS float64, opts ...PacerOption) *Pacer {
	limit := rate.Inf
	if maxQPS > 0 {
		limit = rate.Limit(maxQPS)
	}
	p := &Pacer{
		limiter: rate.NewLimiter(limit, 1),
		now:     time.Now,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pace blocks until the next live fetch may start.
// It returns early with the context's error if the context is done.
func (p *Pacer) Pace(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := p.now()
	delay := p.limiter.ReserveN(now, 1).DelayFrom(now)
	if delay > 0 {
		p.sleep(delay)
	}
	return nil
}
