package providers

import (
	"context"
	"math"

	"golang.org/x/time/rate"
)

// Limiter throttles outgoing extraction requests. A nil *Limiter performs no
// limiting, so callers can pass one through unconditionally.
type Limiter struct {
	rl *rate.Limiter
}

// NewLimiter creates a limiter allowing rps requests per second with a burst
// sized to the rate. rps <= 0 disables limiting.
func NewLimiter(rps float64) *Limiter {
	if rps <= 0 {
		return nil
	}
	burst := int(math.Ceil(rps))
	if burst < 1 {
		burst = 1
	}
	return &Limiter{rl: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Wait blocks until a request slot is available or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.rl.Wait(ctx)
}

// SetRate adjusts the rate of a live limiter, so a config reload can
// throttle or speed up a run already in flight. A nil limiter stays
// disabled; rps <= 0 lifts the limit.
func (l *Limiter) SetRate(rps float64) {
	if l == nil {
		return
	}
	if rps <= 0 {
		l.rl.SetLimit(rate.Inf)
		return
	}
	burst := int(math.Ceil(rps))
	if burst < 1 {
		burst = 1
	}
	l.rl.SetLimit(rate.Limit(rps))
	l.rl.SetBurst(burst)
}
