package sources

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out the requests of a single source.
// The first request goes out immediately.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer allows one request per delay. A zero delay never waits.
func NewPacer(delay time.Duration) *Pacer {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Pacer{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next request may be sent or ctx is done
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
