package batch

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

var _ Limiter = (*HostLimiter)(nil)

// Limiter blocks until a request to key may proceed.
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

// HostLimiter provides per-host rate limiting using token buckets.
// Requests to different RaaS endpoints proceed independently while requests
// to the same endpoint share one bucket.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a new HostLimiter allowing rps requests per second
// to each host with a burst of 1. A non-positive rps disables limiting.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

func (h *HostLimiter) limit() rate.Limit {
	if h.rps <= 0 {
		return rate.Inf
	}
	return rate.Limit(h.rps)
}

// Wait blocks until the rate limit allows a request to host.
// Returns an error if the context is canceled before the wait completes.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(h.limit(), 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}
