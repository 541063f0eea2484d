package geocoding

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter gates outbound calls. *rate.Limiter satisfies it.
type Limiter interface {
	Wait(ctx context.Context) error
}

// NewLimiter allows one call per interval. The initial token is spent up front
// so even the first call waits a full interval, and callers sharing the
// limiter are serialized.
func NewLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	l := rate.NewLimiter(rate.Every(interval), 1)
	l.Allow()
	return l
}
