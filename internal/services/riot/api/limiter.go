package api

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Development keys allow 20 requests per second and 100 per two minutes.
const (
	DefaultRatePerSecond     = 20
	DefaultRatePerTwoMinutes = 100
)

const longWindow = 2 * time.Minute

// limiter enforces both Riot rate windows.
type limiter struct {
	short *rate.Limiter
	long  *rate.Limiter
}

// newLimiter builds a two-window limiter. A non-positive count disables that
// window.
func newLimiter(perSecond, perTwoMinutes int) *limiter {
	return &limiter{
		short: windowLimiter(perSecond, time.Second),
		long:  windowLimiter(perTwoMinutes, longWindow),
	}
}

func windowLimiter(count int, window time.Duration) *rate.Limiter {
	if count <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(window/time.Duration(count)), count)
}

// Wait blocks until both windows admit one request.
func (l *limiter) Wait(ctx context.Context) error {
	if err := l.short.Wait(ctx); err != nil {
		return err
	}
	return l.long.Wait(ctx)
}
