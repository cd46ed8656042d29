package fetch

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a minimum spacing between any two requests issued by
// the process, regardless of which source or worker triggers them. The
// last-request timestamp is the single point of serialization shared by
// all workers.
type Limiter struct {
	mu   sync.Mutex
	min  time.Duration
	last time.Time
}

func NewLimiter(min time.Duration) *Limiter {
	return &Limiter{min: min}
}

// Wait blocks until the caller may issue the next request. The slot is
// reserved under the mutex, so concurrent callers are spaced out rather
// than released together.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.min <= 0 {
		return nil
	}

	l.mu.Lock()
	now := time.Now()
	target := l.last.Add(l.min)
	if target.Before(now) {
		target = now
	}
	l.last = target
	l.mu.Unlock()

	delay := time.Until(target)
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
