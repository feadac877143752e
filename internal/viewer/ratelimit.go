// Package viewer implements the client-side reconciliation layer: the
// pieces that decide what a connected audience member actually sees and
// sends, independent of transport.
package viewer

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultMinInterval is the minimum spacing between outgoing reaction
// sends from one client.
const DefaultMinInterval = 250 * time.Millisecond

// RateLimiter throttles sends to at most one per interval. State is a
// single last-sent timestamp; there is no queue and no burst allowance,
// a suppressed send is simply dropped.
type RateLimiter struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	interval time.Duration
	lastSent time.Time
}

// NewRateLimiter returns a limiter with the default interval.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithClock(DefaultMinInterval, clockwork.NewRealClock())
}

// NewRateLimiterWithClock returns a limiter with an explicit interval and
// clock, for tests and non-default tuning.
func NewRateLimiterWithClock(interval time.Duration, clock clockwork.Clock) *RateLimiter {
	return &RateLimiter{clock: clock, interval: interval}
}

// Allow reports whether a send may proceed now. A true result consumes
// the slot: the next Allow within the interval returns false.
func (l *RateLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if !l.lastSent.IsZero() && now.Sub(l.lastSent) < l.interval {
		return false
	}
	l.lastSent = now
	return true
}
