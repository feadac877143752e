package gesture

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultDoublePressWindow is how close two presses must land to count
// as one double press.
const DefaultDoublePressWindow = 500 * time.Millisecond

// DoublePressDetector recognizes two presses of the same control inside
// a short window. A recognized double press consumes both presses, so a
// third quick press starts a new sequence instead of chaining.
type DoublePressDetector struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	window time.Duration
	last   time.Time
}

func NewDoublePressDetector() *DoublePressDetector {
	return NewDoublePressDetectorWithClock(DefaultDoublePressWindow, clockwork.NewRealClock())
}

func NewDoublePressDetectorWithClock(window time.Duration, clock clockwork.Clock) *DoublePressDetector {
	return &DoublePressDetector{clock: clock, window: window}
}

// Press records a press and reports whether it completed a double press.
func (d *DoublePressDetector) Press() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	if !d.last.IsZero() && now.Sub(d.last) <= d.window {
		d.last = time.Time{}
		return true
	}
	d.last = now
	return false
}

// Reset forgets any pending press, so callers can cancel a sequence when
// focus moves elsewhere.
func (d *DoublePressDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = time.Time{}
}
