// Package gesture turns raw presenter input into slide navigation.
package gesture

import "sync"

// TransitionFunc runs the visual transition from one slide to another.
// It is best-effort: a failed transition never blocks the index change.
type TransitionFunc func(from, to int) error

// Navigator is the single source of truth for the current slide index.
// Every movement lands inside [0, total-1]; requests that would leave
// the range are silently ignored rather than clamped to an edge the
// presenter did not ask for.
type Navigator struct {
	mu         sync.Mutex
	total      int
	current    int
	transition TransitionFunc
	onChange   func(slide int)
}

// NewNavigator creates a navigator for a deck of total slides, starting
// at slide 0. transition and onChange may be nil.
func NewNavigator(total int, transition TransitionFunc, onChange func(slide int)) *Navigator {
	if total < 1 {
		total = 1
	}
	return &Navigator{total: total, transition: transition, onChange: onChange}
}

// Current returns the current slide index.
func (n *Navigator) Current() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Total returns the deck size.
func (n *Navigator) Total() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.total
}

// Next advances one slide; a no-op on the last slide.
func (n *Navigator) Next() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.goToLocked(n.current + 1)
}

// Prev steps back one slide; a no-op on the first slide.
func (n *Navigator) Prev() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.goToLocked(n.current - 1)
}

// First jumps to the first slide.
func (n *Navigator) First() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.goToLocked(0)
}

// Last jumps to the last slide.
func (n *Navigator) Last() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.goToLocked(n.total - 1)
}

// Jump moves to a 1-based slide number, as typed by the presenter.
// Out-of-range numbers are ignored.
func (n *Navigator) Jump(number int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.goToLocked(number - 1)
}

// SetTotal resizes the deck, pulling the current index back inside the
// new range if the deck shrank past it.
func (n *Navigator) SetTotal(total int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if total < 1 {
		total = 1
	}
	n.total = total
	if n.current > total-1 {
		n.goToLocked(total - 1)
	}
}

// goToLocked performs the actual move. Out-of-range targets and moves to
// the current position do nothing; a failed transition still commits the
// index.
func (n *Navigator) goToLocked(to int) {
	if to < 0 || to > n.total-1 || to == n.current {
		return
	}
	from := n.current
	if n.transition != nil {
		_ = n.transition(from, to)
	}
	n.current = to
	if n.onChange != nil {
		n.onChange(to)
	}
}
