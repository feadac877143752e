// Package presenter implements the presenter-side coordination pieces:
// a local cross-window message channel and the lifecycle manager for the
// detached presenter window.
package presenter

import "sync"

// Message kinds carried on the local sync channel.
const (
	KindSlideChange     = "SLIDE_CHANGE"
	KindPresenterOpened = "PRESENTER_OPENED"
	KindPresenterClosed = "PRESENTER_CLOSED"
)

// Message is one cross-window notification. Slide is meaningful only for
// SLIDE_CHANGE.
type Message struct {
	Kind  string
	Slide int
}

// LocalSync is a same-process broadcast channel linking the main window
// and a detached presenter window. The underlying channel is created
// lazily on the first subscribe and released when the last subscriber
// leaves; a later subscribe reinitializes it. Publishing with no channel
// allocated is a silent no-op.
type LocalSync struct {
	mu         sync.Mutex
	subs       map[*localSub]struct{}
	generation int
}

type localSub struct {
	ch chan Message
}

const localSyncBuffer = 16

func NewLocalSync() *LocalSync {
	return &LocalSync{}
}

// Subscribe attaches to the channel, allocating it if this is the first
// subscriber. The returned cancel is idempotent; when the last
// subscriber cancels, the channel is released.
func (s *LocalSync) Subscribe() (<-chan Message, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[*localSub]struct{})
		s.generation++
	}
	sub := &localSub{ch: make(chan Message, localSyncBuffer)}
	s.subs[sub] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, sub)
			close(sub.ch)
			if len(s.subs) == 0 {
				s.subs = nil
			}
		})
	}
	return sub.ch, cancel
}

// Publish delivers msg to every current subscriber. A subscriber that
// cannot keep up loses the message rather than blocking the publisher.
func (s *LocalSync) Publish(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs {
		select {
		case sub.ch <- msg:
		default:
		}
	}
}

// Active reports whether the channel is currently allocated.
func (s *LocalSync) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subs != nil
}

// Generation counts channel allocations; it increments each time the
// channel is reinitialized after a full release.
func (s *LocalSync) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}
