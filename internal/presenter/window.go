package presenter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// WindowState is the lifecycle position of the presenter window.
type WindowState int

const (
	StateClosed WindowState = iota
	StateOpening
	StateOpen
)

func (s WindowState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	default:
		return fmt.Sprintf("WindowState(%d)", int(s))
	}
}

// Window is an opened presenter surface.
type Window interface {
	// Focus raises an already-open window.
	Focus() error
	// Closed reports whether the window has gone away out from under us.
	Closed() bool
	// Close tears the window down.
	Close() error
}

// Opener creates the presenter surface. Open may be slow.
type Opener interface {
	Open(ctx context.Context) (Window, error)
}

// DefaultPollInterval is how often an open window's closed flag is
// checked. There is no close notification from the surface itself, so
// polling is the fallback that keeps the state machine honest.
const DefaultPollInterval = 500 * time.Millisecond

// Manager drives the presenter window through closed, opening and open.
// A second open request while the window is up focuses it instead of
// opening another; an open request during opening is ignored. State
// transitions are announced on the local sync channel.
type Manager struct {
	opener       Opener
	sync         *LocalSync
	clock        clockwork.Clock
	pollInterval time.Duration

	mu       sync.Mutex
	state    WindowState
	win      Window
	pollStop chan struct{}
}

func NewManager(opener Opener, ls *LocalSync) *Manager {
	return NewManagerWithClock(opener, ls, DefaultPollInterval, clockwork.NewRealClock())
}

func NewManagerWithClock(opener Opener, ls *LocalSync, pollInterval time.Duration, clock clockwork.Clock) *Manager {
	return &Manager{
		opener:       opener,
		sync:         ls,
		clock:        clock,
		pollInterval: pollInterval,
	}
}

// State returns the current lifecycle position.
func (m *Manager) State() WindowState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Open brings the presenter window up. If it is already open the window
// is focused and no new surface is created; if an open is in flight the
// call is a no-op.
func (m *Manager) Open(ctx context.Context) error {
	m.mu.Lock()
	switch m.state {
	case StateOpen:
		win := m.win
		m.mu.Unlock()
		if err := win.Focus(); err != nil {
			return fmt.Errorf("focusing presenter window: %w", err)
		}
		return nil
	case StateOpening:
		m.mu.Unlock()
		return nil
	}
	m.state = StateOpening
	m.mu.Unlock()

	win, err := m.opener.Open(ctx)
	if err != nil {
		m.mu.Lock()
		m.state = StateClosed
		m.mu.Unlock()
		return fmt.Errorf("opening presenter window: %w", err)
	}

	m.mu.Lock()
	m.state = StateOpen
	m.win = win
	m.pollStop = make(chan struct{})
	stop := m.pollStop
	m.mu.Unlock()

	m.sync.Publish(Message{Kind: KindPresenterOpened})
	go m.watchClosed(win, stop)
	return nil
}

// Close tears the window down and announces the closure. Closing an
// already-closed window is a no-op.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.state != StateOpen {
		m.mu.Unlock()
		return nil
	}
	win := m.win
	m.teardownLocked()
	m.mu.Unlock()

	err := win.Close()
	m.sync.Publish(Message{Kind: KindPresenterClosed})
	if err != nil {
		return fmt.Errorf("closing presenter window: %w", err)
	}
	return nil
}

// watchClosed polls the window's closed flag until the window goes away
// or the manager closes it first.
func (m *Manager) watchClosed(win Window, stop chan struct{}) {
	ticker := m.clock.NewTicker(m.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			if !win.Closed() {
				continue
			}
			m.mu.Lock()
			// Close may have raced us; only announce once.
			if m.state != StateOpen || m.win != win {
				m.mu.Unlock()
				return
			}
			m.teardownLocked()
			m.mu.Unlock()
			m.sync.Publish(Message{Kind: KindPresenterClosed})
			return
		}
	}
}

func (m *Manager) teardownLocked() {
	m.state = StateClosed
	m.win = nil
	if m.pollStop != nil {
		close(m.pollStop)
		m.pollStop = nil
	}
}
