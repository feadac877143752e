package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// MemoryBus is an in-process bus implementing both Publisher and Subscriber.
// It is used for single-node deployments and tests where an external NATS
// server is not configured. Delivery semantics match the NATS bus: only
// currently-registered subscribers receive a published event, and slow
// subscribers drop rather than block the publisher.
type MemoryBus struct {
	mu   sync.RWMutex
	subs map[*memorySub]struct{}
}

type memorySub struct {
	pattern string
	ch      chan []byte
}

// NewMemoryBus returns an empty in-process bus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[*memorySub]struct{})}
}

func (b *MemoryBus) Publish(ctx context.Context, subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs {
		if matchSubject(sub.pattern, subject) {
			select {
			case sub.ch <- data:
			default:
				// Drop if the subscriber is slow; publishers never block.
			}
		}
	}
	return nil
}

// Subscribe registers a subscriber for the given subject pattern
// ("*" matches a single segment). The cancel function is idempotent.
func (b *MemoryBus) Subscribe(subject string) (<-chan []byte, func(), error) {
	sub := &memorySub{pattern: subject, ch: make(chan []byte, 64)}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, sub)
			b.mu.Unlock()
			// Drain remaining messages so in-flight publishes don't block.
			for {
				select {
				case <-sub.ch:
				default:
					close(sub.ch)
					return
				}
			}
		})
	}

	return sub.ch, cancel, nil
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		delete(b.subs, sub)
		close(sub.ch)
	}
	return nil
}

// matchSubject matches a dot-separated subject against a pattern.
// Supports "*" as a single-segment wildcard and ">" as a multi-segment
// suffix wildcard (NATS-style).
func matchSubject(pattern, subject string) bool {
	if pattern == subject {
		return true
	}

	patParts := strings.Split(pattern, ".")
	subParts := strings.Split(subject, ".")

	for i, pp := range patParts {
		if pp == ">" {
			// ">" matches one or more remaining segments.
			return i < len(subParts)
		}
		if i >= len(subParts) {
			return false
		}
		if pp != "*" && pp != subParts[i] {
			return false
		}
	}

	return len(patParts) == len(subParts)
}
