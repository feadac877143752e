// Package events defines the deck event bus: a per-deck publish/subscribe
// channel used to broadcast ephemeral events (slide changes, reactions) to
// every currently-connected stream. Delivery is best-effort: a subscriber
// that is disconnected when an event is published never sees it; clients
// recover via the durable snapshot instead.
package events

import (
	"context"
	"fmt"
	"strings"
)

// DeckSubject returns the bus subject for a single deck. The subject
// namespace is distinct from the durable store key namespace.
func DeckSubject(deckID string) string {
	return fmt.Sprintf("decks.%s.events", deckID)
}

// AllDecksSubject matches the event subjects of every deck.
const AllDecksSubject = "decks.*.events"

// DeckFromSubject extracts the deck ID from a subject produced by
// DeckSubject. Returns "" when the subject does not match.
func DeckFromSubject(subject string) string {
	parts := strings.Split(subject, ".")
	if len(parts) != 3 || parts[0] != "decks" || parts[2] != "events" {
		return ""
	}
	return parts[1]
}

// Publisher is the interface for emitting events to a deck's channel.
type Publisher interface {
	Publish(ctx context.Context, subject string, event any) error
	Close() error
}

// Subscriber receives events from the event bus.
type Subscriber interface {
	// Subscribe delivers raw event payloads on the returned channel.
	// Call the returned cancel function to unsubscribe and close the channel.
	Subscribe(subject string) (<-chan []byte, func(), error)
	Close() error
}
