// Package store defines the durable state contract: the last-writer-wins
// deck state read by the streaming gateway on connect, and the short-TTL
// reaction queue used as the non-stream fallback read path.
package store

import (
	"context"

	"github.com/groblegark/slidecast/internal/model"
)

// Store is the persistence interface for deck synchronization state.
// Implementations are selected by configuration: postgres for real
// deployments, memory for local development and tests.
type Store interface {
	// GetDeckState returns the durable state for a deck, or nil when the
	// deck has never been advanced.
	GetDeckState(ctx context.Context, deckID string) (*model.DeckState, error)

	// SetDeckState writes the slide position for a deck. Last writer wins;
	// the write is an idempotent overwrite.
	SetDeckState(ctx context.Context, deckID string, slide int) error

	// AppendReaction adds a reaction to the deck's TTL queue.
	AppendReaction(ctx context.Context, r *model.Reaction) error

	// ListReactions returns the deck's non-expired reactions in insertion
	// order. Expired entries are never returned.
	ListReactions(ctx context.Context, deckID string) ([]*model.Reaction, error)

	// ListDeckStates returns every known deck state (used by the archive
	// exporter).
	ListDeckStates(ctx context.Context) ([]*model.DeckState, error)

	// Lifecycle
	Close() error
}
