// Package memory implements the store.Store interface with in-process maps.
// It exists for local development and tests; reaction expiry uses an
// injectable clock so TTL behavior is testable without sleeping.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/groblegark/slidecast/internal/model"
	"github.com/groblegark/slidecast/internal/store"
)

// MemoryStore implements store.Store backed by in-process maps.
type MemoryStore struct {
	mu        sync.RWMutex
	decks     map[string]*model.DeckState
	reactions map[string][]*model.Reaction
	clock     clockwork.Clock
}

// Compile-time check that MemoryStore implements store.Store.
var _ store.Store = (*MemoryStore)(nil)

// New returns an empty store using the real clock.
func New() *MemoryStore {
	return NewWithClock(clockwork.NewRealClock())
}

// NewWithClock returns an empty store using the given clock for expiry.
func NewWithClock(clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{
		decks:     make(map[string]*model.DeckState),
		reactions: make(map[string][]*model.Reaction),
		clock:     clock,
	}
}

func (s *MemoryStore) GetDeckState(ctx context.Context, deckID string) (*model.DeckState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.decks[deckID]
	if !ok {
		return nil, nil
	}
	copied := *state
	return &copied, nil
}

func (s *MemoryStore) SetDeckState(ctx context.Context, deckID string, slide int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.decks[deckID] = &model.DeckState{
		DeckID:    deckID,
		Slide:     slide,
		UpdatedAt: s.clock.Now(),
	}
	return nil
}

func (s *MemoryStore) AppendReaction(ctx context.Context, r *model.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *r
	s.reactions[r.DeckID] = append(s.pruneLocked(r.DeckID), &copied)
	return nil
}

func (s *MemoryStore) ListReactions(ctx context.Context, deckID string) ([]*model.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.pruneLocked(deckID)
	s.reactions[deckID] = live

	out := make([]*model.Reaction, 0, len(live))
	for _, r := range live {
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

func (s *MemoryStore) ListDeckStates(ctx context.Context) ([]*model.DeckState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.DeckState, 0, len(s.decks))
	for _, state := range s.decks {
		copied := *state
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeckID < out[j].DeckID })
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

// pruneLocked drops expired reactions for a deck, preserving order.
// Caller must hold the write lock.
func (s *MemoryStore) pruneLocked(deckID string) []*model.Reaction {
	now := s.clock.Now()
	live := s.reactions[deckID][:0]
	for _, r := range s.reactions[deckID] {
		if r.ExpiresAt.After(now) {
			live = append(live, r)
		}
	}
	return live
}
