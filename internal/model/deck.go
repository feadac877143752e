package model

import "time"

// DeckState is the durable per-deck record: the slide position every
// connected viewer should converge on. Last writer wins.
type DeckState struct {
	DeckID    string    `json:"deck_id"`
	Slide     int       `json:"slide"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Reaction is a stored reaction queue entry. Unlike the wire event it
// carries expiry bookkeeping for the TTL queue.
type Reaction struct {
	ID        string    `json:"id"`
	DeckID    string    `json:"deck_id"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Event converts a stored reaction to its wire representation.
func (r *Reaction) Event() *ReactionEvent {
	return &ReactionEvent{
		Type:  TypeReaction,
		Emoji: r.Emoji,
		ID:    r.ID,
		TS:    r.CreatedAt.UnixMilli(),
	}
}
