// Package archive periodically exports deck state to external storage,
// so a recovered or migrated server can be seeded from the last export.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/groblegark/slidecast/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version       string    `json:"version"`
	Type          string    `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	DeckCount     int       `json:"deck_count"`
	ReactionCount int       `json:"reaction_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportJSONL writes every deck state and its non-expired reactions from
// the store as JSONL to w. Decks are sorted by id.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	decks, err := s.ListDeckStates(ctx)
	if err != nil {
		return fmt.Errorf("list deck states: %w", err)
	}
	sort.Slice(decks, func(i, j int) bool {
		return decks[i].DeckID < decks[j].DeckID
	})

	type deckReactions struct {
		deckID    string
		reactions []any
	}
	var reactions []deckReactions
	total := 0
	for _, d := range decks {
		live, err := s.ListReactions(ctx, d.DeckID)
		if err != nil {
			return fmt.Errorf("list reactions for %s: %w", d.DeckID, err)
		}
		dr := deckReactions{deckID: d.DeckID}
		for _, r := range live {
			dr.reactions = append(dr.reactions, r)
		}
		total += len(live)
		reactions = append(reactions, dr)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:       "1",
		Type:          "header",
		Timestamp:     time.Now().UTC(),
		DeckCount:     len(decks),
		ReactionCount: total,
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, d := range decks {
		if err := enc.Encode(record{Type: "deck", Data: d}); err != nil {
			return fmt.Errorf("encode deck %s: %w", d.DeckID, err)
		}
	}
	for _, dr := range reactions {
		for _, r := range dr.reactions {
			if err := enc.Encode(record{Type: "reaction", Data: r}); err != nil {
				return fmt.Errorf("encode reaction for %s: %w", dr.deckID, err)
			}
		}
	}

	return nil
}
