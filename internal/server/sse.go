package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/groblegark/slidecast/internal/events"
)

// handleDeckStream handles GET /v1/decks/{id}/stream (SSE endpoint).
//
// Each connection moves through three phases: read the durable snapshot and
// emit it as an "init" event, then forward every bus payload for the deck as
// a data frame interleaved with heartbeat comments, then tear down exactly
// once when the client disconnects or a write fails. One subscriber's failure
// never touches another's stream, and a broken subscription is never retried
// server-side; the client reconnects and re-acquires a snapshot.
func (s *DeckServer) handleDeckStream(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("id")
	if !validDeckID(deckID) {
		writeError(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	// Ensure response supports flushing (required for SSE).
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	ctx := r.Context()

	// CONNECTING: the snapshot guarantees a late joiner is never left
	// without a known slide position, however many slide events it missed.
	state, err := s.store.GetDeckState(ctx, deckID)
	if err != nil {
		s.logger.Error("snapshot read failed", "deck_id", deckID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to read deck state")
		return
	}
	slide := 0
	if state != nil {
		slide = state.Slide
	}

	ch, cancel, err := s.subscriber.Subscribe(events.DeckSubject(deckID))
	if err != nil {
		s.logger.Error("stream subscribe failed", "deck_id", deckID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to subscribe")
		return
	}

	heartbeat := time.NewTicker(s.heartbeat)

	// Exactly one teardown per connection, whichever exit path fires
	// first: the subscription and the heartbeat timer must never leak.
	var teardown sync.Once
	defer teardown.Do(func() {
		heartbeat.Stop()
		cancel()
	})

	// Set SSE headers.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering.
	w.WriteHeader(http.StatusOK)

	snapshot, _ := json.Marshal(map[string]int{"slide": slide})
	if _, err := fmt.Fprintf(w, "event:init\ndata:%s\n\n", snapshot); err != nil {
		return
	}
	flusher.Flush()

	// STREAMING: forward bus payloads verbatim until the client goes away.
	for {
		select {
		case <-ctx.Done():
			return
		case payload, open := <-ch:
			if !open {
				// Subscription failed underneath us; surface as a stream
				// error by ending the response. The client reconnects.
				s.logger.Warn("stream subscription closed", "deck_id", deckID)
				return
			}
			if _, err := fmt.Fprintf(w, "data:%s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ":heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
