package server

import (
	"errors"
	"net/http"
	"time"
	"unicode"

	"github.com/groblegark/slidecast/internal/auth"
	"github.com/groblegark/slidecast/internal/events"
	"github.com/groblegark/slidecast/internal/idgen"
	"github.com/groblegark/slidecast/internal/model"
)

// maxEmojiBytes bounds a single reaction payload; anything longer is not a
// plausible emoji sequence.
const maxEmojiBytes = 32

// validDeckID reports whether id is safe to embed in a bus subject. '.'
// separates subject tokens and '*' and '>' are subscription wildcards, so a
// deck id containing any of them could read or write across decks.
func validDeckID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r == '.' || r == '*' || r == '>' || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// handleAdvance handles POST /v1/decks/{id}/advance.
//
// The durable write and the publish are independent best-effort steps in
// that order: a failed write suppresses the publish entirely, while a failed
// publish after a successful write is tolerated because reconnecting clients
// read true state from the snapshot.
func (s *DeckServer) handleAdvance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deckID := r.PathValue("id")

	if err := s.authorizer.Authorize(ctx, r); err != nil {
		s.rejectUnauthorized(w, err, "advance", deckID)
		return
	}
	if !validDeckID(deckID) {
		writeError(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	var req struct {
		Slide *int `json:"slide"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Slide == nil {
		writeError(w, http.StatusBadRequest, "slide is required")
		return
	}
	if *req.Slide < 0 {
		writeError(w, http.StatusBadRequest, "slide must be >= 0")
		return
	}

	if err := s.store.SetDeckState(ctx, deckID, *req.Slide); err != nil {
		s.logger.Error("deck state write failed", "deck_id", deckID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to write deck state")
		return
	}

	event := model.NewSlideEvent(*req.Slide, time.Now())
	if err := s.publisher.Publish(ctx, events.DeckSubject(deckID), event); err != nil {
		// Durable state is already correct; connected viewers catch up on
		// their next snapshot.
		s.logger.Warn("slide event publish failed", "deck_id", deckID, "err", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"deck_id": deckID, "slide": *req.Slide})
}

// handleReact handles POST /v1/decks/{id}/react.
func (s *DeckServer) handleReact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deckID := r.PathValue("id")

	if err := s.authorizer.Authorize(ctx, r); err != nil {
		s.rejectUnauthorized(w, err, "react", deckID)
		return
	}
	if !validDeckID(deckID) {
		writeError(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	var req struct {
		Emoji string `json:"emoji"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Emoji == "" {
		writeError(w, http.StatusBadRequest, "emoji is required")
		return
	}
	if len(req.Emoji) > maxEmojiBytes {
		writeError(w, http.StatusBadRequest, "emoji too long")
		return
	}

	id, err := idgen.Generate()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate reaction id")
		return
	}

	now := time.Now()
	reaction := &model.Reaction{
		ID:        id,
		DeckID:    deckID,
		Emoji:     req.Emoji,
		CreatedAt: now,
		ExpiresAt: now.Add(s.reactionTTL),
	}

	if err := s.publisher.Publish(ctx, events.DeckSubject(deckID), reaction.Event()); err != nil {
		s.logger.Warn("reaction publish failed", "deck_id", deckID, "reaction_id", id, "err", err)
	}

	// The TTL queue is a fallback read path for clients without a live
	// stream; a failed append does not undo the broadcast.
	if err := s.store.AppendReaction(ctx, reaction); err != nil {
		s.logger.Warn("reaction enqueue failed", "deck_id", deckID, "reaction_id", id, "err", err)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleListReactions handles GET /v1/decks/{id}/reactions: the non-stream
// fallback fetch of the live reaction queue.
func (s *DeckServer) handleListReactions(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("id")
	if !validDeckID(deckID) {
		writeError(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	live, err := s.store.ListReactions(r.Context(), deckID)
	if err != nil {
		s.logger.Error("reaction list failed", "deck_id", deckID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list reactions")
		return
	}

	out := make([]*model.ReactionEvent, 0, len(live))
	for _, reaction := range live {
		out = append(out, reaction.Event())
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetDeck handles GET /v1/decks/{id}: the durable snapshot.
func (s *DeckServer) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("id")
	if !validDeckID(deckID) {
		writeError(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	state, err := s.store.GetDeckState(r.Context(), deckID)
	if err != nil {
		s.logger.Error("deck state read failed", "deck_id", deckID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to read deck state")
		return
	}
	if state == nil {
		state = &model.DeckState{DeckID: deckID, Slide: 0}
	}
	writeJSON(w, http.StatusOK, state)
}

// handleHealth handles GET /v1/health.
func (s *DeckServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *DeckServer) rejectUnauthorized(w http.ResponseWriter, err error, op, deckID string) {
	if errors.Is(err, auth.ErrUnauthorized) {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	// Identity service failures are a server-side condition, not a bad
	// credential.
	s.logger.Error("authorization check failed", "op", op, "deck_id", deckID, "err", err)
	writeError(w, http.StatusServiceUnavailable, "authorization check unavailable")
}
