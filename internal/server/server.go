// Package server implements the deck control endpoints and the SSE
// streaming gateway that fans deck events out to connected viewers.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/groblegark/slidecast/internal/auth"
	"github.com/groblegark/slidecast/internal/events"
	"github.com/groblegark/slidecast/internal/store"
)

const (
	// DefaultReactionTTL bounds how long a reaction stays readable via the
	// fallback queue.
	DefaultReactionTTL = 5 * time.Second

	// DefaultHeartbeatInterval is how often heartbeat comments are sent on
	// streams to keep idle connections alive through intermediaries.
	DefaultHeartbeatInterval = 15 * time.Second
)

// Options tunes a DeckServer. Zero values select the defaults above.
type Options struct {
	ReactionTTL       time.Duration
	HeartbeatInterval time.Duration
	Logger            *slog.Logger
}

// DeckServer serves deck synchronization: authenticated control commands,
// the per-deck event stream, and the reaction fallback read path.
type DeckServer struct {
	store      store.Store
	publisher  events.Publisher
	subscriber events.Subscriber
	authorizer auth.Authorizer
	logger     *slog.Logger

	reactionTTL time.Duration
	heartbeat   time.Duration
}

// NewDeckServer returns a DeckServer backed by the given store and bus.
func NewDeckServer(s store.Store, pub events.Publisher, sub events.Subscriber, az auth.Authorizer, opts Options) *DeckServer {
	if opts.ReactionTTL <= 0 {
		opts.ReactionTTL = DefaultReactionTTL
	}
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &DeckServer{
		store:       s,
		publisher:   pub,
		subscriber:  sub,
		authorizer:  az,
		logger:      opts.Logger,
		reactionTTL: opts.ReactionTTL,
		heartbeat:   opts.HeartbeatInterval,
	}
}

// inputError indicates invalid user input.
// Transport layers map this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
