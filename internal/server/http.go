package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/cors"
)

// NewHTTPHandler returns an http.Handler with all routes registered and a
// permissive CORS policy applied, since control calls and streams may
// originate from a detached presenter window on another origin.
func (s *DeckServer) NewHTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/decks/{id}/advance", s.handleAdvance)
	mux.HandleFunc("POST /v1/decks/{id}/react", s.handleReact)
	mux.HandleFunc("GET /v1/decks/{id}/stream", s.handleDeckStream)
	mux.HandleFunc("GET /v1/decks/{id}/reactions", s.handleListReactions)
	mux.HandleFunc("GET /v1/decks/{id}", s.handleGetDeck)
	mux.HandleFunc("GET /v1/health", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(mux)
}

// decodeJSON decodes a request body, rejecting unknown shapes with an input
// error suitable for a 400 response.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return inputError(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}
