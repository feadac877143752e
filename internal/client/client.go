// Package client provides the HTTP client for the slidecast control API
// and an SSE consumer for the live deck stream.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/groblegark/slidecast/internal/auth"
	"github.com/groblegark/slidecast/internal/model"
)

// SendResult classifies the outcome of a reaction send.
type SendResult int

const (
	// SendOK means the server acknowledged the reaction.
	SendOK SendResult = iota
	// SendRateLimited means the local limiter suppressed the send; no
	// network call was made.
	SendRateLimited
	// SendFailed means the network call was made and did not succeed.
	SendFailed
)

func (r SendResult) String() string {
	switch r {
	case SendOK:
		return "ok"
	case SendRateLimited:
		return "rate-limited"
	case SendFailed:
		return "failed"
	default:
		return fmt.Sprintf("SendResult(%d)", int(r))
	}
}

// Limiter gates outgoing reaction sends. Allow reports whether a send may
// proceed now and, if so, consumes the slot.
type Limiter interface {
	Allow() bool
}

// HTTPClient talks to a slidecast server over the HTTP/JSON control API.
type HTTPClient struct {
	baseURL      string
	token        string
	sessionToken string
	limiter      Limiter
	httpClient   *http.Client
}

// NewHTTPClient creates a client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// SetSessionToken makes the client authenticate via the session identity
// header instead of (or in addition to) the bearer secret.
func (c *HTTPClient) SetSessionToken(token string) { c.sessionToken = token }

// SetLimiter installs a local send limiter for React. A nil limiter means
// every send goes to the network.
func (c *HTTPClient) SetLimiter(l Limiter) { c.limiter = l }

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// Advance moves the deck to the given slide.
func (c *HTTPClient) Advance(ctx context.Context, deckID string, slide int) error {
	body := map[string]int{"slide": slide}
	return c.doJSON(ctx, http.MethodPost, "/v1/decks/"+url.PathEscape(deckID)+"/advance", body, nil)
}

// React sends an emoji reaction. The result distinguishes a server
// acknowledgement, a locally rate-limited send (no network call), and a
// failed call; err carries detail only for SendFailed.
func (c *HTTPClient) React(ctx context.Context, deckID, emoji string) (SendResult, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		return SendRateLimited, nil
	}
	body := map[string]string{"emoji": emoji}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/decks/"+url.PathEscape(deckID)+"/react", body, nil); err != nil {
		return SendFailed, err
	}
	return SendOK, nil
}

// GetDeck fetches the durable deck snapshot.
func (c *HTTPClient) GetDeck(ctx context.Context, deckID string) (*model.DeckState, error) {
	var state model.DeckState
	if err := c.doJSON(ctx, http.MethodGet, "/v1/decks/"+url.PathEscape(deckID), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// ListReactions fetches the non-expired reaction queue, the fallback read
// path for clients without a live stream.
func (c *HTTPClient) ListReactions(ctx context.Context, deckID string) ([]*model.ReactionEvent, error) {
	var out []*model.ReactionEvent
	if err := c.doJSON(ctx, http.MethodGet, "/v1/decks/"+url.PathEscape(deckID)+"/reactions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health checks server health.
func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the
// JSON response. If result is nil, the response body is discarded.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		// Some acks are plain text; only decode when the caller wants JSON.
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func (c *HTTPClient) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.sessionToken != "" {
		req.Header.Set(auth.SessionHeader, c.sessionToken)
	}
}
