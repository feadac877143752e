package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/groblegark/slidecast/internal/model"
)

const (
	// DefaultInitialBackoff is the first reconnect delay after a dropped
	// stream; it doubles per failed attempt up to DefaultMaxBackoff.
	DefaultInitialBackoff = 500 * time.Millisecond
	DefaultMaxBackoff     = 10 * time.Second
)

// StreamMessage is one decoded frame from a deck stream. Exactly one of
// the two shapes is populated: a snapshot (Init true, Slide set) or a live
// event (Event non-nil). A snapshot arrives on every connect, including
// reconnects, so consumers must re-apply it each time.
type StreamMessage struct {
	Init  bool
	Slide int
	Event any // *model.SlideEvent or *model.ReactionEvent
}

// StreamOptions tune the reconnect behavior of Stream.
type StreamOptions struct {
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Stream opens the SSE stream for a deck and returns a channel of decoded
// messages. The first connection is made synchronously so dial errors
// surface immediately; after that the stream reconnects with exponential
// backoff until ctx is canceled, at which point the channel closes.
// Heartbeat comments and frames that fail to decode are dropped.
func (c *HTTPClient) Stream(ctx context.Context, deckID string, opts StreamOptions) (<-chan StreamMessage, error) {
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = DefaultInitialBackoff
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = DefaultMaxBackoff
	}

	resp, err := c.openStream(ctx, deckID)
	if err != nil {
		return nil, err
	}

	ch := make(chan StreamMessage, 16)
	go func() {
		defer close(ch)
		backoff := opts.InitialBackoff
		for {
			c.consumeStream(ctx, resp.Body, ch)
			resp.Body.Close()
			if ctx.Err() != nil {
				return
			}

			for {
				select {
				case <-ctx.Done():
					return
				case <-time.After(backoff):
				}
				resp, err = c.openStream(ctx, deckID)
				if err == nil {
					backoff = opts.InitialBackoff
					break
				}
				if ctx.Err() != nil {
					return
				}
				backoff = min(backoff*2, opts.MaxBackoff)
			}
		}
	}()
	return ch, nil
}

func (c *HTTPClient) openStream(ctx context.Context, deckID string) (*http.Response, error) {
	path := c.baseURL + "/v1/decks/" + url.PathEscape(deckID) + "/stream"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "stream rejected"}
	}
	return resp, nil
}

// consumeStream reads SSE frames off one connection until it breaks,
// sending decoded messages. Comment lines (":heartbeat") keep the
// connection alive but carry no message.
func (c *HTTPClient) consumeStream(ctx context.Context, body io.Reader, ch chan<- StreamMessage) {
	sc := bufio.NewScanner(body)
	var event string
	var data []byte
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if len(data) > 0 {
				if msg, ok := decodeFrame(event, data); ok {
					select {
					case ch <- msg:
					case <-ctx.Done():
						return
					}
				}
			}
			event, data = "", nil
		case strings.HasPrefix(line, ":"):
			// Comment frame; heartbeats land here.
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " ")...)
		}
	}
}

func decodeFrame(event string, data []byte) (StreamMessage, bool) {
	if event == "init" {
		var snapshot struct {
			Slide int `json:"slide"`
		}
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return StreamMessage{}, false
		}
		return StreamMessage{Init: true, Slide: snapshot.Slide}, true
	}
	ev, err := model.ParseEvent(data)
	if err != nil {
		return StreamMessage{}, false
	}
	return StreamMessage{Event: ev}, true
}
