package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/groblegark/slidecast/internal/auth"
)

type allowFunc func() bool

func (f allowFunc) Allow() bool { return f() }

func TestAdvance_SendsCommand(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"deck_id":"d1","slide":3}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "s3cret")
	if err := c.Advance(context.Background(), "d1", 3); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/v1/decks/d1/advance" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer s3cret" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody["slide"] != 3 {
		t.Errorf("body = %v", gotBody)
	}
}

func TestReact_RateLimitedMakesNoNetworkCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	c.SetLimiter(allowFunc(func() bool { return false }))

	result, err := c.React(context.Background(), "d1", "👏")
	if err != nil {
		t.Fatal(err)
	}
	if result != SendRateLimited {
		t.Errorf("result = %v, want %v", result, SendRateLimited)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("server saw %d calls, want 0", n)
	}
}

func TestReact_Outcomes(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	c.SetLimiter(allowFunc(func() bool { return true }))

	result, err := c.React(context.Background(), "d1", "👏")
	if result != SendOK || err != nil {
		t.Errorf("result = %v, err = %v, want ok", result, err)
	}

	status = http.StatusInternalServerError
	result, err = c.React(context.Background(), "d1", "👏")
	if result != SendFailed || err == nil {
		t.Errorf("result = %v, err = %v, want failed with error", result, err)
	}
}

func TestGetDeck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/decks/d1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"deck_id":"d1","slide":8}`))
	}))
	defer srv.Close()

	state, err := NewHTTPClient(srv.URL, "").GetDeck(context.Background(), "d1")
	if err != nil {
		t.Fatal(err)
	}
	if state.Slide != 8 {
		t.Errorf("slide = %d, want 8", state.Slide)
	}
}

func TestListReactions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"type":"reaction","emoji":"🔥","id":"rx-1","ts":1000}]`))
	}))
	defer srv.Close()

	out, err := NewHTTPClient(srv.URL, "").ListReactions(context.Background(), "d1")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "rx-1" {
		t.Fatalf("out = %+v", out)
	}
}

func TestSessionTokenHeader(t *testing.T) {
	var gotSession string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = r.Header.Get(auth.SessionHeader)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	c.SetSessionToken("sess-42")
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotSession != "sess-42" {
		t.Errorf("session header = %q", gotSession)
	}
}

func TestAPIErrorSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"slide must be >= 0"}`))
	}))
	defer srv.Close()

	err := NewHTTPClient(srv.URL, "").Advance(context.Background(), "d1", -1)
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("err = %T %v, want *APIError", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "slide must be >= 0" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}
