// Package auth reduces the two supported credential modes (a static shared
// bearer secret, and a session identity checked against an external identity
// service) to a single authorized/unauthorized predicate consumed by the
// control endpoints.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrUnauthorized is returned for any bad or missing credential. Callers
// map it to 401 and perform no writes.
var ErrUnauthorized = errors.New("unauthorized")

// SessionHeader carries the session token for identity-service checks.
const SessionHeader = "X-Session-Token"

// Authorizer decides whether a request may mutate deck state.
type Authorizer interface {
	Authorize(ctx context.Context, r *http.Request) error
}

// Open authorizes every request. Used when auth is disabled in development.
type Open struct{}

func (Open) Authorize(ctx context.Context, r *http.Request) error { return nil }

// Token authorizes requests carrying "Authorization: Bearer <secret>" with
// the configured shared secret, compared in constant time.
type Token struct {
	Secret string
}

func (t Token) Authorize(ctx context.Context, r *http.Request) error {
	header := r.Header.Get("Authorization")
	if header == "" {
		return fmt.Errorf("missing authorization header: %w", ErrUnauthorized)
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return fmt.Errorf("invalid authorization scheme: %w", ErrUnauthorized)
	}
	provided := strings.TrimPrefix(header, "Bearer ")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(t.Secret)) != 1 {
		return fmt.Errorf("invalid token: %w", ErrUnauthorized)
	}
	return nil
}

// Session delegates to an external identity service: the session token from
// the request is forwarded to the verify endpoint, and any 2xx response
// means the session is valid.
type Session struct {
	VerifyURL string
	Client    *http.Client
}

// NewSession returns a Session authorizer with a bounded-timeout client.
func NewSession(verifyURL string) *Session {
	return &Session{
		VerifyURL: verifyURL,
		Client:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *Session) Authorize(ctx context.Context, r *http.Request) error {
	token := r.Header.Get(SessionHeader)
	if token == "" {
		return fmt.Errorf("missing session token: %w", ErrUnauthorized)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.VerifyURL, nil)
	if err != nil {
		return fmt.Errorf("building identity request: %w", err)
	}
	req.Header.Set(SessionHeader, token)

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("identity service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("identity service rejected session (%d): %w", resp.StatusCode, ErrUnauthorized)
	}
	return nil
}

// AnyOf authorizes a request if any of the given authorizers accepts it.
// Unauthorized results fall through; other errors (e.g. an unreachable
// identity service) are returned immediately.
type AnyOf []Authorizer

func (a AnyOf) Authorize(ctx context.Context, r *http.Request) error {
	if len(a) == 0 {
		return ErrUnauthorized
	}
	var last error
	for _, authorizer := range a {
		err := authorizer.Authorize(ctx, r)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrUnauthorized) {
			return err
		}
		last = err
	}
	return last
}
