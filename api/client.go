// Package api is the client for the EventX backend, the remote service that
// owns every piece of business data and logic. Nothing here interprets the
// marketplace; the package only gives the rest of the client a typed,
// context-aware surface over the backend's HTTP API and normalizes its
// failure modes into a small taxonomy the session and UI layers can act on.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

var (
	// ErrUnauthenticated signals a 401/403 answer: the backend is fine, the
	// caller just is not signed in (or not allowed). Expected, not a fault.
	ErrUnauthenticated = errors.New("api: not authenticated")
	// ErrUnavailable signals the backend could not be reached at all.
	ErrUnavailable = errors.New("api: backend unavailable")
	// ErrMalformed signals a response body that could not be decoded.
	ErrMalformed = errors.New("api: malformed response")
)

// Error is a rejection the backend expressed itself: a non-2xx status or a
// success=false envelope. These are recoverable and fit for display.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: backend rejected request (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: backend rejected request: %s", e.Message)
}

// Config carries what NewClient needs.
type Config struct {
	// BaseURL selects the backend origin, e.g. "https://api.eventx.example".
	BaseURL string
	// HTTPClient overrides the default client (15s timeout, cookie jar).
	HTTPClient *http.Client
	// Logger receives request failures. Defaults to logr.Discard.
	Logger logr.Logger
	// OnUnauthorized runs whenever any call comes back 401/403, so the
	// session store can drop its principal no matter which call tripped it.
	OnUnauthorized func()
}

// Client issues requests to the backend. Safe for concurrent use.
type Client struct {
	baseURL        string
	http           *http.Client
	log            logr.Logger
	onUnauthorized func()
	requestID      func() string

	mu    sync.Mutex
	token string
}

// NewClient validates the config and builds a client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api: empty base URL")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("api: parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: base URL %q must be http or https", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("api: build cookie jar: %w", err)
		}
		httpClient = &http.Client{Timeout: 15 * time.Second, Jar: jar}
	}

	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	return &Client{
		baseURL:        strings.TrimSuffix(u.String(), "/"),
		http:           httpClient,
		log:            log,
		onUnauthorized: cfg.OnUnauthorized,
		requestID:      func() string { return uuid.NewString() },
	}, nil
}

// SetToken installs the bearer token sent with subsequent requests. An empty
// token clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token, if any.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// do issues one JSON request. in (if non-nil) is the request body, out (if
// non-nil) receives the decoded response. Transport failures map to
// ErrUnavailable, 401/403 to ErrUnauthenticated (firing the OnUnauthorized
// hook), other non-2xx statuses to *Error carrying the backend's message.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	raw, err := c.doRaw(ctx, method, path, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformed, method, path, err)
	}
	return nil
}

// doRaw is do without response decoding; it returns the body bytes.
func (c *Client) doRaw(ctx context.Context, method, path string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("api: encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", c.requestID())
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error(err, "request failed", "method", method, "path", path)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, fmt.Errorf("%w: %s %s: status %d", ErrUnauthenticated, method, path, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, responseError(resp.StatusCode, raw)
	}
	return raw, nil
}

// envelope is the wrapper the backend puts around every JSON response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// check turns a success=false envelope into an *Error.
func (e envelope) check() error {
	if e.Success {
		return nil
	}
	msg := e.Message
	if msg == "" {
		msg = "request was not successful"
	}
	return &Error{Message: msg}
}

func responseError(status int, raw []byte) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return &Error{Status: status, Message: env.Message}
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{Status: status, Message: msg}
}
