// Package api is the single chokepoint for HTTP calls to the Slack Connect
// backend. It owns the stored bearer credential, normalizes every failure
// into *Error, and detects session expiry centrally so no caller has to
// special-case a 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/slackconnect/cli/internal/credentials"
	"github.com/slackconnect/cli/internal/logging"
	"github.com/slackconnect/cli/internal/models"
)

// DefaultTimeout tolerates a cold-started backend.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response body is read into memory.
const maxBodySize = 1 << 20

type Client struct {
	baseURL string
	http    *http.Client
	creds   credentials.Repository
	log     logging.Logger

	mu               sync.Mutex
	token            string
	onSessionExpired func()
}

// New builds a Client for the backend at baseURL (no trailing slash
// required). The credential repository is the only place the token is
// persisted; the in-memory copy is a cache primed via LoadCredential.
func New(baseURL string, timeout time.Duration, creds credentials.Repository, log logging.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		log:     log,
	}
}

// OnSessionExpired registers the hook invoked after a 401 response has been
// handled (credential already cleared). At most one hook is kept.
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSessionExpired = fn
}

// LoadCredential primes the in-memory token cache from the repository.
// Called once at bootstrap.
func (c *Client) LoadCredential(ctx context.Context) error {
	token, err := c.creds.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load credential: %w", err)
	}
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	return nil
}

// SetCredential persists the token and updates the cache.
func (c *Client) SetCredential(ctx context.Context, token string) error {
	if err := c.creds.Set(ctx, token); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	return nil
}

// ClearCredential removes the persisted token and empties the cache.
func (c *Client) ClearCredential(ctx context.Context) error {
	if err := c.creds.Clear(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	return nil
}

// HasCredential reports whether a token is currently held. The token itself
// is never exposed outside this package.
func (c *Client) HasCredential() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token != ""
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// send performs one backend call: marshal body, attach the bearer token if
// present, execute, decode the envelope. On success the data payload is
// decoded into out (which may be nil); every failure path returns *Error.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fmt.Sprintf("failed to encode request: %v", err), err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Message: fmt.Sprintf("failed to build request: %v", err), err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: err.Error(), err: ErrUnavailable}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &Error{Message: err.Error(), err: ErrUnavailable}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.expireSession(ctx)
		return &Error{
			Message:    failureMessage(raw, resp.StatusCode),
			StatusCode: resp.StatusCode,
			RawBody:    raw,
			err:        ErrUnauthorized,
		}
	}

	var env models.Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 400 || decodeErr != nil || !env.Success {
		return &Error{
			Message:    failureMessage(raw, resp.StatusCode),
			StatusCode: resp.StatusCode,
			RawBody:    raw,
		}
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{
				Message:    fmt.Sprintf("failed to decode response: %v", err),
				StatusCode: resp.StatusCode,
				RawBody:    raw,
				err:        err,
			}
		}
	}
	return nil
}

// expireSession handles a 401: the stored credential is cleared and the
// registered hook fires, exactly once per failed call, no matter which
// component made the call.
func (c *Client) expireSession(ctx context.Context) {
	if err := c.ClearCredential(ctx); err != nil {
		c.log.Warn(ctx, "failed to clear credential after session expiry", "error", err)
	}

	c.mu.Lock()
	hook := c.onSessionExpired
	c.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// failureMessage picks the most specific message available from a failure
// body: the envelope's error field, then its message field, then the HTTP
// status text.
func failureMessage(raw []byte, statusCode int) string {
	var env models.Envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Error != "" {
			return env.Error
		}
		if env.Message != "" {
			return env.Message
		}
	}
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return "request failed"
}
