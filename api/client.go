// Package api implements the authenticated request protocol shared by every
// service client: bearer headers built from the session store, response
// normalization into a uniform result/error shape, and a single
// refresh-and-retry cycle when the access token has expired.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/schoolctl/schoolctl/session"
)

const defaultSessionExpiredDelay = 2 * time.Second

// TokenRefresher mints a new token pair into the session store. A failed
// refresh leaves the store cleared and returns a terminal error.
type TokenRefresher interface {
	Refresh(ctx context.Context) error
}

// Client executes authenticated requests against the backend APIs. It is safe
// for concurrent use; independent operations run their own refresh-and-retry
// sequences.
type Client struct {
	httpClient *http.Client
	store      session.Store
	refresher  TokenRefresher
	log        zerolog.Logger

	sessionExpiredHandler func()
	sessionExpiredDelay   time.Duration
	scheduleFunc          func(d time.Duration, f func())
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the client logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithSessionExpiredHandler registers the handler invoked (after a short
// delay) when the session becomes unrecoverable. The CLI uses it to tell the
// operator to log in again; a UI would navigate to its login entry point.
func WithSessionExpiredHandler(h func()) Option {
	return func(c *Client) {
		c.sessionExpiredHandler = h
	}
}

// WithSessionExpiredDelay overrides the delay before the session-expired
// handler fires. The delay exists so pending feedback can still render.
func WithSessionExpiredDelay(d time.Duration) Option {
	return func(c *Client) {
		c.sessionExpiredDelay = d
	}
}

// WithScheduleFunc overrides the timer used to defer the session-expired
// handler (primarily for testing).
func WithScheduleFunc(f func(d time.Duration, fn func())) Option {
	return func(c *Client) {
		c.scheduleFunc = f
	}
}

// New creates a request client bound to a session store and a token
// refresher.
func New(store session.Store, refresher TokenRefresher, options ...Option) (*Client, error) {
	if store == nil {
		return nil, errors.New("[api.New] session store is required")
	}
	if refresher == nil {
		return nil, errors.New("[api.New] token refresher is required")
	}

	c := &Client{
		httpClient:          http.DefaultClient,
		store:               store,
		refresher:           refresher,
		log:                 zerolog.Nop(),
		sessionExpiredDelay: defaultSessionExpiredDelay,
		scheduleFunc: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}

	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// newRequest builds a single request attempt. Headers are rebuilt from the
// current session snapshot on every call so a retried attempt picks up the
// refreshed token.
func (c *Client) newRequest(ctx context.Context, method, url string, body any, privileged bool) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "[api.newRequest] encode request body")
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.Wrap(err, "[api.newRequest] build request")
	}

	snap, err := c.store.Snapshot()
	if err != nil {
		return nil, errors.Wrap(err, "[api.newRequest] read session")
	}

	for key, values := range Headers(snap, privileged) {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	return req, nil
}

// scheduleSessionExpired defers the session-expired handler.
func (c *Client) scheduleSessionExpired() {
	if c.sessionExpiredHandler == nil {
		return
	}
	c.scheduleFunc(c.sessionExpiredDelay, c.sessionExpiredHandler)
}
