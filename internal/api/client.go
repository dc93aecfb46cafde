package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/alhassanmohamed2/companySYS/internal/session"
)

// Config holds common client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns a default client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000/api",
		Timeout: 30 * time.Second,
	}
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. with a caching
// one from NewCachingHTTPClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSessionExpiredHook registers a callback fired when a failed refresh
// force-ends the session. The CLI uses it to reset session state and tell
// the user to log in again; a UI would navigate to the login page.
func WithSessionExpiredHook(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// Client is the authenticated gateway to the companySYS backend. Every
// request goes out with the stored access token attached; a single 401
// triggers one silent refresh-and-retry before the session is ended.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	tokens           *session.TokenStore
	onSessionExpired func()

	// Serializes silent refreshes so concurrent 401s share one refresh
	// call instead of racing the refresh endpoint.
	refreshMu sync.Mutex
}

// NewClient creates a gateway client backed by the given token store.
func NewClient(config Config, tokens *session.TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:          strings.TrimRight(config.BaseURL, "/"),
		httpClient:       &http.Client{Timeout: config.Timeout},
		tokens:           tokens,
		onSessionExpired: func() {},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type tokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Authenticate exchanges credentials for a token pair via POST /token/.
// Implements session.Authenticator. A rejected login surfaces as
// ErrInvalidCredentials with a fixed message; the server detail is never
// echoed.
func (c *Client) Authenticate(ctx context.Context, username, password string) (session.TokenPair, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return session.TokenPair{}, fmt.Errorf("failed to marshal credentials: %w", err)
	}

	resp, data, err := c.send(ctx, http.MethodPost, "/token/", nil, payload, "", uuid.NewString())
	if err != nil {
		return session.TokenPair{}, fmt.Errorf("login request failed: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		return session.TokenPair{}, ErrInvalidCredentials
	default:
		return session.TokenPair{}, newAPIError(resp.StatusCode, data)
	}

	var pair tokenPairResponse
	if err := json.Unmarshal(data, &pair); err != nil {
		return session.TokenPair{}, fmt.Errorf("failed to decode token response: %w", err)
	}

	return session.TokenPair{Access: pair.Access, Refresh: pair.Refresh}, nil
}

// doRaw sends one logical request through the gateway and returns the
// response body. At most one refresh-and-retry is attempted per call.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	pair, err := c.tokens.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to read token storage, sending unauthenticated")
		pair = session.TokenPair{}
	}

	// One request ID per logical request; the silent retry reuses it.
	requestID := uuid.NewString()

	resp, data, err := c.send(ctx, method, path, query, payload, pair.Access, requestID)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		access, refreshErr := c.refreshAccess(ctx, pair.Access)
		if refreshErr != nil {
			c.endSession(refreshErr)
			return nil, ErrSessionExpired
		}

		log.Debug().Str("requestID", requestID).Str("path", path).Msg("access token refreshed, resending request")

		resp, data, err = c.send(ctx, method, path, query, payload, access, requestID)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, data)
	}

	return data, nil
}

// do is doRaw plus JSON decoding of the response into out (may be nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	data, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	if out == nil || len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// send performs a single HTTP round trip. The request is rebuilt from the
// payload each time, so a resend after refresh replays the body safely.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, access, requestID string) (*http.Response, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	return resp, data, nil
}

// refreshAccess obtains a fresh access token via POST /token/refresh/.
// staleAccess is the token that just got a 401. Refreshes are serialized:
// if another request already replaced the stale token while we waited for
// the lock, the new token is reused without a second refresh call.
func (c *Client) refreshAccess(ctx context.Context, staleAccess string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	pair, err := c.tokens.Load()
	if err != nil {
		return "", err
	}

	if pair.Access != "" && pair.Access != staleAccess {
		log.Debug().Msg("access token already refreshed by a concurrent request")
		return pair.Access, nil
	}

	if pair.Refresh == "" {
		return "", session.ErrNoToken
	}

	payload, err := json.Marshal(map[string]string{"refresh": pair.Refresh})
	if err != nil {
		return "", fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	resp, data, err := c.send(ctx, http.MethodPost, "/token/refresh/", nil, payload, "", uuid.NewString())
	if err != nil {
		return "", fmt.Errorf("refresh request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", newAPIError(resp.StatusCode, data)
	}

	var refreshed tokenPairResponse
	if err := json.Unmarshal(data, &refreshed); err != nil {
		return "", fmt.Errorf("failed to decode refresh response: %w", err)
	}

	if err := c.tokens.SetAccess(refreshed.Access); err != nil {
		return "", err
	}

	return refreshed.Access, nil
}

// endSession removes both tokens and fires the session-expired hook. A
// failed refresh always ends the session, regardless of which in-flight
// request triggered it.
func (c *Client) endSession(cause error) {
	log.Debug().Err(cause).Msg("silent refresh failed, ending session")

	if err := c.tokens.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear token storage")
	}

	c.onSessionExpired()
}

func newAPIError(status int, data []byte) *APIError {
	var body struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(data, &body)

	return &APIError{StatusCode: status, Detail: body.Detail}
}

// decodeList accepts both response shapes the backend produces for list
// endpoints: a bare JSON array or a {"results": [...]} envelope.
func decodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list response: %w", err)
		}
		return items, nil
	}

	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode list response: %w", err)
	}

	return envelope.Results, nil
}
