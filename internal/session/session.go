package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alhassanmohamed2/companySYS/internal/policy"
	"github.com/alhassanmohamed2/companySYS/internal/token"
)

// Authenticator exchanges credentials for a token pair. Implemented by the
// API client; defined here so the manager can be tested without one.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (TokenPair, error)
}

// Session is the current authentication context. Either Authenticated is
// true and every other field is set, or it is false and every other field
// is zero.
type Session struct {
	Authenticated bool
	UserID        int
	Username      string
	Role          policy.Role
}

// Manager owns the session lifecycle: anonymous → authenticated →
// anonymous, cycling any number of times within one process run. It is
// constructed and injected explicitly rather than living in package state.
type Manager struct {
	tokens *TokenStore

	mu      sync.RWMutex
	current Session
	now     func() time.Time
}

// NewManager creates a session manager backed by the given token store.
// The initial state is anonymous; call Hydrate to restore a prior session.
func NewManager(tokens *TokenStore) *Manager {
	return &Manager{
		tokens: tokens,
		now:    time.Now,
	}
}

// Current returns a snapshot of the session state.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Login authenticates with the backend, persists the issued token pair and
// transitions the session to authenticated. On any failure the state is
// left untouched and the error propagates.
func (m *Manager) Login(ctx context.Context, authn Authenticator, username, password string) error {
	pair, err := authn.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}

	claims, err := token.Decode(pair.Access)
	if err != nil {
		return fmt.Errorf("server issued an unusable access token: %w", err)
	}

	if err := m.tokens.Save(pair); err != nil {
		return err
	}

	// The backend is expected to put the username in the token; fall back
	// to the credentials we just authenticated with if it didn't.
	name := claims.Username
	if name == "" {
		name = username
	}

	m.mu.Lock()
	m.current = Session{
		Authenticated: true,
		UserID:        claims.UserID,
		Username:      name,
		Role:          claims.Role,
	}
	m.mu.Unlock()

	log.Info().Str("username", name).Str("role", string(claims.Role)).Msg("logged in")

	return nil
}

// Logout removes both tokens from storage unconditionally and resets the
// session to anonymous. It never fails; a storage error is logged and the
// in-memory state is reset regardless.
func (m *Manager) Logout() {
	if err := m.tokens.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear token storage on logout")
	}

	m.mu.Lock()
	m.current = Session{}
	m.mu.Unlock()

	log.Info().Msg("logged out")
}

// Hydrate restores the session from durable storage at process startup.
// An absent token leaves the session anonymous. An undecodable or expired
// token clears both storage entries and leaves the session anonymous; a
// stale refresh token is useless once we have decided the session is over,
// so it is removed along with the access token.
func (m *Manager) Hydrate() {
	pair, err := m.tokens.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to read token storage")
		return
	}

	if pair.Access == "" {
		return
	}

	claims, err := token.Decode(pair.Access)
	if err != nil {
		log.Debug().Err(err).Msg("stored access token is malformed, clearing storage")
		if err := m.tokens.Clear(); err != nil {
			log.Warn().Err(err).Msg("failed to clear token storage")
		}
		return
	}

	if claims.IsExpired(m.now()) {
		log.Debug().Msg("stored access token has expired, clearing storage")
		if err := m.tokens.Clear(); err != nil {
			log.Warn().Err(err).Msg("failed to clear token storage")
		}
		return
	}

	m.mu.Lock()
	m.current = Session{
		Authenticated: true,
		UserID:        claims.UserID,
		Username:      claims.Username,
		Role:          claims.Role,
	}
	m.mu.Unlock()

	log.Debug().Str("username", claims.Username).Msg("session restored from storage")
}
