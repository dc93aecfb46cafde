package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alhassanmohamed2/companySYS/internal/policy"
	"github.com/alhassanmohamed2/companySYS/internal/token"
)

var testSecret = []byte("test-signing-secret")

type fakeAuthenticator struct {
	pair  TokenPair
	err   error
	calls int
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, _, _ string) (TokenPair, error) {
	f.calls++
	if f.err != nil {
		return TokenPair{}, f.err
	}
	return f.pair, nil
}

func newTestManager(t *testing.T) (*Manager, *TokenStore) {
	t.Helper()
	store, err := NewTokenStore(t.TempDir())
	require.NoError(t, err)
	return NewManager(store), store
}

func mintToken(t *testing.T, userID int, username string, role policy.Role, expiresAt time.Time) string {
	t.Helper()
	tok, err := token.Sign(testSecret, userID, username, role, expiresAt)
	require.NoError(t, err)
	return tok
}

func TestManager_Login(t *testing.T) {
	t.Run("transitions to authenticated and persists both tokens", func(t *testing.T) {
		mgr, store := newTestManager(t)
		access := mintToken(t, 1, "admin", policy.RoleAdmin, time.Now().Add(24*time.Hour))
		authn := &fakeAuthenticator{pair: TokenPair{Access: access, Refresh: "ref-1"}}

		err := mgr.Login(context.Background(), authn, "admin", "password123")
		require.NoError(t, err)

		sess := mgr.Current()
		assert.True(t, sess.Authenticated)
		assert.Equal(t, 1, sess.UserID)
		assert.Equal(t, "admin", sess.Username)
		assert.Equal(t, policy.RoleAdmin, sess.Role)

		pair, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, access, pair.Access)
		assert.Equal(t, "ref-1", pair.Refresh)
	})

	t.Run("leaves state untouched on authentication failure", func(t *testing.T) {
		mgr, store := newTestManager(t)
		authn := &fakeAuthenticator{err: errors.New("invalid credentials")}

		err := mgr.Login(context.Background(), authn, "admin", "wrong")
		require.Error(t, err)

		assert.Equal(t, Session{}, mgr.Current())
		pair, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, pair.Access)
	})

	t.Run("rejects an undecodable access token", func(t *testing.T) {
		mgr, store := newTestManager(t)
		authn := &fakeAuthenticator{pair: TokenPair{Access: "not-a-jwt", Refresh: "ref-1"}}

		err := mgr.Login(context.Background(), authn, "admin", "password123")
		require.ErrorIs(t, err, token.ErrMalformedToken)

		assert.Equal(t, Session{}, mgr.Current())
		pair, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, pair.Refresh, "tokens must not be persisted when login fails")
	})

	t.Run("falls back to supplied username when claim is empty", func(t *testing.T) {
		mgr, _ := newTestManager(t)
		access := mintToken(t, 3, "", policy.RoleDev, time.Now().Add(time.Hour))
		authn := &fakeAuthenticator{pair: TokenPair{Access: access, Refresh: "ref-1"}}

		err := mgr.Login(context.Background(), authn, "khaled", "pw")
		require.NoError(t, err)
		assert.Equal(t, "khaled", mgr.Current().Username)
	})
}

// Scenario: login as ADMIN, then logout. Both storage entries are removed
// and the session returns to anonymous with all fields zeroed.
func TestManager_LoginThenLogout(t *testing.T) {
	mgr, store := newTestManager(t)
	access := mintToken(t, 1, "admin", policy.RoleAdmin, time.Now().Add(24*time.Hour))
	authn := &fakeAuthenticator{pair: TokenPair{Access: access, Refresh: "ref-1"}}

	require.NoError(t, mgr.Login(context.Background(), authn, "admin", "password123"))
	require.True(t, mgr.Current().Authenticated)

	mgr.Logout()

	assert.Equal(t, Session{}, mgr.Current())
	pair, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, pair.Access)
	assert.Empty(t, pair.Refresh)
}

func TestManager_LogoutWhenAnonymous(t *testing.T) {
	mgr, _ := newTestManager(t)

	// never fails, even with nothing stored
	mgr.Logout()
	assert.Equal(t, Session{}, mgr.Current())
}

func TestManager_Hydrate(t *testing.T) {
	t.Run("restores session from a valid stored token", func(t *testing.T) {
		mgr, store := newTestManager(t)
		access := mintToken(t, 9, "sara", policy.RolePM, time.Now().Add(time.Hour))
		require.NoError(t, store.Save(TokenPair{Access: access, Refresh: "ref-1"}))

		mgr.Hydrate()

		sess := mgr.Current()
		assert.True(t, sess.Authenticated)
		assert.Equal(t, 9, sess.UserID)
		assert.Equal(t, "sara", sess.Username)
		assert.Equal(t, policy.RolePM, sess.Role)
	})

	t.Run("stays anonymous with empty storage", func(t *testing.T) {
		mgr, _ := newTestManager(t)

		mgr.Hydrate()

		assert.Equal(t, Session{}, mgr.Current())
	})

	t.Run("clears storage on malformed token", func(t *testing.T) {
		mgr, store := newTestManager(t)
		require.NoError(t, store.Save(TokenPair{Access: "garbage", Refresh: "ref-1"}))

		mgr.Hydrate()

		assert.Equal(t, Session{}, mgr.Current())
		pair, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, pair.Access)
		assert.Empty(t, pair.Refresh)
	})

	t.Run("clears storage on expired token and does not error", func(t *testing.T) {
		mgr, store := newTestManager(t)
		access := mintToken(t, 9, "sara", policy.RolePM, time.Now().Add(-time.Minute))
		require.NoError(t, store.Save(TokenPair{Access: access, Refresh: "ref-1"}))

		mgr.Hydrate()

		assert.Equal(t, Session{}, mgr.Current())
		pair, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, pair.Access)
		assert.Empty(t, pair.Refresh)
	})

	t.Run("expiry is evaluated against the manager clock", func(t *testing.T) {
		mgr, store := newTestManager(t)
		access := mintToken(t, 9, "sara", policy.RolePM, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, store.Save(TokenPair{Access: access, Refresh: "ref-1"}))

		mgr.now = func() time.Time { return time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC) }
		mgr.Hydrate()
		assert.True(t, mgr.Current().Authenticated)
	})
}

// The session may cycle between authenticated and anonymous any number of
// times within one process run.
func TestManager_Cycles(t *testing.T) {
	mgr, _ := newTestManager(t)
	access := mintToken(t, 1, "admin", policy.RoleAdmin, time.Now().Add(time.Hour))
	authn := &fakeAuthenticator{pair: TokenPair{Access: access, Refresh: "ref-1"}}

	for i := 0; i < 3; i++ {
		require.NoError(t, mgr.Login(context.Background(), authn, "admin", "pw"))
		assert.True(t, mgr.Current().Authenticated)
		mgr.Logout()
		assert.False(t, mgr.Current().Authenticated)
	}
}
