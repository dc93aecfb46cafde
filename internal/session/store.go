package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ErrNoToken is returned when a required token is not in storage.
var ErrNoToken = errors.New("no token stored")

// TokenPair holds the two durable storage entries issued by the backend:
// a short-lived access token (1 day) and a longer-lived refresh token
// (7 days).
type TokenPair struct {
	Access  string `json:"access_token,omitempty"`
	Refresh string `json:"refresh_token,omitempty"`
}

// TokenStore persists the token pair on the local filesystem.
type TokenStore struct {
	baseDir string
}

// NewTokenStore creates a token store rooted at baseDir.
// If baseDir is empty, uses ~/.companysys/
func NewTokenStore(baseDir string) (*TokenStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".companysys")
	}

	// Tokens grant account access, keep the directory private
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create token directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("token store initialized")

	return &TokenStore{baseDir: baseDir}, nil
}

func (s *TokenStore) tokensPath() string {
	return filepath.Join(s.baseDir, "tokens.json")
}

// Load reads the stored token pair. A missing file is not an error; it
// yields an empty pair.
func (s *TokenStore) Load() (TokenPair, error) {
	data, err := os.ReadFile(s.tokensPath())
	if err != nil {
		if os.IsNotExist(err) {
			return TokenPair{}, nil
		}
		return TokenPair{}, fmt.Errorf("failed to read tokens: %w", err)
	}

	var pair TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return TokenPair{}, fmt.Errorf("failed to parse tokens: %w", err)
	}

	return pair, nil
}

// Save writes both tokens atomically.
func (s *TokenStore) Save(pair TokenPair) error {
	data, err := json.MarshalIndent(pair, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}

	// Write to temp file first
	tokensPath := s.tokensPath()
	tempPath := tokensPath + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write tokens: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, tokensPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save tokens: %w", err)
	}

	return nil
}

// SetAccess replaces the stored access token, keeping the refresh token.
// Used after a successful silent refresh.
func (s *TokenStore) SetAccess(access string) error {
	pair, err := s.Load()
	if err != nil {
		return err
	}

	pair.Access = access

	return s.Save(pair)
}

// Clear removes both tokens from storage. Clearing an already-empty store
// is not an error.
func (s *TokenStore) Clear() error {
	if err := os.Remove(s.tokensPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove tokens: %w", err)
	}

	log.Debug().Msg("token storage cleared")

	return nil
}
