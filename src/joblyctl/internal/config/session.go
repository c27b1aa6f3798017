// Package config stores the joblyctl session between invocations.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitswalk/jobly/src/common/paths"
)

// ErrNoSession is returned by Load when nobody is logged in
var ErrNoSession = errors.New("no stored session")

// SessionPath is where the session lives
var SessionPath = "~/.joblyctl/token.json"

// Session is the token handed out by a joblyd server, together with the
// server it is valid for.
type Session struct {
	Token     string    `json:"token"`
	ServerURL string    `json:"server_url"`
	Username  string    `json:"username"`
	SavedAt   time.Time `json:"saved_at"`
}

// TokenFor returns the token when it was issued by serverURL. Sessions
// saved without a server match any.
func (s *Session) TokenFor(serverURL string) string {
	if s == nil || s.Token == "" {
		return ""
	}
	stored := strings.TrimRight(s.ServerURL, "/")
	if stored != "" && stored != strings.TrimRight(serverURL, "/") {
		return ""
	}
	return s.Token
}

// Save writes the session, readable by the owner only. The file is
// replaced atomically so a concurrent Load never sees half a token.
func Save(s *Session) error {
	path := paths.Expand(SessionPath)
	if err := paths.EnsureParent(path); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".token-*")
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Load reads the stored session
func Load() (*Session, error) {
	data, err := os.ReadFile(paths.Expand(SessionPath))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session file is corrupt: %w", err)
	}
	if s.Token == "" {
		return nil, ErrNoSession
	}
	return &s, nil
}

// Clear forgets the session. Clearing when logged out is not an error.
func Clear() error {
	err := os.Remove(paths.Expand(SessionPath))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
