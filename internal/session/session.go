// Package session persists the authenticated admin's identity between runs.
// The session is stored as a single JSON blob in ~/.config/manifest/session.json.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deepclear/manifest/internal/policy"
)

// Session holds the identity and claims returned by /admin/login.
type Session struct {
	AdminID    string            `json:"adminId"`
	AdminName  string            `json:"adminName"`
	Department policy.Department `json:"department"`
	Token      string            `json:"token"`
	IssuedAt   time.Time         `json:"issuedAt"`
}

// Valid reports whether the session carries the minimum fields needed to
// authenticate API calls.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.AdminID) != "" && strings.TrimSpace(s.Token) != ""
}

const defaultSessionPath = "~/.config/manifest/session.json"

// DefaultPath returns the default session file path.
func DefaultPath() string {
	return defaultSessionPath
}

// Store reads and writes the persisted session at a fixed path. It is the
// sole source of truth for authorization decisions; nothing else reads the
// session file.
type Store struct {
	path string
}

// NewStore builds a Store for the given path; empty uses the default.
func NewStore(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = defaultSessionPath
	}
	return &Store{path: path}
}

// Load reads the persisted session. Missing or malformed data loads as
// absent (ok=false), never as an error; the caller treats absent as
// logged-out.
func (s *Store) Load() (Session, bool) {
	resolved, err := expandPath(s.path)
	if err != nil {
		return Session{}, false
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		return Session{}, false
	}

	var sess Session
	if err := json.Unmarshal(bytes, &sess); err != nil {
		return Session{}, false
	}
	if !sess.Valid() {
		return Session{}, false
	}
	return sess, true
}

// Save persists the session, overwriting any prior one. The file holds a
// bearer token, so it is written 0600.
func (s *Store) Save(sess Session) error {
	resolved, err := expandPath(s.path)
	if err != nil {
		return fmt.Errorf("resolve session path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	bytes, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an already-absent session is
// not an error.
func (s *Store) Clear() error {
	resolved, err := expandPath(s.path)
	if err != nil {
		return fmt.Errorf("resolve session path: %w", err)
	}
	if err := os.Remove(resolved); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
