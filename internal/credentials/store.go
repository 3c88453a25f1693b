// Package credentials persists the Meater Cloud session token on disk.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	apperrors "meater/internal/errors"
)

const (
	tokenDir  = "token"
	tokenFile = "data.json"
)

// ErrNotFound is returned when no usable token has been stored.
var ErrNotFound = fmt.Errorf("token not found, please run 'meater login' first: %w", apperrors.ErrCredentialMissing)

// Token is the session returned by the login endpoint.
type Token struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Bearer returns the Authorization header value for this token.
func (t Token) Bearer() string {
	return "Bearer " + t.Token
}

// Loader loads the stored token.
type Loader interface {
	Load() (Token, error)
}

// Store reads and writes the token file under a data directory.
type Store struct {
	path string
}

// NewStore creates a store rooted at dataDir.
func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, tokenDir, tokenFile)}
}

// Path returns the token file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the token. A missing, unreadable or empty token file yields ErrNotFound.
func (s *Store) Load() (Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Token{}, ErrNotFound
		}
		return Token{}, fmt.Errorf("failed to read token file %s: %w", s.path, errors.Join(apperrors.ErrCredentialMissing, err))
	}

	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return Token{}, fmt.Errorf("failed to parse token file %s: %w", s.path, errors.Join(apperrors.ErrCredentialMissing, err))
	}
	if tok.Token == "" {
		return Token{}, ErrNotFound
	}
	return tok, nil
}

// Save writes the token, creating the directory if needed.
func (s *Store) Save(tok Token) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Delete removes the stored token. Deleting a missing token is not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// DefaultDataDir returns the per-user data directory for the application.
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(base, "s9tpepper", "Meater", "data"), nil
	case "darwin":
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(base, "com.s9tpepper.Meater"), nil
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "meater"), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", "meater"), nil
	}
}
