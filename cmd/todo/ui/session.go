package ui

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SavedSession is the session state persisted between runs, the terminal
// equivalent of a browser keeping the token in local storage.
type SavedSession struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// SessionStore reads and writes the saved session file under the user's
// config directory.
type SessionStore struct {
	path string
}

func NewSessionStore() (*SessionStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &SessionStore{path: filepath.Join(dir, "todo-cli", "session.json")}, nil
}

// Load returns the saved session, or nil when none exists.
func (s *SessionStore) Load() (*SavedSession, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var sess SavedSession
	if err := json.Unmarshal(b, &sess); err != nil {
		// A corrupt file is treated as no session.
		return nil, nil
	}
	if sess.Token == "" {
		return nil, nil
	}
	return &sess, nil
}

// Save writes the session file, creating the directory if needed. The file is
// owner-readable only since it holds a bearer token.
func (s *SessionStore) Save(sess SavedSession) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

// Clear deletes the session file. Missing files are not an error.
func (s *SessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
