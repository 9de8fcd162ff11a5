package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// now is swapped in tests that exercise token expiry.
var now = time.Now

// fileState is the on-disk shape. A single fixed key keeps the file greppable
// and forward-compatible with future fields.
type fileState struct {
	Token string `json:"token"`
}

// FileStore keeps the token in a JSON file (0600), the client-side analogue
// of the browser's localStorage slot.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore loads or creates the token file at path.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("session: create dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}

	var state fileState
	if err := json.Unmarshal(raw, &state); err != nil {
		return ""
	}
	return state.Token
}

func (s *FileStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(fileState{Token: token})
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: remove %s: %w", s.path, err)
	}
	return nil
}
