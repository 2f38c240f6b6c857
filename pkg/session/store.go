// Package session keeps the dashboard's login state on disk and decodes the
// identity embedded in the access token.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// tokenKey is the slot the access token lives under in the credential file.
const tokenKey = "token"

// Store is a small key-value file used as the dashboard's credential store.
// All methods are safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore places the credential file under the user's config directory,
// falling back to the working directory when none is available.
func DefaultStore() *Store {
	dir, err := os.UserConfigDir()
	if err != nil {
		return NewStore(".tts-session.json")
	}

	return NewStore(filepath.Join(dir, "teacher-transfer-system", "session.json"))
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false
	}

	value, ok := values[key]
	return value, ok
}

func (s *Store) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}

	values[key] = value
	return s.write(values)
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}

	delete(values, key)
	return s.write(values)
}

func (s *Store) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt credential file behaves like an empty one.
		return map[string]string{}, nil
	}

	return values, nil
}

func (s *Store) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(values)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}
