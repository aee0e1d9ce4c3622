package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

const fileVersion = "1.0"

// stateFile is the on-disk layout of a FileStore.
type stateFile struct {
	Version   string            `json:"version"`
	UpdatedAt time.Time         `json:"updated_at"`
	Values    map[string]string `json:"values"`
}

// FileStore persists values as a JSON document, rewritten atomically on
// every change.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates the parent directory of path and returns a store
// backed by it. The file itself is created on first write.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.NewPersistenceUnavailableError("open", path, fmt.Errorf("create state directory: %w", err))
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Get implements ports.KeyValueStore.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return "", false, apperrors.NewPersistenceUnavailableError("get", key, err)
	}
	value, ok := state.Values[key]
	return value, ok, nil
}

// Set implements ports.KeyValueStore.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return apperrors.NewPersistenceUnavailableError("set", key, err)
	}
	state.Values[key] = value
	if err := s.save(state); err != nil {
		return apperrors.NewPersistenceUnavailableError("set", key, err)
	}
	return nil
}

// Delete implements ports.KeyValueStore. Deleting a missing key is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return apperrors.NewPersistenceUnavailableError("delete", key, err)
	}
	if _, ok := state.Values[key]; !ok {
		return nil
	}
	delete(state.Values, key)
	if err := s.save(state); err != nil {
		return apperrors.NewPersistenceUnavailableError("delete", key, err)
	}
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() (stateFile, error) {
	state := stateFile{Version: fileVersion, Values: make(map[string]string)}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return state, err
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("failed to parse state file: %w", err)
	}
	if state.Values == nil {
		state.Values = make(map[string]string)
	}
	return state, nil
}

func (s *FileStore) save(state stateFile) error {
	state.Version = fileVersion
	state.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
