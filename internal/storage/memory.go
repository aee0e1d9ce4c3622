package storage

import (
	"context"
	"sync"

	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

// MemoryStore keeps values for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Unavailable models a host where durable storage is disabled. Every
// operation fails with a PersistenceUnavailableError.
type Unavailable struct{}

func (Unavailable) Get(_ context.Context, key string) (string, bool, error) {
	return "", false, apperrors.NewPersistenceUnavailableError("get", key, nil)
}

func (Unavailable) Set(_ context.Context, key, _ string) error {
	return apperrors.NewPersistenceUnavailableError("set", key, nil)
}

func (Unavailable) Delete(_ context.Context, key string) error {
	return apperrors.NewPersistenceUnavailableError("delete", key, nil)
}

func (Unavailable) Close() error { return nil }
