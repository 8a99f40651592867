//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"slices"
	"sync"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
)

// StubStorageRepository implements repositories.StorageRepository over a map,
// with injectable failures.
type StubStorageRepository struct {
	Values map[string][]byte

	GetErr    error
	SetErr    error
	DeleteErr error

	// OnSet runs before every write, outside the stub's lock.
	OnSet func(key string)

	mu sync.Mutex
	// spy: keys written and deleted
	SetKeys     []string
	DeletedKeys []string
}

var _ repositories.StorageRepository = (*StubStorageRepository)(nil)

// NewStubStorageRepository creates an empty stub store.
func NewStubStorageRepository() *StubStorageRepository {
	return &StubStorageRepository{Values: make(map[string][]byte)}
}

func (s *StubStorageRepository) Name() string { return "stub" }

func (s *StubStorageRepository) Close() error { return nil }

func (s *StubStorageRepository) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, false, s.GetErr
	}
	value, ok := s.Values[key]
	return slices.Clone(value), ok, nil
}

func (s *StubStorageRepository) Set(_ context.Context, key string, value []byte) error {
	if s.OnSet != nil {
		s.OnSet(key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SetKeys = append(s.SetKeys, key)
	if s.SetErr != nil {
		return s.SetErr
	}
	s.Values[key] = slices.Clone(value)
	return nil
}

func (s *StubStorageRepository) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeletedKeys = append(s.DeletedKeys, key)
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.Values, key)
	return nil
}

// Value returns the stored value for key as a string.
func (s *StubStorageRepository) Value(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.Values[key])
}
