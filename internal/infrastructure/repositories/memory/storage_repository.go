package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// StorageRepository keeps values for the lifetime of the process only.
type StorageRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewStorageRepository creates an empty in-process store.
func NewStorageRepository() *StorageRepository {
	return &StorageRepository{values: make(map[string][]byte)}
}

func (r *StorageRepository) Name() string {
	return entities.StorageDriverMemory
}

func (r *StorageRepository) Get(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.values[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(value), true, nil
}

func (r *StorageRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = slices.Clone(value)
	return nil
}

func (r *StorageRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}

func (r *StorageRepository) Close() error {
	return nil
}
