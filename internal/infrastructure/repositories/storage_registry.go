package repositories

import (
	"context"
	"fmt"
	"slices"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
)

// StorageFactory opens a StorageRepository from the settings.
type StorageFactory func(ctx context.Context, settings *entities.Settings) (domainRepos.StorageRepository, error)

// StorageRegistry manages all registered storage drivers.
type StorageRegistry struct {
	drivers map[string]StorageFactory
}

// NewStorageRegistry creates an empty storage registry.
func NewStorageRegistry() *StorageRegistry {
	return &StorageRegistry{
		drivers: make(map[string]StorageFactory),
	}
}

// Register adds a driver factory under the given name (e.g. "sqlite").
func (r *StorageRegistry) Register(name string, factory StorageFactory) {
	r.drivers[name] = factory
}

// Open returns the store selected by settings.Storage.Driver.
func (r *StorageRegistry) Open(ctx context.Context, settings *entities.Settings) (domainRepos.StorageRepository, error) {
	factory, ok := r.drivers[settings.Storage.Driver]
	if !ok {
		return nil, fmt.Errorf("unknown storage driver: %q", settings.Storage.Driver)
	}
	storage, err := factory(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", settings.Storage.Driver, err)
	}
	return storage, nil
}

// Names returns the registered driver names in sorted order.
func (r *StorageRegistry) Names() []string {
	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
