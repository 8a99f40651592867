package repositories

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	logger "github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
	"github.com/rios0rios0/gitlab-enhancer/internal/infrastructure/metrics"
	glRepo "github.com/rios0rios0/gitlab-enhancer/internal/infrastructure/repositories/gitlab"
	htmlRepo "github.com/rios0rios0/gitlab-enhancer/internal/infrastructure/repositories/html"
	memRepo "github.com/rios0rios0/gitlab-enhancer/internal/infrastructure/repositories/memory"
	redisRepo "github.com/rios0rios0/gitlab-enhancer/internal/infrastructure/repositories/redis"
	sqliteRepo "github.com/rios0rios0/gitlab-enhancer/internal/infrastructure/repositories/sqlite"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Metrics
	if err := container.Provide(metrics.NewRegistry); err != nil {
		return err
	}
	if err := container.Provide(func(reg *prometheus.Registry) *metrics.FetchMetrics {
		return metrics.NewFetchMetrics(reg)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(reg *prometheus.Registry) *metrics.LookupMetrics {
		return metrics.NewLookupMetrics(reg)
	}); err != nil {
		return err
	}

	// Register storage registry with all driver factories
	if err := container.Provide(NewDefaultStorageRegistry); err != nil {
		return err
	}
	if err := container.Provide(openStorage); err != nil {
		return err
	}

	// Register remote repository constructors
	if err := container.Provide(glRepo.NewFetcher); err != nil {
		return err
	}
	if err := container.Provide(glRepo.NewProjectRepository); err != nil {
		return err
	}
	if err := container.Provide(glRepo.NewSessionRepository); err != nil {
		return err
	}
	if err := container.Provide(htmlRepo.NewProjectPathExtractor); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *glRepo.Fetcher) domainRepos.FetchRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *glRepo.ProjectRepository) domainRepos.ProjectRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *glRepo.SessionRepository) domainRepos.SessionRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *htmlRepo.ProjectPathExtractor) domainRepos.ProjectPathExtractor {
		return impl
	}); err != nil {
		return err
	}

	return nil
}

// NewDefaultStorageRegistry registers the memory, sqlite and redis drivers.
func NewDefaultStorageRegistry() *StorageRegistry {
	reg := NewStorageRegistry()
	reg.Register(entities.StorageDriverMemory, func(context.Context, *entities.Settings) (domainRepos.StorageRepository, error) {
		return memRepo.NewStorageRepository(), nil
	})
	reg.Register(entities.StorageDriverSQLite, func(_ context.Context, settings *entities.Settings) (domainRepos.StorageRepository, error) {
		return sqliteRepo.NewStorageRepository(settings)
	})
	reg.Register(entities.StorageDriverRedis, func(ctx context.Context, settings *entities.Settings) (domainRepos.StorageRepository, error) {
		return redisRepo.NewStorageRepository(ctx, settings)
	})
	return reg
}

// openStorage falls back to process memory when the configured store cannot
// be opened.
func openStorage(reg *StorageRegistry, settings *entities.Settings) domainRepos.StorageRepository {
	storage, err := reg.Open(context.Background(), settings)
	if err != nil {
		logger.Warnf("Failed to open storage, falling back to memory: %v", err)
		return memRepo.NewStorageRepository()
	}
	logger.Debugf("Using %s storage", storage.Name())
	return storage
}
