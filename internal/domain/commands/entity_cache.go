package commands

import (
	"context"
	"encoding/json"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
)

// EntityCache serves projects and labels, fetching each key at most once.
type EntityCache interface {
	// GetProject returns nil when the project is unknown or cannot be fetched.
	// A nil result is never cached.
	GetProject(ctx context.Context, path string) *entities.Project

	// GetProjectLabels returns the labels of a project. An empty list is
	// cached like any other; a failed fetch is not.
	GetProjectLabels(ctx context.Context, path string) []entities.Label

	// GetProjectScopedLabels returns the scoped labels whose scope is prefix,
	// or an empty list.
	GetProjectScopedLabels(ctx context.Context, path, prefix string) []entities.Label

	// GetProjectLabel returns the label with the exact name, or nil.
	GetProjectLabel(ctx context.Context, path, name string) *entities.Label

	ClearCache(ctx context.Context)

	// ClearProjectLabelsCache drops the labels of one project, or of every
	// project when path is empty.
	ClearProjectLabelsCache(ctx context.Context, path string)
}

type cacheEntry[T any] struct {
	Value    T         `json:"value"`
	CachedAt time.Time `json:"cached_at"`
}

// EntityCacheCommand keeps the raw caches and their derived label indexes.
// Indexes are rebuilt under the same lock that mutates the label cache, so a
// reader never sees indexes for a cache state that did not exist.
type EntityCacheCommand struct {
	projects repositories.ProjectRepository
	storage  repositories.StorageRepository
	keys     entities.StorageKeys
	clock    clockwork.Clock

	inflight  singleflight.Group
	restore   sync.Once
	persistMu sync.Mutex

	mu           sync.RWMutex
	projectCache map[string]cacheEntry[entities.Project]
	labelCache   map[string]cacheEntry[[]entities.Label]
	indexes      entities.LabelIndexes
}

// NewEntityCacheCommand creates an empty cache; persisted entries are loaded
// on first use.
func NewEntityCacheCommand(
	projects repositories.ProjectRepository,
	storage repositories.StorageRepository,
	keys entities.StorageKeys,
	clock clockwork.Clock,
) *EntityCacheCommand {
	return &EntityCacheCommand{
		projects:     projects,
		storage:      storage,
		keys:         keys,
		clock:        clock,
		projectCache: make(map[string]cacheEntry[entities.Project]),
		labelCache:   make(map[string]cacheEntry[[]entities.Label]),
		indexes:      entities.BuildLabelIndexes(nil),
	}
}

func (it *EntityCacheCommand) GetProject(ctx context.Context, path string) *entities.Project {
	it.ensureRestored(ctx)

	it.mu.RLock()
	entry, ok := it.projectCache[path]
	it.mu.RUnlock()
	if ok {
		project := entry.Value
		return &project
	}

	result, err, _ := it.inflight.Do("project:"+path, func() (interface{}, error) {
		project, fetchErr := it.projects.GetProject(ctx, path)
		if fetchErr != nil || project == nil {
			return project, fetchErr
		}

		it.mu.Lock()
		it.projectCache[path] = cacheEntry[entities.Project]{Value: *project, CachedAt: it.clock.Now()}
		it.mu.Unlock()
		it.persistProjects(ctx)
		return project, nil
	})
	if err != nil {
		logger.Warnf("Failed to load project %q: %v", path, err)
		return nil
	}

	project, _ := result.(*entities.Project)
	if project == nil {
		logger.Debugf("Project %q not found", path)
		return nil
	}
	found := *project
	return &found
}

func (it *EntityCacheCommand) GetProjectLabels(ctx context.Context, path string) []entities.Label {
	it.ensureRestored(ctx)

	it.mu.RLock()
	entry, ok := it.labelCache[path]
	it.mu.RUnlock()
	if ok {
		return slices.Clone(entry.Value)
	}

	result, err, _ := it.inflight.Do("labels:"+path, func() (interface{}, error) {
		labels, fetchErr := it.projects.ListProjectLabels(ctx, path)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if labels == nil {
			labels = []entities.Label{}
		}

		it.mu.Lock()
		it.labelCache[path] = cacheEntry[[]entities.Label]{Value: labels, CachedAt: it.clock.Now()}
		it.rebuildIndexesLocked()
		it.mu.Unlock()
		it.persistLabels(ctx)
		return labels, nil
	})
	if err != nil {
		logger.Warnf("Failed to load labels of %q: %v", path, err)
		return []entities.Label{}
	}

	labels, _ := result.([]entities.Label)
	return slices.Clone(labels)
}

func (it *EntityCacheCommand) GetProjectScopedLabels(ctx context.Context, path, prefix string) []entities.Label {
	it.GetProjectLabels(ctx, path)

	it.mu.RLock()
	defer it.mu.RUnlock()
	labels := it.indexes.ByPrefix[entities.ScopedLabelsKey(path, prefix)]
	if labels == nil {
		return []entities.Label{}
	}
	return slices.Clone(labels)
}

func (it *EntityCacheCommand) GetProjectLabel(ctx context.Context, path, name string) *entities.Label {
	it.GetProjectLabels(ctx, path)

	it.mu.RLock()
	defer it.mu.RUnlock()
	label, ok := it.indexes.ByKey[entities.LabelKey(path, name)]
	if !ok {
		return nil
	}
	return &label
}

func (it *EntityCacheCommand) ClearCache(ctx context.Context) {
	it.ensureRestored(ctx)

	it.mu.Lock()
	it.projectCache = make(map[string]cacheEntry[entities.Project])
	it.labelCache = make(map[string]cacheEntry[[]entities.Label])
	it.rebuildIndexesLocked()
	it.mu.Unlock()

	it.persistMu.Lock()
	defer it.persistMu.Unlock()
	for _, key := range []string{it.keys.Projects(), it.keys.ProjectLabels()} {
		if err := it.storage.Delete(ctx, key); err != nil {
			logger.Warnf("Failed to delete %q: %v", key, err)
		}
	}
}

func (it *EntityCacheCommand) ClearProjectLabelsCache(ctx context.Context, path string) {
	it.ensureRestored(ctx)

	it.mu.Lock()
	if path == "" {
		it.labelCache = make(map[string]cacheEntry[[]entities.Label])
	} else {
		delete(it.labelCache, path)
	}
	it.rebuildIndexesLocked()
	it.mu.Unlock()

	it.persistLabels(ctx)
}

func (it *EntityCacheCommand) rebuildIndexesLocked() {
	raw := make(map[string][]entities.Label, len(it.labelCache))
	for path, entry := range it.labelCache {
		raw[path] = entry.Value
	}
	it.indexes = entities.BuildLabelIndexes(raw)
}

// ensureRestored loads the persisted caches once. Unreadable entries are
// dropped; the cache then behaves as if it had never been persisted.
func (it *EntityCacheCommand) ensureRestored(ctx context.Context) {
	it.restore.Do(func() {
		projects := make(map[string]cacheEntry[entities.Project])
		labels := make(map[string]cacheEntry[[]entities.Label])
		restoreMap(ctx, it.storage, it.keys.Projects(), projects)
		restoreMap(ctx, it.storage, it.keys.ProjectLabels(), labels)

		it.mu.Lock()
		maps.Copy(it.projectCache, projects)
		maps.Copy(it.labelCache, labels)
		it.rebuildIndexesLocked()
		it.mu.Unlock()

		logger.Debugf("Restored %d projects and %d label lists", len(projects), len(labels))
	})
}

func (it *EntityCacheCommand) persistProjects(ctx context.Context) {
	it.persist(ctx, it.keys.Projects(), func() interface{} { return it.projectCache })
}

func (it *EntityCacheCommand) persistLabels(ctx context.Context) {
	it.persist(ctx, it.keys.ProjectLabels(), func() interface{} { return it.labelCache })
}

// persist writes a snapshot taken while holding persistMu, so the last write
// always carries the newest state.
func (it *EntityCacheCommand) persist(ctx context.Context, key string, snapshot func() interface{}) {
	it.persistMu.Lock()
	defer it.persistMu.Unlock()

	it.mu.RLock()
	data, err := json.Marshal(snapshot())
	it.mu.RUnlock()
	if err != nil {
		logger.Warnf("Failed to encode %q: %v", key, err)
		return
	}
	if err = it.storage.Set(ctx, key, data); err != nil {
		logger.Warnf("Failed to persist %q: %v", key, err)
	}
}

func restoreMap[T any](
	ctx context.Context,
	storage repositories.StorageRepository,
	key string,
	target map[string]T,
) {
	data, found, err := storage.Get(ctx, key)
	if err != nil {
		logger.Warnf("Failed to read %q: %v", key, err)
		return
	}
	if !found {
		return
	}
	if err = json.Unmarshal(data, &target); err != nil {
		logger.Warnf("Discarding unreadable %q: %v", key, err)
		clear(target)
	}
}
