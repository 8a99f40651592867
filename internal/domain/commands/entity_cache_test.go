//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/commands"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	builders "github.com/rios0rios0/gitlab-enhancer/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/gitlab-enhancer/test/infrastructure/repositorydoubles"
)

//nolint:gochecknoglobals // shared test fixtures
var (
	testKeys  = entities.StorageKeys{Namespace: "ns"}
	testEpoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func newEntityCache(
	repository *doubles.SpyProjectRepository,
	storage *doubles.StubStorageRepository,
) *commands.EntityCacheCommand {
	return commands.NewEntityCacheCommand(repository, storage, testKeys, clockwork.NewFakeClockAt(testEpoch))
}

func TestEntityCacheGetProject(t *testing.T) {
	t.Parallel()

	t.Run("should fetch a project once and serve later calls from the cache", func(t *testing.T) {
		t.Parallel()

		// given
		project := builders.NewProjectBuilder().WithPathWithNamespace("group/web").BuildProject()
		repository := &doubles.SpyProjectRepository{
			Projects: map[string]*entities.Project{"group/web": project},
		}
		storage := doubles.NewStubStorageRepository()
		cache := newEntityCache(repository, storage)

		// when
		first := cache.GetProject(context.Background(), "group/web")
		second := cache.GetProject(context.Background(), "group/web")

		// then
		require.NotNil(t, first)
		assert.Equal(t, project, first)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, repository.ProjectCallCount())
	})

	t.Run("should fetch again after a missing project", func(t *testing.T) {
		t.Parallel()

		// given
		repository := &doubles.SpyProjectRepository{}
		cache := newEntityCache(repository, doubles.NewStubStorageRepository())

		// when
		first := cache.GetProject(context.Background(), "group/missing")
		second := cache.GetProject(context.Background(), "group/missing")

		// then
		assert.Nil(t, first)
		assert.Nil(t, second)
		assert.Equal(t, 2, repository.ProjectCallCount())
	})

	t.Run("should return nil and not cache when the lookup fails", func(t *testing.T) {
		t.Parallel()

		// given
		repository := &doubles.SpyProjectRepository{ProjectErr: errors.New("HTTP error! status: 500")}
		cache := newEntityCache(repository, doubles.NewStubStorageRepository())

		// when
		first := cache.GetProject(context.Background(), "group/web")
		second := cache.GetProject(context.Background(), "group/web")

		// then
		assert.Nil(t, first)
		assert.Nil(t, second)
		assert.Equal(t, 2, repository.ProjectCallCount())
	})

	t.Run("should persist cached projects with the time they were cached", func(t *testing.T) {
		t.Parallel()

		// given
		project := builders.NewProjectBuilder().WithPathWithNamespace("group/web").BuildProject()
		repository := &doubles.SpyProjectRepository{
			Projects: map[string]*entities.Project{"group/web": project},
		}
		storage := doubles.NewStubStorageRepository()
		cache := newEntityCache(repository, storage)

		// when
		cache.GetProject(context.Background(), "group/web")

		// then
		var persisted map[string]struct {
			Value    entities.Project `json:"value"`
			CachedAt time.Time        `json:"cached_at"`
		}
		require.NoError(t, json.Unmarshal([]byte(storage.Value("ns/projects")), &persisted))
		assert.Equal(t, *project, persisted["group/web"].Value)
		assert.True(t, testEpoch.Equal(persisted["group/web"].CachedAt))
	})

	t.Run("should serve projects restored from storage without fetching", func(t *testing.T) {
		t.Parallel()

		// given
		repository := &doubles.SpyProjectRepository{}
		storage := doubles.NewStubStorageRepository()
		storage.Values["ns/projects"] = []byte(
			`{"group/api":{"value":{"id":9,"path_with_namespace":"group/api"},"cached_at":"2024-01-01T00:00:00Z"}}`,
		)
		cache := newEntityCache(repository, storage)

		// when
		project := cache.GetProject(context.Background(), "group/api")

		// then
		require.NotNil(t, project)
		assert.Equal(t, int64(9), project.ID)
		assert.Equal(t, 0, repository.ProjectCallCount())
	})

	t.Run("should ignore unreadable persisted entries", func(t *testing.T) {
		t.Parallel()

		// given
		repository := &doubles.SpyProjectRepository{}
		storage := doubles.NewStubStorageRepository()
		storage.Values["ns/projects"] = []byte(`not json`)
		cache := newEntityCache(repository, storage)

		// when
		project := cache.GetProject(context.Background(), "group/api")

		// then
		assert.Nil(t, project)
		assert.Equal(t, 1, repository.ProjectCallCount())
	})
}

func TestEntityCacheLabels(t *testing.T) {
	t.Parallel()

	labels := []entities.Label{
		builders.NewLabelBuilder().WithID(1).WithName("priority::high").BuildLabel(),
		builders.NewLabelBuilder().WithID(2).WithName("priority::low").BuildLabel(),
		builders.NewLabelBuilder().WithID(3).WithName("workflow::in review").BuildLabel(),
		builders.NewLabelBuilder().WithID(4).WithName("bug").BuildLabel(),
	}

	t.Run("should fetch labels once for two successive calls", func(t *testing.T) {
		t.Parallel()

		// given
		repository := &doubles.SpyProjectRepository{Labels: map[string][]entities.Label{"group/web": labels}}
		cache := newEntityCache(repository, doubles.NewStubStorageRepository())

		// when
		first := cache.GetProjectLabels(context.Background(), "group/web")
		second := cache.GetProjectLabels(context.Background(), "group/web")

		// then
		assert.Len(t, first, 4)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, repository.LabelCallCount())
	})

	t.Run("should cache an empty label list", func(t *testing.T) {
		t.Parallel()

		// given
		repository := &doubles.SpyProjectRepository{}
		cache := newEntityCache(repository, doubles.NewStubStorageRepository())

		// when
		first := cache.GetProjectLabels(context.Background(), "group/empty")
		second := cache.GetProjectLabels(context.Background(), "group/empty")

		// then
		assert.Empty(t, first)
		assert.Empty(t, second)
		assert.Equal(t, 1, repository.LabelCallCount())
	})

	t.Run("should not cache a failed label fetch", func(t *testing.T) {
		t.Parallel()

		// given
		repository := &doubles.SpyProjectRepository{LabelsErr: errors.New("HTTP error! status: 502")}
		cache := newEntityCache(repository, doubles.NewStubStorageRepository())

		// when
		first := cache.GetProjectLabels(context.Background(), "group/web")
		cache.GetProjectLabels(context.Background(), "group/web")

		// then
		assert.NotNil(t, first)
		assert.Empty(t, first)
		assert.Equal(t, 2, repository.LabelCallCount())
	})

	t.Run("should group scoped labels by scope", func(t *testing.T) {
		t.Parallel()

		// given
		repository := &doubles.SpyProjectRepository{Labels: map[string][]entities.Label{"group/web": labels}}
		cache := newEntityCache(repository, doubles.NewStubStorageRepository())

		// when
		priority := cache.GetProjectScopedLabels(context.Background(), "group/web", "priority")
		missing := cache.GetProjectScopedLabels(context.Background(), "group/web", "severity")

		// then
		names := make([]string, 0, len(priority))
		for _, label := range priority {
			names = append(names, label.Name)
		}
		assert.ElementsMatch(t, []string{"priority::high", "priority::low"}, names)
		assert.NotNil(t, missing)
		assert.Empty(t, missing)
		assert.Equal(t, 1, repository.LabelCallCount())
	})

	t.Run("should find a label by exact name", func(t *testing.T) {
		t.Parallel()

		// given
		repository := &doubles.SpyProjectRepository{Labels: map[string][]entities.Label{"group/web": labels}}
		cache := newEntityCache(repository, doubles.NewStubStorageRepository())

		// when
		found := cache.GetProjectLabel(context.Background(), "group/web", "workflow::in review")
		missing := cache.GetProjectLabel(context.Background(), "group/web", "workflow")

		// then
		require.NotNil(t, found)
		assert.Equal(t, int64(3), found.ID)
		assert.Nil(t, missing)
	})

	t.Run("should rebuild the indexes after clearing one project", func(t *testing.T) {
		t.Parallel()

		// given
		repository := &doubles.SpyProjectRepository{Labels: map[string][]entities.Label{
			"group/web": labels,
			"group/api": {builders.NewLabelBuilder().WithName("priority::high").BuildLabel()},
		}}
		cache := newEntityCache(repository, doubles.NewStubStorageRepository())
		cache.GetProjectLabels(context.Background(), "group/web")
		cache.GetProjectLabels(context.Background(), "group/api")
		repository.Labels["group/web"] = []entities.Label{}

		// when
		cache.ClearProjectLabelsCache(context.Background(), "group/web")

		// then
		assert.Nil(t, cache.GetProjectLabel(context.Background(), "group/web", "bug"))
		assert.NotNil(t, cache.GetProjectLabel(context.Background(), "group/api", "priority::high"))
		assert.Equal(t, 3, repository.LabelCallCount())
	})

	t.Run("should clear every cache and its persisted copy", func(t *testing.T) {
		t.Parallel()

		// given
		project := builders.NewProjectBuilder().WithPathWithNamespace("group/web").BuildProject()
		repository := &doubles.SpyProjectRepository{
			Projects: map[string]*entities.Project{"group/web": project},
			Labels:   map[string][]entities.Label{"group/web": labels},
		}
		storage := doubles.NewStubStorageRepository()
		cache := newEntityCache(repository, storage)
		cache.GetProject(context.Background(), "group/web")
		cache.GetProjectLabels(context.Background(), "group/web")

		// when
		cache.ClearCache(context.Background())
		cache.GetProject(context.Background(), "group/web")
		cache.GetProjectLabels(context.Background(), "group/web")

		// then
		assert.ElementsMatch(t, []string{"ns/projects", "ns/project-labels"}, storage.DeletedKeys)
		assert.Equal(t, 2, repository.ProjectCallCount())
		assert.Equal(t, 2, repository.LabelCallCount())
	})

	t.Run("should not let a write started before a clear outlive it", func(t *testing.T) {
		t.Parallel()

		// given
		repository := &doubles.SpyProjectRepository{
			Labels: map[string][]entities.Label{"group/web": labels},
		}
		storage := doubles.NewStubStorageRepository()
		writing := make(chan struct{})
		release := make(chan struct{})
		var once sync.Once
		storage.OnSet = func(key string) {
			if key != testKeys.ProjectLabels() {
				return
			}
			once.Do(func() {
				close(writing)
				<-release
			})
		}
		cache := newEntityCache(repository, storage)

		var wg sync.WaitGroup
		wg.Go(func() { cache.GetProjectLabels(context.Background(), "group/web") })
		<-writing

		// when
		wg.Go(func() { cache.ClearCache(context.Background()) })
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		// then
		assert.Empty(t, storage.Value(testKeys.ProjectLabels()))
	})
}
