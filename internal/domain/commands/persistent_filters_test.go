//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/commands"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	doubles "github.com/rios0rios0/gitlab-enhancer/test/infrastructure/repositorydoubles"
)

func newPersistentFilters(storage *doubles.StubStorageRepository) *commands.PersistentFiltersCommand {
	return commands.NewPersistentFiltersCommand(commands.NewPreferencesCommand(storage, testKeys), storage, testKeys)
}

func mustLocation(t *testing.T, rawURL string) entities.Location {
	t.Helper()
	location, err := entities.ParseLocation(rawURL)
	require.NoError(t, err)
	return location
}

func TestPersistentFiltersRestore(t *testing.T) {
	t.Parallel()

	t.Run("should redirect a bare list page to its saved filters", func(t *testing.T) {
		t.Parallel()

		// given
		storage := doubles.NewStubStorageRepository()
		filters := newPersistentFilters(storage)
		ctx := context.Background()
		saved, err := filters.Save(ctx, mustLocation(t, "https://gl.example.com/group/web/-/issues?milestone_title=v1&page=3"))
		require.NoError(t, err)
		require.True(t, saved)

		// when
		target, ok := filters.Restore(ctx, mustLocation(t, "https://gl.example.com/group/web/-/issues"))

		// then
		assert.True(t, ok)
		assert.Equal(t, "/group/web/-/issues?milestone_title=v1", target)
	})

	t.Run("should not redirect when the page already carries filters", func(t *testing.T) {
		t.Parallel()

		// given
		storage := doubles.NewStubStorageRepository()
		filters := newPersistentFilters(storage)
		ctx := context.Background()
		_, err := filters.Save(ctx, mustLocation(t, "https://gl.example.com/group/web/-/issues?milestone_title=v1"))
		require.NoError(t, err)

		// when
		_, ok := filters.Restore(ctx, mustLocation(t, "https://gl.example.com/group/web/-/issues?milestone_title=v2"))

		// then
		assert.False(t, ok)
	})

	t.Run("should keep dashboard filters apart per assignee", func(t *testing.T) {
		t.Parallel()

		// given
		storage := doubles.NewStubStorageRepository()
		filters := newPersistentFilters(storage)
		ctx := context.Background()
		_, err := filters.Save(ctx, mustLocation(t,
			"https://gl.example.com/dashboard/issues?assignee_username=jdoe&label_name=bug&state=opened"))
		require.NoError(t, err)

		// when
		target, ok := filters.Restore(ctx, mustLocation(t, "https://gl.example.com/dashboard/issues?assignee_username=jdoe"))
		_, otherOK := filters.Restore(ctx, mustLocation(t, "https://gl.example.com/dashboard/issues?assignee_username=alice"))

		// then
		assert.True(t, ok)
		assert.Equal(t, "/dashboard/issues?assignee_username=jdoe&label_name=bug&state=opened", target)
		assert.False(t, otherOK)
	})

	t.Run("should do nothing when the toggle is off", func(t *testing.T) {
		t.Parallel()

		// given
		storage := doubles.NewStubStorageRepository()
		preferences := commands.NewPreferencesCommand(storage, testKeys)
		require.NoError(t, preferences.Set(context.Background(), entities.PrefGeneralPersistentFilters, false))
		filters := commands.NewPersistentFiltersCommand(preferences, storage, testKeys)

		// when
		saved, err := filters.Save(context.Background(), mustLocation(t, "https://gl.example.com/group/web/-/boards?label_name=x"))

		// then
		require.NoError(t, err)
		assert.False(t, saved)
		assert.Empty(t, storage.Value("ns/persistent-filters"))
		assert.Empty(t, filters.NavigationLinks(context.Background()))
	})

	t.Run("should ignore pages without a filterable list", func(t *testing.T) {
		t.Parallel()

		// given
		filters := newPersistentFilters(doubles.NewStubStorageRepository())

		// when
		saved, err := filters.Save(context.Background(), mustLocation(t, "https://gl.example.com/group/web/-/tree/main?ref=x"))

		// then
		require.NoError(t, err)
		assert.False(t, saved)
	})
}

func TestPersistentFiltersNavigationLinks(t *testing.T) {
	t.Parallel()

	t.Run("should list saved filters sorted by the path they match", func(t *testing.T) {
		t.Parallel()

		// given
		storage := doubles.NewStubStorageRepository()
		storage.Values["ns/persistent-filters"] = []byte(
			`{"/group/web/-/merge_requests":"?draft=no","/group/web/-/boards":"?label_name=x","/group/web/-/wikis":"?a=b"}`,
		)
		filters := newPersistentFilters(storage)

		// when
		links := filters.NavigationLinks(context.Background())

		// then
		assert.Equal(t, []entities.FilterLink{
			{Match: "/group/web/-/boards", Href: "/group/web/-/boards?label_name=x"},
			{Match: "/group/web/-/merge_requests", Href: "/group/web/-/merge_requests?draft=no"},
		}, links)
	})
}
