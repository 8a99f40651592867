//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/commands"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	builders "github.com/rios0rios0/gitlab-enhancer/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/gitlab-enhancer/test/infrastructure/repositorydoubles"
)

func newProjectAvatars(
	extractor *doubles.StubProjectPathExtractor,
	storage *doubles.StubStorageRepository,
) *commands.ProjectAvatarsCommand {
	repository := &doubles.SpyProjectRepository{
		Projects: map[string]*entities.Project{
			"group/web": builders.NewProjectBuilder().
				WithPathWithNamespace("group/web").
				WithAvatarURL("https://gl.example.com/uploads/web.png").
				BuildProject(),
			"group/api": builders.NewProjectBuilder().
				WithName("Ápi").
				WithPathWithNamespace("group/api").
				WithAvatarURL("").
				BuildProject(),
		},
	}
	cache := commands.NewEntityCacheCommand(repository, storage, testKeys, clockwork.NewFakeClockAt(testEpoch))
	return commands.NewProjectAvatarsCommand(extractor, cache, commands.NewPreferencesCommand(storage, testKeys))
}

func TestProjectAvatarsResolve(t *testing.T) {
	t.Parallel()

	t.Run("should map each known project to its avatar or initial", func(t *testing.T) {
		t.Parallel()

		// given
		extractor := &doubles.StubProjectPathExtractor{Paths: []string{"group/web", "group/api", "group/gone"}}
		avatars := newProjectAvatars(extractor, doubles.NewStubStorageRepository())

		// when
		resolved, err := avatars.Resolve(context.Background(), strings.NewReader("<html></html>"),
			"https://gl.example.com/dashboard/todos")

		// then
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"group/web": "https://gl.example.com/uploads/web.png",
			"group/api": "Á",
		}, resolved)
	})

	t.Run("should skip the page when its toggle is off", func(t *testing.T) {
		t.Parallel()

		// given
		storage := doubles.NewStubStorageRepository()
		storage.Values["ns"] = []byte(`{"todo_render_project_logos":false}`)
		extractor := &doubles.StubProjectPathExtractor{Paths: []string{"group/web"}}
		avatars := newProjectAvatars(extractor, storage)

		// when
		resolved, err := avatars.Resolve(context.Background(), strings.NewReader(""),
			"https://gl.example.com/dashboard/todos")

		// then
		require.NoError(t, err)
		assert.Empty(t, resolved)
		assert.Empty(t, extractor.PageURLs)
	})

	t.Run("should only decorate merge request lists of groups and projects", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			pageURL string
			want    int
		}{
			{name: "dashboard merge requests", pageURL: "https://gl.example.com/dashboard/merge_requests", want: 0},
			{name: "group merge requests", pageURL: "https://gl.example.com/groups/group/-/merge_requests", want: 1},
			{name: "project merge requests", pageURL: "https://gl.example.com/group/web/-/merge_requests", want: 1},
			{name: "pipelines", pageURL: "https://gl.example.com/group/web/-/pipelines", want: 0},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				// given
				extractor := &doubles.StubProjectPathExtractor{Paths: []string{"group/web"}}
				avatars := newProjectAvatars(extractor, doubles.NewStubStorageRepository())

				// when
				resolved, err := avatars.Resolve(context.Background(), strings.NewReader(""), tt.pageURL)

				// then
				require.NoError(t, err)
				assert.Len(t, resolved, tt.want)
			})
		}
	})

	t.Run("should reject a page URL that is not absolute", func(t *testing.T) {
		t.Parallel()

		// given
		avatars := newProjectAvatars(&doubles.StubProjectPathExtractor{}, doubles.NewStubStorageRepository())

		// when
		_, err := avatars.Resolve(context.Background(), strings.NewReader(""), "dashboard/todos")

		// then
		require.Error(t, err)
	})
}
