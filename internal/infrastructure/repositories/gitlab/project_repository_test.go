//go:build unit

package gitlab_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitlab-enhancer/internal/infrastructure/metrics"
	"github.com/rios0rios0/gitlab-enhancer/internal/infrastructure/repositories/gitlab"
)

func TestProjectRepositoryGetProject(t *testing.T) {
	t.Parallel()

	t.Run("should decode the project addressed by its encoded path", func(t *testing.T) {
		t.Parallel()

		// given
		paths := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths <- r.URL.EscapedPath()
			_, _ = w.Write([]byte(`{"id":42,"name":"web","path_with_namespace":"group/web","avatar_url":"https://x/a.png"}`))
		}))
		defer server.Close()
		fetcher, _ := newTestFetcher(t, server.URL)
		lookups := metrics.NewLookupMetrics(prometheus.NewRegistry())
		repository := gitlab.NewProjectRepository(fetcher, lookups)

		// when
		project, err := repository.GetProject(context.Background(), "group/web")
		requestedPath := <-paths

		// then
		require.NoError(t, err)
		require.NotNil(t, project)
		assert.Equal(t, "/api/v4/projects/group%2Fweb", requestedPath)
		assert.Equal(t, int64(42), project.ID)
		assert.Equal(t, "group/web", project.PathWithNamespace)
		assert.Equal(t, "https://x/a.png", project.AvatarURL)
		assert.InDelta(t, 1, testutil.ToFloat64(lookups.Lookups.WithLabelValues("project", "found")), 0)
	})

	t.Run("should return nil without error when the project does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()
		fetcher, _ := newTestFetcher(t, server.URL)
		repository := gitlab.NewProjectRepository(fetcher, nil)

		// when
		project, err := repository.GetProject(context.Background(), "group/missing")

		// then
		require.NoError(t, err)
		assert.Nil(t, project)
	})

	t.Run("should return an error on other failures", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()
		fetcher, _ := newTestFetcher(t, server.URL)
		repository := gitlab.NewProjectRepository(fetcher, nil)

		// when
		project, err := repository.GetProject(context.Background(), "group/web")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Nil(t, project)
	})
}

func TestProjectRepositoryListProjectLabels(t *testing.T) {
	t.Parallel()

	t.Run("should collect labels across every page", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("x-total-pages", "2")
			if r.URL.Query().Get("page") == "1" {
				_, _ = w.Write([]byte(`[{"id":1,"name":"priority::high","color":"#f00"}]`))
				return
			}
			_, _ = w.Write([]byte(`[{"id":2,"name":"bug","color":"#0f0"}]`))
		}))
		defer server.Close()
		fetcher, _ := newTestFetcher(t, server.URL)
		repository := gitlab.NewProjectRepository(fetcher, nil)

		// when
		labels, err := repository.ListProjectLabels(context.Background(), "group/web")

		// then
		require.NoError(t, err)
		require.Len(t, labels, 2)
		names := []string{labels[0].Name, labels[1].Name}
		assert.ElementsMatch(t, []string{"priority::high", "bug"}, names)
	})

	t.Run("should return an empty list for a project without labels", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()
		fetcher, _ := newTestFetcher(t, server.URL)
		repository := gitlab.NewProjectRepository(fetcher, nil)

		// when
		labels, err := repository.ListProjectLabels(context.Background(), "group/web")

		// then
		require.NoError(t, err)
		assert.NotNil(t, labels)
		assert.Empty(t, labels)
	})

	t.Run("should fail when any page fails", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("x-total-pages", "2")
			if r.URL.Query().Get("page") == "2" {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`[{"id":1,"name":"bug"}]`))
		}))
		defer server.Close()
		fetcher, _ := newTestFetcher(t, server.URL)
		repository := gitlab.NewProjectRepository(fetcher, nil)

		// when
		labels, err := repository.ListProjectLabels(context.Background(), "group/web")

		// then
		require.Error(t, err)
		assert.Nil(t, labels)
	})
}
