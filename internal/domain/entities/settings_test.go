//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gitlab-enhancer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewSettings(t *testing.T) {
	t.Run("should apply defaults to a minimal file", func(t *testing.T) {
		// given
		path := writeConfig(t, "gitlab:\n  base_url: https://gl.example.com/\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://gl.example.com", settings.GitLab.BaseURL)
		assert.Equal(t, entities.DefaultPerPage, settings.HTTP.PerPage)
		assert.Equal(t, entities.StorageDriverSQLite, settings.Storage.Driver)
		assert.Equal(t, entities.DefaultNamespace, settings.Storage.Namespace)
		assert.True(t, filepath.IsAbs(settings.Storage.Path))
		assert.Equal(t, "info", settings.LogLevel)
	})

	t.Run("should expand the token from the environment", func(t *testing.T) {
		// given
		t.Setenv("GLE_TEST_TOKEN", "glpat-123")
		path := writeConfig(t, "gitlab:\n  token: ${GLE_TEST_TOKEN}\nstorage:\n  driver: memory\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "glpat-123", settings.GitLab.Token)
		assert.Equal(t, entities.DefaultBaseURL, settings.GitLab.BaseURL)
	})

	t.Run("should read the token from a file", func(t *testing.T) {
		// given
		tokenFile := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("glpat-file\n"), 0o600))
		path := writeConfig(t, "gitlab:\n  token: "+tokenFile+"\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "glpat-file", settings.GitLab.Token)
	})

	t.Run("should reject invalid values", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
		}{
			{name: "relative base url", content: "gitlab:\n  base_url: gl.example.com\n"},
			{name: "unknown driver", content: "storage:\n  driver: etcd\n"},
			{name: "page size too large", content: "http:\n  per_page: 500\n"},
			{name: "negative retries", content: "http:\n  max_retries: -1\n"},
			{name: "malformed yaml", content: "gitlab: [\n"},
		}

		for _, tt := range tests {
			t.Run("should reject "+tt.name, func(t *testing.T) {
				// given
				path := writeConfig(t, tt.content)

				// when
				settings, err := entities.NewSettings(path)

				// then
				require.Error(t, err)
				assert.Nil(t, settings)
			})
		}
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "missing.yaml")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
	})
}

func TestDefaultSettings(t *testing.T) {
	t.Run("should take the instance and token from the environment", func(t *testing.T) {
		// given
		t.Setenv("GITLAB_URL", "https://gl.example.com/")
		t.Setenv("GITLAB_TOKEN", "glpat-env")

		// when
		settings := entities.DefaultSettings()

		// then
		assert.Equal(t, "https://gl.example.com", settings.GitLab.BaseURL)
		assert.Equal(t, "glpat-env", settings.GitLab.Token)
		assert.Equal(t, 30, settings.HTTP.TimeoutSeconds)
	})
}
