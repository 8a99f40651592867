//go:build unit

package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitlab-enhancer/internal/infrastructure/repositories/memory"
)

func TestStorageRepository(t *testing.T) {
	t.Parallel()

	t.Run("should return a stored copy of the value", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		storage := memory.NewStorageRepository()
		value := []byte(`{"a":1}`)
		require.NoError(t, storage.Set(ctx, "ns", value))
		value[0] = 'x'

		// when
		stored, found, err := storage.Get(ctx, "ns")

		// then
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `{"a":1}`, string(stored))
	})

	t.Run("should report a missing key after delete", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		storage := memory.NewStorageRepository()
		require.NoError(t, storage.Set(ctx, "ns", []byte("1")))

		// when
		require.NoError(t, storage.Delete(ctx, "ns"))
		_, found, err := storage.Get(ctx, "ns")

		// then
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, "memory", storage.Name())
	})
}
