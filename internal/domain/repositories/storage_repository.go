package repositories

import (
	"context"
	"io"
)

// StorageRepository is a namespaced key-value store surviving the process.
// Values are opaque serialized documents.
type StorageRepository interface {
	io.Closer

	// Name returns the driver identifier (e.g. "sqlite", "redis").
	Name() string

	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
