package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// StorageRepository shares persisted values between machines through Redis.
type StorageRepository struct {
	rdb *goredis.Client
}

// NewStorageRepository connects to the configured address, which may be a
// plain "host:port" or a redis:// URL.
func NewStorageRepository(ctx context.Context, settings *entities.Settings) (*StorageRepository, error) {
	opts := &goredis.Options{Addr: settings.Storage.Address}
	if strings.Contains(settings.Storage.Address, "://") {
		parsed, err := goredis.ParseURL(settings.Storage.Address)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		opts = parsed
	}

	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &StorageRepository{rdb: rdb}, nil
}

func (r *StorageRepository) Name() string {
	return entities.StorageDriverRedis
}

func (r *StorageRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

func (r *StorageRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (r *StorageRepository) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (r *StorageRepository) Close() error {
	return r.rdb.Close()
}
