package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// StorageRepository persists values in a single-table SQLite database.
type StorageRepository struct {
	db   *sql.DB
	lock *fileLock
	// guards the file lock, which is per process rather than per goroutine
	mu sync.Mutex
}

// Open creates the database file and its parent directory if needed.
func Open(path string) (*StorageRepository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not get absolute db path: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	dsn := "file:" + absPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}
	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &StorageRepository{db: db, lock: newFileLock(absPath)}, nil
}

// NewStorageRepository opens the database configured in the settings.
func NewStorageRepository(settings *entities.Settings) (*StorageRepository, error) {
	return Open(settings.Storage.Path)
}

func (r *StorageRepository) Name() string {
	return entities.StorageDriverSQLite
}

func (r *StorageRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

func (r *StorageRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.write(func() error {
		_, err := r.db.ExecContext(ctx, `
INSERT INTO kv(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`, key, value)
		if err != nil {
			return fmt.Errorf("failed to write %q: %w", key, err)
		}
		return nil
	})
}

func (r *StorageRepository) Delete(ctx context.Context, key string) error {
	return r.write(func() error {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
			return fmt.Errorf("failed to delete %q: %w", key, err)
		}
		return nil
	})
}

func (r *StorageRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *StorageRepository) write(fn func() error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err = r.lock.Lock(); err != nil {
		return err
	}
	defer func() {
		if unlockErr := r.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}()
	return fn()
}
