package sqlite

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
	logger "github.com/sirupsen/logrus"
)

const lockFileSuffix = ".lock"

// fileLock serializes writers across processes sharing one database file.
type fileLock struct {
	lock *flock.Flock
	path string
}

func newFileLock(dbPath string) *fileLock {
	lockPath := dbPath + lockFileSuffix
	return &fileLock{lock: flock.New(lockPath), path: lockPath}
}

// Lock acquires the lock, waiting for another process if necessary.
func (l *fileLock) Lock() error {
	locked, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", l.path, err)
	}
	if !locked {
		logger.Debugf("Another process is writing to %s, waiting", l.path)
		if err = l.lock.Lock(); err != nil {
			return fmt.Errorf("failed to acquire lock on %s after waiting: %w", l.path, err)
		}
	}
	return nil
}

func (l *fileLock) Unlock() error {
	if err := l.lock.Unlock(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}
