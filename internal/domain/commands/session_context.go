package commands

import (
	"context"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
)

// SessionContext knows who is signed in and what the instance runs.
type SessionContext interface {
	// Load resolves the user and the version once. Later calls return
	// immediately, whatever the outcome of the first.
	Load(ctx context.Context)

	// IsReady reports whether both the user and the version are known.
	IsReady() bool

	User() *entities.User
	Version() *entities.RemoteVersion
}

// SessionContextCommand loads the session once per process. A failure leaves
// it not ready for good; dependents defer their work instead of erroring.
type SessionContextCommand struct {
	repository repositories.SessionRepository
	once       sync.Once

	mu      sync.RWMutex
	user    *entities.User
	version *entities.RemoteVersion
}

// NewSessionContextCommand creates an unloaded session context.
func NewSessionContextCommand(repository repositories.SessionRepository) *SessionContextCommand {
	return &SessionContextCommand{repository: repository}
}

func (it *SessionContextCommand) Load(ctx context.Context) {
	it.once.Do(func() {
		var wg sync.WaitGroup
		wg.Go(func() { it.loadCurrentUser(ctx) })
		wg.Go(func() { it.loadVersion(ctx) })
		wg.Wait()
	})
}

func (it *SessionContextCommand) IsReady() bool {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.user != nil && it.version != nil
}

func (it *SessionContextCommand) User() *entities.User {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.user
}

func (it *SessionContextCommand) Version() *entities.RemoteVersion {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.version
}

func (it *SessionContextCommand) loadCurrentUser(ctx context.Context) {
	user, err := it.repository.CurrentUser(ctx)
	if err != nil {
		logger.Warnf("Failed to load current user: %v", err)
		return
	}

	it.mu.Lock()
	it.user = user
	it.mu.Unlock()
}

func (it *SessionContextCommand) loadVersion(ctx context.Context) {
	version, err := it.repository.Version(ctx)
	if err != nil {
		logger.Warnf("Failed to load GitLab version: %v", err)
		return
	}

	it.mu.Lock()
	it.version = version
	it.mu.Unlock()
}
