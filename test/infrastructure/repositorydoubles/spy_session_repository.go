//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync/atomic"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
)

// SpySessionRepository implements repositories.SessionRepository as a configurable spy.
type SpySessionRepository struct {
	// --- CurrentUser ---
	User    *entities.User
	UserErr error

	// --- Version ---
	RemoteVersion *entities.RemoteVersion
	VersionErr    error

	// spy: call counters
	UserCalls    atomic.Int32
	VersionCalls atomic.Int32
}

var _ repositories.SessionRepository = (*SpySessionRepository)(nil)

func (s *SpySessionRepository) CurrentUser(_ context.Context) (*entities.User, error) {
	s.UserCalls.Add(1)
	return s.User, s.UserErr
}

func (s *SpySessionRepository) Version(_ context.Context) (*entities.RemoteVersion, error) {
	s.VersionCalls.Add(1)
	return s.RemoteVersion, s.VersionErr
}
