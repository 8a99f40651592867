//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/commands"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// StubSessionContext is a stub implementation of commands.SessionContext.
type StubSessionContext struct {
	CurrentUser   *entities.User
	RemoteVersion *entities.RemoteVersion
	LoadCallCount int
}

var _ commands.SessionContext = (*StubSessionContext)(nil)

func (s *StubSessionContext) Load(_ context.Context) {
	s.LoadCallCount++
}

func (s *StubSessionContext) IsReady() bool {
	return s.CurrentUser != nil && s.RemoteVersion != nil
}

func (s *StubSessionContext) User() *entities.User { return s.CurrentUser }

func (s *StubSessionContext) Version() *entities.RemoteVersion { return s.RemoteVersion }
