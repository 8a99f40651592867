package repositories

import (
	"context"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// SessionRepository resolves who is signed in and what the instance runs.
type SessionRepository interface {
	CurrentUser(ctx context.Context) (*entities.User, error)
	Version(ctx context.Context) (*entities.RemoteVersion, error)
}
