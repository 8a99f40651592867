package gitlab

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// SessionRepository reads the signed-in user and the instance version through
// the official GitLab client.
type SessionRepository struct {
	client *gl.Client
}

// NewSessionRepository creates a session repository for the configured instance.
func NewSessionRepository(settings *entities.Settings) *SessionRepository {
	client, err := gl.NewClient(settings.GitLab.Token, gl.WithBaseURL(settings.GitLab.BaseURL))
	if err != nil {
		logger.Errorf("Failed to create GitLab client: %v", err)
		// Fail on use rather than at construction
		return &SessionRepository{}
	}
	return &SessionRepository{client: client}
}

func (r *SessionRepository) CurrentUser(ctx context.Context) (*entities.User, error) {
	if r.client == nil {
		return nil, errClientNotInitialized
	}

	user, _, err := r.client.Users.CurrentUser(gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return &entities.User{
		ID:       int64(user.ID),
		Name:     user.Name,
		Username: user.Username,
	}, nil
}

func (r *SessionRepository) Version(ctx context.Context) (*entities.RemoteVersion, error) {
	if r.client == nil {
		return nil, errClientNotInitialized
	}

	version, _, err := r.client.Version.GetVersion(gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get instance version: %w", err)
	}
	return &entities.RemoteVersion{
		Version:  version.Version,
		Revision: version.Revision,
	}, nil
}
