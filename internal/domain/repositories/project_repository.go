package repositories

import (
	"context"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// ProjectRepository looks up projects and their labels on the remote instance.
type ProjectRepository interface {
	// GetProject returns the project at path, or nil without error when the
	// instance does not know it.
	GetProject(ctx context.Context, path string) (*entities.Project, error)

	// ListProjectLabels returns every label of the project, across all pages.
	ListProjectLabels(ctx context.Context, path string) ([]entities.Label, error)
}
