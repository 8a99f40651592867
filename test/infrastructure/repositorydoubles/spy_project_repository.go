//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
)

// SpyProjectRepository implements repositories.ProjectRepository as a configurable spy.
// It is safe for concurrent use.
type SpyProjectRepository struct {
	// --- GetProject ---
	Projects   map[string]*entities.Project // path -> project; missing means unknown
	ProjectErr error

	// --- ListProjectLabels ---
	Labels    map[string][]entities.Label // path -> labels
	LabelsErr error

	mu sync.Mutex
	// spy: paths requested
	ProjectCalls []string
	LabelCalls   []string
}

var _ repositories.ProjectRepository = (*SpyProjectRepository)(nil)

func (s *SpyProjectRepository) GetProject(_ context.Context, path string) (*entities.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ProjectCalls = append(s.ProjectCalls, path)
	if s.ProjectErr != nil {
		return nil, s.ProjectErr
	}
	project, ok := s.Projects[path]
	if !ok {
		return nil, nil //nolint:nilnil // unknown project
	}
	return project, nil
}

func (s *SpyProjectRepository) ListProjectLabels(_ context.Context, path string) ([]entities.Label, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LabelCalls = append(s.LabelCalls, path)
	if s.LabelsErr != nil {
		return nil, s.LabelsErr
	}
	return s.Labels[path], nil
}

// ProjectCallCount returns how many times GetProject was called.
func (s *SpyProjectRepository) ProjectCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ProjectCalls)
}

// LabelCallCount returns how many times ListProjectLabels was called.
func (s *SpyProjectRepository) LabelCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.LabelCalls)
}
