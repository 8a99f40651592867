//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/commands"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// StubEntityCache is a stub implementation of commands.EntityCache.
type StubEntityCache struct {
	Projects     map[string]*entities.Project
	Labels       map[string][]entities.Label
	ScopedLabels []entities.Label
	Label        *entities.Label

	// spy: calls received
	LastPrefix          string
	LastName            string
	ClearCacheCallCount int
	ClearedLabelPaths   []string
}

var _ commands.EntityCache = (*StubEntityCache)(nil)

func (s *StubEntityCache) GetProject(_ context.Context, path string) *entities.Project {
	return s.Projects[path]
}

func (s *StubEntityCache) GetProjectLabels(_ context.Context, path string) []entities.Label {
	return s.Labels[path]
}

func (s *StubEntityCache) GetProjectScopedLabels(_ context.Context, _, prefix string) []entities.Label {
	s.LastPrefix = prefix
	return s.ScopedLabels
}

func (s *StubEntityCache) GetProjectLabel(_ context.Context, _, name string) *entities.Label {
	s.LastName = name
	return s.Label
}

func (s *StubEntityCache) ClearCache(_ context.Context) {
	s.ClearCacheCallCount++
}

func (s *StubEntityCache) ClearProjectLabelsCache(_ context.Context, path string) {
	s.ClearedLabelPaths = append(s.ClearedLabelPaths, path)
}
