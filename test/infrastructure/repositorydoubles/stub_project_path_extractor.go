//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"io"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
)

// StubProjectPathExtractor implements repositories.ProjectPathExtractor.
type StubProjectPathExtractor struct {
	Paths []string
	Err   error

	// spy: page URLs received
	PageURLs []string
}

var _ repositories.ProjectPathExtractor = (*StubProjectPathExtractor)(nil)

func (s *StubProjectPathExtractor) Extract(_ io.Reader, pageURL string) ([]string, error) {
	s.PageURLs = append(s.PageURLs, pageURL)
	return s.Paths, s.Err
}
