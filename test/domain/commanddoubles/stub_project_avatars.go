//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"io"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/commands"
)

// StubProjectAvatars is a stub implementation of commands.ProjectAvatars.
type StubProjectAvatars struct {
	Avatars    map[string]string
	ResolveErr error

	// spy: inputs received
	Documents []string
	PageURLs  []string
}

var _ commands.ProjectAvatars = (*StubProjectAvatars)(nil)

func (s *StubProjectAvatars) Resolve(
	_ context.Context,
	document io.Reader,
	pageURL string,
) (map[string]string, error) {
	data, _ := io.ReadAll(document)
	s.Documents = append(s.Documents, string(data))
	s.PageURLs = append(s.PageURLs, pageURL)
	return s.Avatars, s.ResolveErr
}
