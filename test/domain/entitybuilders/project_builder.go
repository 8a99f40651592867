//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"strings"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// ProjectBuilder helps create test projects with a fluent interface.
type ProjectBuilder struct {
	*testkit.BaseBuilder
	id        int64
	name      string
	path      string
	namespace string
	avatarURL string
}

// NewProjectBuilder creates a new project builder with sensible defaults.
func NewProjectBuilder() *ProjectBuilder {
	return &ProjectBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		id:          1,
		name:        "web",
		path:        "web",
		namespace:   "group",
		avatarURL:   "https://gitlab.example.com/uploads/web.png",
	}
}

// WithID sets the project id.
func (b *ProjectBuilder) WithID(id int64) *ProjectBuilder {
	b.id = id
	return b
}

// WithName sets the display name.
func (b *ProjectBuilder) WithName(name string) *ProjectBuilder {
	b.name = name
	return b
}

// WithPathWithNamespace splits a full path into namespace and path.
func (b *ProjectBuilder) WithPathWithNamespace(fullPath string) *ProjectBuilder {
	if i := strings.LastIndex(fullPath, "/"); i >= 0 {
		b.namespace = fullPath[:i]
		b.path = fullPath[i+1:]
		return b
	}
	b.namespace = ""
	b.path = fullPath
	return b
}

// WithAvatarURL sets the avatar URL; empty means no avatar.
func (b *ProjectBuilder) WithAvatarURL(avatarURL string) *ProjectBuilder {
	b.avatarURL = avatarURL
	return b
}

// Build creates the project (satisfies testkit.Builder interface).
func (b *ProjectBuilder) Build() interface{} {
	return b.BuildProject()
}

// BuildProject creates the project with a concrete return type.
func (b *ProjectBuilder) BuildProject() *entities.Project {
	fullPath := b.path
	fullName := b.name
	if b.namespace != "" {
		fullPath = b.namespace + "/" + b.path
		fullName = strings.ReplaceAll(b.namespace, "/", " / ") + " / " + b.name
	}
	return &entities.Project{
		ID:                b.id,
		Name:              b.name,
		NameWithNamespace: fullName,
		Path:              b.path,
		PathWithNamespace: fullPath,
		DefaultBranch:     "main",
		AvatarURL:         b.avatarURL,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ProjectBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.id = 1
	b.name = "web"
	b.path = "web"
	b.namespace = "group"
	b.avatarURL = "https://gitlab.example.com/uploads/web.png"
	return b
}

// Clone creates a deep copy of the ProjectBuilder.
func (b *ProjectBuilder) Clone() testkit.Builder {
	return &ProjectBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:          b.id,
		name:        b.name,
		path:        b.path,
		namespace:   b.namespace,
		avatarURL:   b.avatarURL,
	}
}
