//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// LabelBuilder helps create test labels with a fluent interface.
type LabelBuilder struct {
	*testkit.BaseBuilder
	id       int64
	name     string
	color    string
	priority *int
}

// NewLabelBuilder creates a new label builder with sensible defaults.
func NewLabelBuilder() *LabelBuilder {
	return &LabelBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		id:          1,
		name:        "bug",
		color:       "#dc143c",
	}
}

// WithID sets the label id.
func (b *LabelBuilder) WithID(id int64) *LabelBuilder {
	b.id = id
	return b
}

// WithName sets the label name, e.g. "priority::high" for a scoped label.
func (b *LabelBuilder) WithName(name string) *LabelBuilder {
	b.name = name
	return b
}

// WithColor sets the background color.
func (b *LabelBuilder) WithColor(color string) *LabelBuilder {
	b.color = color
	return b
}

// WithPriority sets the label priority.
func (b *LabelBuilder) WithPriority(priority int) *LabelBuilder {
	b.priority = &priority
	return b
}

// Build creates the label (satisfies testkit.Builder interface).
func (b *LabelBuilder) Build() interface{} {
	return b.BuildLabel()
}

// BuildLabel creates the label with a concrete return type.
func (b *LabelBuilder) BuildLabel() entities.Label {
	return entities.Label{
		ID:             b.id,
		Name:           b.name,
		TextColor:      "#FFFFFF",
		Color:          b.color,
		Priority:       b.priority,
		IsProjectLabel: true,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *LabelBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.id = 1
	b.name = "bug"
	b.color = "#dc143c"
	b.priority = nil
	return b
}

// Clone creates a deep copy of the LabelBuilder.
func (b *LabelBuilder) Clone() testkit.Builder {
	clone := &LabelBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:          b.id,
		name:        b.name,
		color:       b.color,
	}
	if b.priority != nil {
		priority := *b.priority
		clone.priority = &priority
	}
	return clone
}
