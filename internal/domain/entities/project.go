package entities

import "strings"

const (
	// ScopedLabelSeparator splits a scoped label name into scope and value.
	ScopedLabelSeparator = "::"

	labelKeySeparator  = "::"
	scopedKeySeparator = "__"
)

// Project is a GitLab project as returned by /api/v4/projects/:id.
type Project struct {
	ID                int64  `json:"id"`
	Description       string `json:"description"`
	DefaultBranch     string `json:"default_branch"`
	Name              string `json:"name"`
	NameWithNamespace string `json:"name_with_namespace"`
	Path              string `json:"path"`
	PathWithNamespace string `json:"path_with_namespace"`
	AvatarURL         string `json:"avatar_url"`
}

// Label is a project label as returned by /api/v4/projects/:id/labels.
type Label struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	TextColor      string `json:"text_color"`
	Color          string `json:"color"`
	Priority       *int   `json:"priority"`
	IsProjectLabel bool   `json:"is_project_label"`
}

// Scope returns the part of a scoped label before the first separator.
func (l Label) Scope() (string, bool) {
	scope, _, found := strings.Cut(l.Name, ScopedLabelSeparator)
	return scope, found
}

// LabelKey identifies one label of one project.
func LabelKey(projectPath, name string) string {
	return projectPath + labelKeySeparator + name
}

// ScopedLabelsKey identifies the scoped labels of one prefix in one project.
func ScopedLabelsKey(projectPath, prefix string) string {
	return projectPath + scopedKeySeparator + prefix
}

// LabelIndexes are derived views over a label cache. They are rebuilt from
// scratch, never patched.
type LabelIndexes struct {
	ByKey    map[string]Label
	ByPrefix map[string][]Label
}

// BuildLabelIndexes computes both derived indexes from the raw cache.
func BuildLabelIndexes(labelsByProject map[string][]Label) LabelIndexes {
	indexes := LabelIndexes{
		ByKey:    make(map[string]Label),
		ByPrefix: make(map[string][]Label),
	}

	for projectPath, labels := range labelsByProject {
		for _, label := range labels {
			indexes.ByKey[LabelKey(projectPath, label.Name)] = label

			scope, scoped := label.Scope()
			if !scoped {
				continue
			}
			key := ScopedLabelsKey(projectPath, scope)
			indexes.ByPrefix[key] = append(indexes.ByPrefix[key], label)
		}
	}

	return indexes
}
