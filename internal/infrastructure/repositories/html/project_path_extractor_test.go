//go:build unit

package html_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitlab-enhancer/internal/infrastructure/repositories/html"
)

func TestProjectPathExtractorExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pageURL  string
		document string
		expected []string
	}{
		{
			name:    "should read unique project paths from to-do links without the origin",
			pageURL: "https://gitlab.example.com/dashboard/todos",
			document: `<ul class="todos-list">
				<li><a class="todo-target-link" href="https://gitlab.example.com/group/web/-/issues/1">a</a></li>
				<li><a class="todo-target-link" href="/group/web/-/merge_requests/2">b</a></li>
				<li><a class="todo-target-link" href="/group/api/-/issues/3">c</a></li>
			</ul>`,
			expected: []string{"group/web", "group/api"},
		},
		{
			name:    "should fall back to the newer to-do list markup",
			pageURL: "https://gitlab.example.com/dashboard/todos",
			document: `<ol data-testid="todo-item-list">
				<li><a class="gl-link" href="/group/sub/app/-/issues/9">a</a></li>
			</ol>`,
			expected: []string{"group/sub/app"},
		},
		{
			name:    "should read issue references",
			pageURL: "https://gitlab.example.com/dashboard/issues",
			document: `<ul class="issues-list">
				<li class="issue"><div class="issuable-info"><span class="issuable-reference"> group/web#12 </span></div></li>
				<li class="issue"><div class="issuable-info"><span class="issuable-reference">group/api#4</span></div></li>
			</ul>`,
			expected: []string{"group/web", "group/api"},
		},
		{
			name:    "should read board card item paths",
			pageURL: "https://gitlab.example.com/groups/group/-/boards/3",
			document: `<div class="boards-app"><ul class="board-list">
				<li class="board-card" data-item-path="group/web#1"></li>
				<li class="board-card" data-item-path="group/web#2"></li>
			</ul></div>`,
			expected: []string{"group/web"},
		},
		{
			name:    "should read merge request title links",
			pageURL: "https://gitlab.example.com/dashboard/merge_requests",
			document: `<ul class="issuable-list">
				<li><div class="merge-request-title"><a href="/group/web/-/merge_requests/5">x</a></div></li>
				<li><div class="issue-title"><a href="/group/api/-/merge_requests/6">y</a></div></li>
			</ul>`,
			expected: []string{"group/web", "group/api"},
		},
		{
			name:     "should return nothing for unsupported pages",
			pageURL:  "https://gitlab.example.com/group/web",
			document: `<ul class="issues-list"></ul>`,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			extractor := html.NewProjectPathExtractor()

			// when
			paths, err := extractor.Extract(strings.NewReader(tt.document), tt.pageURL)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, paths)
		})
	}
}
