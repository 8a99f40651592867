package entities

import "strings"

// PageType is the closed classification of a GitLab page derived from its URL.
type PageType string

const (
	PageDashboardIssues        PageType = "dashboard_issues"
	PageDashboardMergeRequests PageType = "dashboard_merge_requests"
	PageDashboardTodos         PageType = "dashboard_todos"

	PageProjectIssues             PageType = "project_issues"
	PageProjectIssueDetail        PageType = "project_issue_detail"
	PageProjectMergeRequests      PageType = "project_merge_requests"
	PageProjectMergeRequestDetail PageType = "project_merge_request_detail"
	PageProjectBoards             PageType = "project_boards"
	PageProjectPipelines          PageType = "project_pipelines"

	PageGroupIssues        PageType = "group_issues"
	PageGroupMergeRequests PageType = "group_merge_requests"
	PageGroupBoards        PageType = "group_boards"

	PageUnknown PageType = "unknown"
)

// AllPageTypes lists every member of the enumeration, unknown last.
func AllPageTypes() []PageType {
	return []PageType{
		PageDashboardIssues,
		PageDashboardMergeRequests,
		PageDashboardTodos,
		PageProjectIssues,
		PageProjectIssueDetail,
		PageProjectMergeRequests,
		PageProjectMergeRequestDetail,
		PageProjectBoards,
		PageProjectPipelines,
		PageGroupIssues,
		PageGroupMergeRequests,
		PageGroupBoards,
		PageUnknown,
	}
}

// pageRule is one entry of the ordered classification table.
type pageRule struct {
	pageType PageType
	match    func(path string, hasID bool) bool
}

func contains(fragments ...string) func(string, bool) bool {
	return func(path string, _ bool) bool {
		for _, f := range fragments {
			if !strings.Contains(path, f) {
				return false
			}
		}
		return true
	}
}

func containsWithID(fragment string) func(string, bool) bool {
	return func(path string, hasID bool) bool {
		return hasID && strings.Contains(path, fragment)
	}
}

// pageRules is evaluated top to bottom, first match wins. Group rules precede
// the project rules so that "/groups/x/-/issues" never reads as a project page.
var pageRules = []pageRule{ //nolint:gochecknoglobals // static classification table
	{PageDashboardIssues, contains("/dashboard/issues")},
	{PageDashboardMergeRequests, contains("/dashboard/merge_requests")},
	{PageDashboardTodos, contains("/dashboard/todos")},
	{PageGroupIssues, contains("/groups/", "/issues")},
	{PageGroupMergeRequests, contains("/groups/", "/merge_requests")},
	{PageGroupBoards, contains("/groups/", "/boards")},
	{PageProjectIssueDetail, containsWithID("/-/issues")},
	{PageProjectIssues, contains("/-/issues")},
	{PageProjectMergeRequestDetail, containsWithID("/-/merge_requests")},
	{PageProjectMergeRequests, contains("/-/merge_requests")},
	{PageProjectBoards, contains("/-/boards")},
	{PageProjectPipelines, contains("/-/pipelines")},
}

// ClassifyPage returns the page type for the given pathname. The numeric id
// flag only separates list pages from detail pages.
func ClassifyPage(pathname string, hasNumericID bool) PageType {
	for _, rule := range pageRules {
		if rule.match(pathname, hasNumericID) {
			return rule.pageType
		}
	}
	return PageUnknown
}

// CategoryFlags are boolean projections of a PageType.
type CategoryFlags struct {
	IsDashboard        bool `json:"is_dashboard"`
	IsProject          bool `json:"is_project"`
	IsGroup            bool `json:"is_group"`
	IsDetail           bool `json:"is_detail"`
	IsIssuePage        bool `json:"is_issue_page"`
	IsMergeRequestPage bool `json:"is_merge_request_page"`
	IsBoardPage        bool `json:"is_board_page"`
	IsTodoPage         bool `json:"is_todo_page"`
}

type pageSet map[PageType]struct{}

func setOf(types ...PageType) pageSet {
	s := make(pageSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

func (s pageSet) has(t PageType) bool {
	_, ok := s[t]
	return ok
}

//nolint:gochecknoglobals // static membership sets
var (
	dashboardPages = setOf(PageDashboardIssues, PageDashboardMergeRequests, PageDashboardTodos)
	projectPages   = setOf(
		PageProjectIssues, PageProjectIssueDetail,
		PageProjectMergeRequests, PageProjectMergeRequestDetail,
		PageProjectBoards, PageProjectPipelines,
	)
	groupPages        = setOf(PageGroupIssues, PageGroupMergeRequests, PageGroupBoards)
	detailPages       = setOf(PageProjectIssueDetail, PageProjectMergeRequestDetail)
	issuePages        = setOf(PageProjectIssues, PageProjectIssueDetail, PageDashboardIssues, PageGroupIssues)
	mergeRequestPages = setOf(
		PageProjectMergeRequests, PageProjectMergeRequestDetail,
		PageDashboardMergeRequests, PageGroupMergeRequests,
	)
	boardPages = setOf(PageProjectBoards, PageGroupBoards)
	todoPages  = setOf(PageDashboardTodos)
)

// Flags derives the category flags of a page type.
func (t PageType) Flags() CategoryFlags {
	return CategoryFlags{
		IsDashboard:        dashboardPages.has(t),
		IsProject:          projectPages.has(t),
		IsGroup:            groupPages.has(t),
		IsDetail:           detailPages.has(t),
		IsIssuePage:        issuePages.has(t),
		IsMergeRequestPage: mergeRequestPages.has(t),
		IsBoardPage:        boardPages.has(t),
		IsTodoPage:         todoPages.has(t),
	}
}

func (t PageType) String() string { return string(t) }
