package entities

import (
	"net/url"
	"slices"
	"strings"
)

const (
	dashboardIssuesPath        = "/dashboard/issues"
	dashboardMergeRequestsPath = "/dashboard/merge_requests"
)

//nolint:gochecknoglobals // static path lists
var (
	filterablePaths = []string{
		dashboardIssuesPath,
		dashboardMergeRequestsPath,
		"/-/issues",
		"/-/boards",
		"/-/merge_requests",
		"/-/pipelines",
	}

	paginationParams = []string{"first_page_size", "page_after", "page"}

	// dashboardQualifiers distinguish the dashboard lists that share a pathname.
	dashboardQualifiers = []string{"assignee_username", "assignee_username[]", "reviewer_username"}
)

// IsFilterablePath reports whether filters are remembered for the pathname.
func IsFilterablePath(pathname string) bool {
	for _, p := range filterablePaths {
		if strings.Contains(pathname, p) {
			return true
		}
	}
	return false
}

// IsDashboardIssues reports whether the location is the issues dashboard.
func (l Location) IsDashboardIssues() bool {
	return l.Pathname == dashboardIssuesPath
}

// IsDashboardMergeRequests reports whether the location is the MR dashboard.
func (l Location) IsDashboardMergeRequests() bool {
	return l.Pathname == dashboardMergeRequestsPath
}

// FilterKey returns the key under which the filters of a location are stored,
// or an empty string when the location has no filterable list.
func FilterKey(loc Location) string {
	pathname := strings.TrimSuffix(loc.Pathname, "/")
	if pathname == "" || !IsFilterablePath(pathname) {
		return ""
	}
	if !loc.IsDashboardIssues() && !loc.IsDashboardMergeRequests() {
		return pathname
	}

	query := loc.Query()
	for _, qualifier := range dashboardQualifiers {
		if query.Has(qualifier) {
			return pathname + "?" + qualifier + "=" + query.Get(qualifier)
		}
	}
	return pathname
}

// FilterIgnoredParams lists the query keys that never take part in a saved
// filter. Restoring ignores more keys on the issues dashboard than saving does.
func FilterIgnoredParams(loc Location, restoring bool) []string {
	keys := slices.Clone(paginationParams)
	switch {
	case loc.IsDashboardIssues():
		keys = append(keys, "assignee_username", "assignee_username[]")
		if restoring {
			keys = append(keys, "sort", "state")
		}
	case loc.IsDashboardMergeRequests():
		keys = append(keys, "assignee_username", "reviewer_username")
	}
	return keys
}

// SortedQuery re-encodes a query string with keys sorted and the given keys
// removed. Only the first value of each key is kept.
func SortedQuery(search string, removeKeys []string) string {
	params, _ := url.ParseQuery(strings.TrimPrefix(search, "?"))

	keys := make([]string, 0, len(params))
	for key := range params {
		if slices.Contains(removeKeys, key) {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	sorted := make(url.Values, len(keys))
	for _, key := range keys {
		sorted.Set(key, params.Get(key))
	}
	return sorted.Encode()
}

// FilterValue is the stored suffix for a location: the sorted query prefixed
// with "&" on dashboards (their key already carries a "?") and "?" elsewhere.
func FilterValue(loc Location) string {
	sorted := SortedQuery(loc.Search, FilterIgnoredParams(loc, false))
	if sorted == "" {
		return ""
	}
	if loc.IsDashboardIssues() || loc.IsDashboardMergeRequests() {
		return "&" + sorted
	}
	return "?" + sorted
}

// FilterLink points a navigation entry at its saved filters.
type FilterLink struct {
	// Match is the pathname a navigation link must contain to be rewritten.
	Match string `json:"match"`
	Href  string `json:"href"`
}
