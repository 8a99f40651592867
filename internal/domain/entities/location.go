package entities

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Location is the current navigable URL decomposed the way a browser exposes it.
type Location struct {
	Pathname string `json:"pathname"`
	Search   string `json:"search"`
	Href     string `json:"href"`
}

// LocationChange reports which fields differ between two locations.
type LocationChange struct {
	Pathname bool
	Search   bool
	Href     bool
}

// Any reports whether at least one field changed.
func (c LocationChange) Any() bool {
	return c.Pathname || c.Search || c.Href
}

// ParseLocation decomposes an absolute URL. Search keeps its leading "?" and is
// empty when the URL has no query string.
func ParseLocation(rawURL string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Location{}, fmt.Errorf("invalid location %q: %w", rawURL, err)
	}
	if !u.IsAbs() {
		return Location{}, fmt.Errorf("location %q is not absolute", rawURL)
	}

	search := ""
	if u.RawQuery != "" {
		search = "?" + u.RawQuery
	}
	pathname := u.EscapedPath()
	if pathname == "" {
		pathname = "/"
	}

	return Location{
		Pathname: pathname,
		Search:   search,
		Href:     u.String(),
	}, nil
}

// Diff compares two locations field by field.
func (l Location) Diff(other Location) LocationChange {
	return LocationChange{
		Pathname: l.Pathname != other.Pathname,
		Search:   l.Search != other.Search,
		Href:     l.Href != other.Href,
	}
}

// Query parses the search part, ignoring malformed pairs.
func (l Location) Query() url.Values {
	values, _ := url.ParseQuery(strings.TrimPrefix(l.Search, "?"))
	return values
}

// NumericID reports whether the trailing segment of a pathname is a decimal
// number. The returned value is zero when the number does not fit an int.
func NumericID(pathname string) (int, bool) {
	trimmed := strings.TrimRight(pathname, "/")
	idx := strings.LastIndex(trimmed, "/")
	segment := trimmed[idx+1:]
	if segment == "" {
		return 0, false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(segment)
	if err != nil {
		return 0, true
	}
	return id, true
}

// ProjectPath returns the project path of a pathname: everything before the
// first "/-/" without the leading slash.
func ProjectPath(pathname string) string {
	before, _, _ := strings.Cut(pathname, "/-/")
	return strings.TrimPrefix(before, "/")
}

// PageState is everything derived from a pathname.
type PageState struct {
	Pathname    string        `json:"pathname"`
	PageType    PageType      `json:"page_type"`
	Flags       CategoryFlags `json:"flags"`
	ProjectPath string        `json:"project_path,omitempty"`
	IID         int           `json:"iid,omitempty"`
	HasIID      bool          `json:"-"`
}

// DetectPage classifies a pathname and derives its flags and identifiers.
func DetectPage(pathname string) PageState {
	iid, hasIID := NumericID(pathname)
	pageType := ClassifyPage(pathname, hasIID)

	return PageState{
		Pathname:    pathname,
		PageType:    pageType,
		Flags:       pageType.Flags(),
		ProjectPath: ProjectPath(pathname),
		IID:         iid,
		HasIID:      hasIID,
	}
}
