package entities

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultPerPage is the page size used when FetchOptions.PerPage is zero.
	DefaultPerPage = 100

	// HeaderTotal and HeaderTotalPages carry the pagination totals.
	HeaderTotal      = "x-total"
	HeaderTotalPages = "x-total-pages"

	// MarkerParam is appended to every request so the API traffic of this tool
	// can be told apart from the host page's own requests.
	MarkerParam = "is_custom"
)

// FetchOptions configures one paginated fetch session. The zero value fetches
// every page with DefaultPerPage items per page against the configured origin.
type FetchOptions struct {
	PerPage int
	// SinglePage stops after page 1; further pages are fetched on demand.
	SinglePage  bool
	BaseURL     string
	QueryParams map[string]string
	Headers     map[string]string
}

// EffectivePerPage returns PerPage or the default when unset.
func (o FetchOptions) EffectivePerPage() int {
	if o.PerPage <= 0 {
		return DefaultPerPage
	}
	return o.PerPage
}

// FetchAllPages reports whether pages 2..N are requested eagerly.
func (o FetchOptions) FetchAllPages() bool {
	return !o.SinglePage
}

// PaginationState is an observable snapshot of a fetch session.
//
// Items holds the accumulated elements of list resources. Pages 2..N are
// fetched concurrently, so Items has no positional guarantee beyond page 1
// coming first. Data is the merged document: the object for single
// resources, the JSON array of Items for list resources, nil before the first
// page or after a reset.
type PaginationState struct {
	CurrentPage int               `json:"current_page"`
	TotalPages  int               `json:"total_pages"`
	Total       int               `json:"total"`
	IsLoading   bool              `json:"is_loading"`
	Error       string            `json:"error,omitempty"`
	Data        json.RawMessage   `json:"data"`
	Items       []json.RawMessage `json:"-"`
}

// HasNextPage reports whether another page can be requested.
func (s PaginationState) HasNextPage() bool {
	return s.CurrentPage < s.TotalPages
}

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	StatusCode int
	StatusText string
}

// NewHTTPError builds an HTTPError from a status line such as "404 Not Found".
// The reason phrase sent by the server is kept; the canonical text is used
// only when the server sent none.
func NewHTTPError(statusCode int, status string) *HTTPError {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(statusCode)))
	if text == "" {
		text = http.StatusText(statusCode)
	}
	return &HTTPError{StatusCode: statusCode, StatusText: text}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d - %s", e.StatusCode, e.StatusText)
}
