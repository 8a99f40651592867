package repositories

import "io"

// ProjectPathExtractor finds the projects referenced by a rendered list page.
type ProjectPathExtractor interface {
	// Extract returns unique project paths in document order. The page URL
	// selects the extraction strategy; unsupported pages yield nothing.
	Extract(document io.Reader, pageURL string) ([]string, error)
}
