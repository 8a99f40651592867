package html

import (
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	todoLinkSelector         = "ul.todos-list a.todo-target-link"
	todoLinkFallback         = `ol[data-testid="todo-item-list"] li > a.gl-link`
	issueReferenceSelector   = "ul.issues-list li.issue .issuable-info .issuable-reference"
	boardCardSelector        = "div.boards-app ul.board-list li.board-card"
	mergeRequestLinkSelector = ".issuable-list .merge-request-title a, .issuable-list .issue-title a"

	pathSeparator = "/-/"
)

// ProjectPathExtractor reads project paths out of rendered GitLab list pages.
type ProjectPathExtractor struct{}

// NewProjectPathExtractor creates an extractor.
func NewProjectPathExtractor() *ProjectPathExtractor {
	return &ProjectPathExtractor{}
}

// Extract picks a strategy from the page URL: to-do lists, issue lists, issue
// boards and merge request lists are supported, checked in that order.
func (e *ProjectPathExtractor) Extract(document io.Reader, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(document)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	switch {
	case strings.Contains(pageURL, "todos"):
		return extractTodos(doc, pageURL), nil
	case strings.Contains(pageURL, "issues"):
		return extractIssues(doc), nil
	case strings.Contains(pageURL, "boards"):
		return extractBoards(doc), nil
	case strings.Contains(pageURL, "merge_requests"):
		return extractMergeRequests(doc), nil
	default:
		return []string{}, nil
	}
}

func extractTodos(doc *goquery.Document, pageURL string) []string {
	origin := ""
	if parsed, err := url.Parse(pageURL); err == nil && parsed.Host != "" {
		origin = parsed.Scheme + "://" + parsed.Host
	}

	links := doc.Find(todoLinkSelector)
	if links.Length() == 0 {
		links = doc.Find(todoLinkFallback)
	}

	paths := []string{}
	links.Each(func(_ int, link *goquery.Selection) {
		href := strings.Replace(link.AttrOr("href", ""), origin, "", 1)
		if href == "" {
			return
		}
		projectPath, _, _ := strings.Cut(href[1:], pathSeparator)
		paths = appendUnique(paths, projectPath)
	})
	return paths
}

func extractIssues(doc *goquery.Document) []string {
	paths := []string{}
	doc.Find(issueReferenceSelector).Each(func(_ int, reference *goquery.Selection) {
		projectPath, _, _ := strings.Cut(reference.Text(), "#")
		paths = appendUnique(paths, strings.TrimSpace(projectPath))
	})
	return paths
}

func extractBoards(doc *goquery.Document) []string {
	paths := []string{}
	doc.Find(boardCardSelector).Each(func(_ int, card *goquery.Selection) {
		projectPath, _, _ := strings.Cut(card.AttrOr("data-item-path", ""), "#")
		paths = appendUnique(paths, projectPath)
	})
	return paths
}

func extractMergeRequests(doc *goquery.Document) []string {
	paths := []string{}
	doc.Find(mergeRequestLinkSelector).Each(func(_ int, link *goquery.Selection) {
		projectPath, _, _ := strings.Cut(link.AttrOr("href", ""), pathSeparator)
		if projectPath == "" {
			return
		}
		paths = appendUnique(paths, projectPath[1:])
	})
	return paths
}

func appendUnique(paths []string, projectPath string) []string {
	if projectPath == "" || slices.Contains(paths, projectPath) {
		return paths
	}
	return append(paths, projectPath)
}
