package gitlab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
	"github.com/rios0rios0/gitlab-enhancer/internal/infrastructure/metrics"
)

const (
	lookupProject = "project"
	lookupLabels  = "labels"

	outcomeFound   = "found"
	outcomeMissing = "missing"
	outcomeError   = "error"
)

// ProjectRepository resolves projects and labels through the paginated fetcher.
type ProjectRepository struct {
	fetcher repositories.FetchRepository
	lookups *metrics.LookupMetrics
}

// NewProjectRepository creates a project repository on top of a fetcher.
func NewProjectRepository(
	fetcher repositories.FetchRepository,
	lookups *metrics.LookupMetrics,
) *ProjectRepository {
	return &ProjectRepository{fetcher: fetcher, lookups: lookups}
}

func (r *ProjectRepository) GetProject(ctx context.Context, path string) (*entities.Project, error) {
	session := r.fetcher.Fetch(ctx, projectEndpoint(path), entities.FetchOptions{SinglePage: true})
	if err := session.Err(); err != nil {
		var httpErr *entities.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			r.observe(lookupProject, outcomeMissing)
			return nil, nil
		}
		r.observe(lookupProject, outcomeError)
		return nil, fmt.Errorf("failed to fetch project %q: %w", path, err)
	}

	data := session.State().Data
	if len(data) == 0 || string(data) == "null" {
		r.observe(lookupProject, outcomeMissing)
		return nil, nil
	}

	var project entities.Project
	if err := json.Unmarshal(data, &project); err != nil {
		r.observe(lookupProject, outcomeError)
		return nil, fmt.Errorf("failed to decode project %q: %w", path, err)
	}
	r.observe(lookupProject, outcomeFound)
	return &project, nil
}

func (r *ProjectRepository) ListProjectLabels(ctx context.Context, path string) ([]entities.Label, error) {
	session := r.fetcher.Fetch(ctx, projectEndpoint(path)+"/labels", entities.FetchOptions{})
	if err := session.Err(); err != nil {
		r.observe(lookupLabels, outcomeError)
		return nil, fmt.Errorf("failed to fetch labels of %q: %w", path, err)
	}

	labels, err := decodeItems[entities.Label](session.State())
	if err != nil {
		r.observe(lookupLabels, outcomeError)
		return nil, fmt.Errorf("failed to decode labels of %q: %w", path, err)
	}
	r.observe(lookupLabels, outcomeFound)
	return labels, nil
}

func (r *ProjectRepository) observe(kind, outcome string) {
	if r.lookups == nil {
		return
	}
	r.lookups.Lookups.WithLabelValues(kind, outcome).Inc()
}

func projectEndpoint(path string) string {
	return "/api/v4/projects/" + url.PathEscape(path)
}

// decodeItems unmarshals every accumulated item of a list session.
func decodeItems[T any](state entities.PaginationState) ([]T, error) {
	decoded := make([]T, 0, len(state.Items))
	for _, item := range state.Items {
		var value T
		if err := json.Unmarshal(item, &value); err != nil {
			return nil, err
		}
		decoded = append(decoded, value)
	}
	return decoded, nil
}
