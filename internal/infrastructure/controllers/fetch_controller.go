package controllers

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
)

// FetchController handles the "fetch" subcommand.
type FetchController struct {
	repository repositories.FetchRepository
	registry   prometheus.Gatherer
}

// NewFetchController creates a new FetchController.
func NewFetchController(repository repositories.FetchRepository, registry *prometheus.Registry) *FetchController {
	return &FetchController{repository: repository, registry: registry}
}

// GetBind returns the Cobra command metadata for the fetch controller.
func (it *FetchController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "fetch <endpoint>",
		Short: "Fetch a paginated API resource",
		Long: `Fetch a JSON resource from the GitLab API, following pagination.
Site-relative endpoints are resolved against the configured base URL.
The final pagination state, including the merged data, is printed.`,
		Args: cobra.ExactArgs(1),
	}
}

// Execute runs one fetch session.
func (it *FetchController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	perPage, _ := cmd.Flags().GetInt("per-page")
	singlePage, _ := cmd.Flags().GetBool("single-page")
	nextPages, _ := cmd.Flags().GetInt("next")
	baseURL, _ := cmd.Flags().GetString("base-url")
	query, _ := cmd.Flags().GetStringToString("query")
	headers, _ := cmd.Flags().GetStringToString("header")

	session := it.repository.Fetch(ctx, args[0], entities.FetchOptions{
		PerPage:     perPage,
		SinglePage:  singlePage,
		BaseURL:     baseURL,
		QueryParams: query,
		Headers:     headers,
	})
	for range nextPages {
		if !session.HasNextPage() || session.Err() != nil {
			break
		}
		session.FetchNextPage(ctx)
	}

	if err := session.Err(); err != nil {
		logger.Errorf("Fetch %s failed: %v", session.ID(), err)
	}
	if err := writeJSON(cmd, session.State()); err != nil {
		logger.Errorf("Failed to write output: %v", err)
	}

	if withMetrics, _ := cmd.Flags().GetBool("metrics"); withMetrics {
		it.writeMetrics(cmd)
	}
}

// writeMetrics prints the fetch counters in the Prometheus text format.
func (it *FetchController) writeMetrics(cmd *cobra.Command) {
	families, err := it.registry.Gather()
	if err != nil {
		logger.Errorf("Failed to gather metrics: %v", err)
		return
	}
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), "gitlab_enhancer_") {
			continue
		}
		if _, err = expfmt.MetricFamilyToText(cmd.ErrOrStderr(), family); err != nil {
			logger.Errorf("Failed to write metrics: %v", err)
			return
		}
	}
}

// AddFlags adds the fetch-specific flags to the given Cobra command.
func (it *FetchController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Int("per-page", 0, "Items per page (default: http.per_page)")
	cmd.Flags().Bool("single-page", false, "Only fetch the first page")
	cmd.Flags().Int("next", 0, "Pages to request one by one after the first (with --single-page)")
	cmd.Flags().String("base-url", "", "Origin for site-relative endpoints (default: gitlab.base_url)")
	cmd.Flags().StringToString("query", nil, "Extra query parameters (key=value)")
	cmd.Flags().StringToString("header", nil, "Extra request headers (key=value)")
	cmd.Flags().Bool("metrics", false, "Print request counters to stderr after the fetch")
}
