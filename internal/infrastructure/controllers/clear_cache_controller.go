package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/commands"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// ClearCacheController handles the "clear-cache" subcommand.
type ClearCacheController struct {
	cache commands.EntityCache
}

// NewClearCacheController creates a new ClearCacheController.
func NewClearCacheController(cache commands.EntityCache) *ClearCacheController {
	return &ClearCacheController{cache: cache}
}

// GetBind returns the Cobra command metadata for the clear-cache controller.
func (it *ClearCacheController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "clear-cache",
		Short: "Drop cached projects and labels",
		Long: `Drop every cached project and label list. With --labels only label
lists are dropped, optionally for a single --project.`,
		Args: cobra.NoArgs,
	}
}

// Execute clears the requested part of the cache.
func (it *ClearCacheController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()
	labelsOnly, _ := cmd.Flags().GetBool("labels")
	project, _ := cmd.Flags().GetString("project")

	if project != "" && !labelsOnly {
		logger.Errorf("--project requires --labels")
		return
	}

	if labelsOnly {
		it.cache.ClearProjectLabelsCache(ctx, project)
		logger.Info("Label cache cleared")
		return
	}
	it.cache.ClearCache(ctx)
	logger.Info("Cache cleared")
}

// AddFlags adds the clear-cache-specific flags to the given Cobra command.
func (it *ClearCacheController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("labels", false, "Only drop label lists")
	cmd.Flags().String("project", "", "Only drop the labels of this project (with --labels)")
}
