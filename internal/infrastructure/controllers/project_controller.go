package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/commands"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// ProjectController handles the "project" subcommand.
type ProjectController struct {
	cache commands.EntityCache
}

// NewProjectController creates a new ProjectController.
func NewProjectController(cache commands.EntityCache) *ProjectController {
	return &ProjectController{cache: cache}
}

// GetBind returns the Cobra command metadata for the project controller.
func (it *ProjectController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "project <path>",
		Short: "Show a project through the entity cache",
		Args:  cobra.ExactArgs(1),
	}
}

// Execute prints the project, fetching it on a cache miss.
func (it *ProjectController) Execute(cmd *cobra.Command, args []string) {
	project := it.cache.GetProject(context.Background(), args[0])
	if project == nil {
		logger.Errorf("Project %q not found", args[0])
		return
	}
	if err := writeJSON(cmd, project); err != nil {
		logger.Errorf("Failed to write output: %v", err)
	}
}

func (it *ProjectController) AddFlags(_ *cobra.Command) {}
