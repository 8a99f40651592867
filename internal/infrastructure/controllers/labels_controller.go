package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/commands"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// LabelsController handles the "labels" subcommand.
type LabelsController struct {
	cache commands.EntityCache
}

// NewLabelsController creates a new LabelsController.
func NewLabelsController(cache commands.EntityCache) *LabelsController {
	return &LabelsController{cache: cache}
}

// GetBind returns the Cobra command metadata for the labels controller.
func (it *LabelsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "labels <path>",
		Short: "List the labels of a project through the entity cache",
		Long: `List the labels of a project. --prefix narrows the list to the scoped
labels of one scope ("priority" matches "priority::high"); --name looks up
a single label by its exact name.`,
		Args: cobra.ExactArgs(1),
	}
}

// Execute prints the requested labels.
func (it *LabelsController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	path := args[0]
	prefix, _ := cmd.Flags().GetString("prefix")
	name, _ := cmd.Flags().GetString("name")

	var result interface{}
	switch {
	case name != "":
		label := it.cache.GetProjectLabel(ctx, path, name)
		if label == nil {
			logger.Errorf("Label %q not found in %q", name, path)
			return
		}
		result = label
	case prefix != "":
		result = it.cache.GetProjectScopedLabels(ctx, path, prefix)
	default:
		result = it.cache.GetProjectLabels(ctx, path)
	}

	if err := writeJSON(cmd, result); err != nil {
		logger.Errorf("Failed to write output: %v", err)
	}
}

// AddFlags adds the labels-specific flags to the given Cobra command.
func (it *LabelsController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("prefix", "", "Only list scoped labels of this scope")
	cmd.Flags().String("name", "", "Look up one label by exact name")
	cmd.MarkFlagsMutuallyExclusive("prefix", "name")
}
