package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// ClassifyController handles the "classify" subcommand.
type ClassifyController struct{}

// NewClassifyController creates a new ClassifyController.
func NewClassifyController() *ClassifyController {
	return &ClassifyController{}
}

// GetBind returns the Cobra command metadata for the classify controller.
func (it *ClassifyController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "classify <url>...",
		Short: "Classify GitLab page URLs",
		Long: `Print the page type, category flags, project path and numeric id
derived from each URL.`,
		Args: cobra.MinimumNArgs(1),
	}
}

// Execute classifies every URL argument.
func (it *ClassifyController) Execute(cmd *cobra.Command, args []string) {
	states := make([]entities.PageState, 0, len(args))
	for _, arg := range args {
		location, err := entities.ParseLocation(arg)
		if err != nil {
			logger.Errorf("Skipping %q: %v", arg, err)
			continue
		}
		states = append(states, entities.DetectPage(location.Pathname))
	}

	if err := writeJSON(cmd, states); err != nil {
		logger.Errorf("Failed to write output: %v", err)
	}
}

func (it *ClassifyController) AddFlags(_ *cobra.Command) {}
