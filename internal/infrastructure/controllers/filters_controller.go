package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/commands"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// FiltersController handles the "filters" subcommand.
type FiltersController struct {
	filters commands.PersistentFilters
}

// NewFiltersController creates a new FiltersController.
func NewFiltersController(filters commands.PersistentFilters) *FiltersController {
	return &FiltersController{filters: filters}
}

// GetBind returns the Cobra command metadata for the filters controller.
func (it *FiltersController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "filters [url]",
		Short: "Save, restore and list persistent filters",
		Long: `Without arguments, list the saved filters as navigation links.
With a URL, print where that page would be redirected to restore its saved
filters; --save stores the URL's filters first.`,
		Args: cobra.MaximumNArgs(1),
	}
}

type filtersOutput struct {
	Key      string `json:"key"`
	Saved    bool   `json:"saved"`
	Redirect string `json:"redirect,omitempty"`
}

// Execute runs one filter operation.
func (it *FiltersController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	if !it.filters.Enabled(ctx) {
		logger.Warnf("Persistent filters are disabled (%s)", entities.PrefGeneralPersistentFilters)
	}

	if len(args) == 0 {
		if err := writeJSON(cmd, it.filters.NavigationLinks(ctx)); err != nil {
			logger.Errorf("Failed to write output: %v", err)
		}
		return
	}

	location, err := entities.ParseLocation(args[0])
	if err != nil {
		logger.Errorf("Invalid URL: %v", err)
		return
	}

	output := filtersOutput{Key: entities.FilterKey(location)}
	if save, _ := cmd.Flags().GetBool("save"); save {
		if output.Saved, err = it.filters.Save(ctx, location); err != nil {
			logger.Errorf("Failed to save filters: %v", err)
			return
		}
	}
	output.Redirect, _ = it.filters.Restore(ctx, location)

	if err = writeJSON(cmd, output); err != nil {
		logger.Errorf("Failed to write output: %v", err)
	}
}

// AddFlags adds the filters-specific flags to the given Cobra command.
func (it *FiltersController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("save", false, "Store the filters of the URL")
}
