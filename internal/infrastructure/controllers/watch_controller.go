package controllers

import (
	"bufio"
	"context"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/commands"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// WatchController handles the "watch" subcommand.
type WatchController struct {
	observer  commands.LocationObserver
	detection commands.PageDetection
	filters   commands.PersistentFilters
}

// NewWatchController creates a new WatchController.
func NewWatchController(
	observer commands.LocationObserver,
	detection commands.PageDetection,
	filters commands.PersistentFilters,
) *WatchController {
	return &WatchController{observer: observer, detection: detection, filters: filters}
}

// GetBind returns the Cobra command metadata for the watch controller.
func (it *WatchController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "watch",
		Short: "Follow navigation events read from stdin",
		Long: `Read one URL per line from stdin and treat each as a navigation.
A page state is printed whenever the pathname changes. With --filters, the
filters of every visited list page are saved and a redirect is printed when
saved filters apply.`,
		Args: cobra.NoArgs,
	}
}

type watchEvent struct {
	Href     string              `json:"href"`
	Page     *entities.PageState `json:"page,omitempty"`
	Redirect string              `json:"redirect,omitempty"`
}

// Execute consumes stdin until EOF.
func (it *WatchController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()
	withFilters, _ := cmd.Flags().GetBool("filters")

	var pageChanged *entities.PageState
	it.detection.OnChange(func(state entities.PageState) {
		pageChanged = &state
	})

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		pageChanged = nil
		change, err := it.observer.Navigate(line)
		if err != nil {
			logger.Warnf("Ignoring navigation: %v", err)
			continue
		}
		if !change.Any() {
			continue
		}

		current := it.observer.Current()
		event := watchEvent{Href: current.Href, Page: pageChanged}
		if withFilters {
			event.Redirect = it.applyFilters(ctx, current)
		}
		if event.Page == nil && event.Redirect == "" {
			continue
		}
		if err = writeJSON(cmd, event); err != nil {
			logger.Errorf("Failed to write output: %v", err)
			return
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Errorf("Failed to read navigation events: %v", err)
	}
}

func (it *WatchController) applyFilters(ctx context.Context, location entities.Location) string {
	if target, ok := it.filters.Restore(ctx, location); ok {
		return target
	}
	if _, err := it.filters.Save(ctx, location); err != nil {
		logger.Warnf("Failed to save filters: %v", err)
	}
	return ""
}

// AddFlags adds the watch-specific flags to the given Cobra command.
func (it *WatchController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("filters", false, "Save and restore list filters while watching")
}
