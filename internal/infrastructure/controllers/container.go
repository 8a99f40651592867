package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	constructors := []interface{}{
		NewClassifyController,
		NewWatchController,
		NewFetchController,
		NewProjectController,
		NewLabelsController,
		NewClearCacheController,
		NewSessionController,
		NewAvatarsController,
		NewFiltersController,
		NewPreferenceController,
		NewControllers,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	classifyController *ClassifyController,
	watchController *WatchController,
	fetchController *FetchController,
	projectController *ProjectController,
	labelsController *LabelsController,
	clearCacheController *ClearCacheController,
	sessionController *SessionController,
	avatarsController *AvatarsController,
	filtersController *FiltersController,
	preferenceController *PreferenceController,
) *[]entities.Controller {
	return &[]entities.Controller{
		classifyController,
		watchController,
		fetchController,
		projectController,
		labelsController,
		clearCacheController,
		sessionController,
		avatarsController,
		filtersController,
		preferenceController,
	}
}
