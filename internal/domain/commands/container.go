package commands

import (
	"github.com/jonboulle/clockwork"
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(clockwork.NewRealClock); err != nil {
		return err
	}

	// Register command constructors
	constructors := []interface{}{
		NewLocationObserverCommand,
		NewPageDetectionCommand,
		NewEntityCacheCommand,
		NewSessionContextCommand,
		NewPreferencesCommand,
		NewPersistentFiltersCommand,
		NewProjectAvatarsCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *LocationObserverCommand) LocationObserver {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *PageDetectionCommand) PageDetection {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *EntityCacheCommand) EntityCache {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *SessionContextCommand) SessionContext {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *PreferencesCommand) Preferences {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *PersistentFiltersCommand) PersistentFilters {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ProjectAvatarsCommand) ProjectAvatars {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
