package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/gitlab-enhancer/internal"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

func injectAppContext(settings *entities.Settings) *internal.AppInternal {
	container := dig.New()

	if err := container.Provide(func() *entities.Settings { return settings }); err != nil {
		panic(err)
	}

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}
