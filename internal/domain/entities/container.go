package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
// Settings itself is provided by main, which resolves the config file before
// the container is built.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(NewStorageKeys)
}
