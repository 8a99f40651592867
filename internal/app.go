package internal

import (
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
)

// AppInternal holds everything the CLI mounts.
type AppInternal struct {
	controllers []entities.Controller
	storage     repositories.StorageRepository
}

// NewAppInternal creates the application from the registered controllers.
func NewAppInternal(controllers *[]entities.Controller, storage repositories.StorageRepository) *AppInternal {
	return &AppInternal{controllers: *controllers, storage: storage}
}

// GetControllers returns the controllers in registration order.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}

// Close releases the storage backend.
func (it *AppInternal) Close() error {
	return it.storage.Close()
}
