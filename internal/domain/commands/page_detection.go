package commands

import (
	"sync"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// PageDetection exposes the page state derived from the current location.
type PageDetection interface {
	State() entities.PageState
	OnChange(listener func(state entities.PageState))
}

// PageDetectionCommand recomputes the page state when, and only when, the
// pathname of the observed location changes.
type PageDetectionCommand struct {
	mu        sync.RWMutex
	state     entities.PageState
	listeners []func(state entities.PageState)
}

// NewPageDetectionCommand derives the initial state and subscribes to the observer.
func NewPageDetectionCommand(observer LocationObserver) *PageDetectionCommand {
	command := &PageDetectionCommand{
		state: entities.DetectPage(observer.Current().Pathname),
	}
	observer.Subscribe(command.onLocationChange)
	return command
}

func (it *PageDetectionCommand) State() entities.PageState {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.state
}

func (it *PageDetectionCommand) OnChange(listener func(state entities.PageState)) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.listeners = append(it.listeners, listener)
}

func (it *PageDetectionCommand) onLocationChange(current entities.Location, change entities.LocationChange) {
	if !change.Pathname {
		return
	}

	state := entities.DetectPage(current.Pathname)

	it.mu.Lock()
	it.state = state
	listeners := make([]func(entities.PageState), len(it.listeners))
	copy(listeners, it.listeners)
	it.mu.Unlock()

	for _, listener := range listeners {
		listener(state)
	}
}
