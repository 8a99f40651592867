package commands

import (
	"sync"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// LocationListener receives the new location and the fields that changed.
type LocationListener func(current entities.Location, change entities.LocationChange)

// LocationObserver holds the current location and notifies listeners of
// navigations that actually change it.
type LocationObserver interface {
	Navigate(rawURL string) (entities.LocationChange, error)
	Current() entities.Location
	Subscribe(listener LocationListener)
}

// LocationObserverCommand is the single source of the current location.
type LocationObserverCommand struct {
	mu        sync.RWMutex
	current   entities.Location
	listeners []LocationListener
}

// NewLocationObserverCommand creates an observer with an empty location.
func NewLocationObserverCommand() *LocationObserverCommand {
	return &LocationObserverCommand{}
}

// Navigate records a navigation event. Listeners are only called when at
// least one field differs from the current location.
func (it *LocationObserverCommand) Navigate(rawURL string) (entities.LocationChange, error) {
	next, err := entities.ParseLocation(rawURL)
	if err != nil {
		return entities.LocationChange{}, err
	}

	it.mu.Lock()
	change := it.current.Diff(next)
	if !change.Any() {
		it.mu.Unlock()
		return change, nil
	}
	it.current = next
	listeners := make([]LocationListener, len(it.listeners))
	copy(listeners, it.listeners)
	it.mu.Unlock()

	for _, listener := range listeners {
		listener(next, change)
	}
	return change, nil
}

func (it *LocationObserverCommand) Current() entities.Location {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.current
}

func (it *LocationObserverCommand) Subscribe(listener LocationListener) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.listeners = append(it.listeners, listener)
}
