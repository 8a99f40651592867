package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
)

// PersistentFilters remembers the filters of list pages between visits.
type PersistentFilters interface {
	Enabled(ctx context.Context) bool

	// Save stores the filters of the location and reports whether anything
	// was stored.
	Save(ctx context.Context, location entities.Location) (bool, error)

	// Restore returns where to redirect when the location carries no filters
	// but different ones were saved for it.
	Restore(ctx context.Context, location entities.Location) (string, bool)

	NavigationLinks(ctx context.Context) []entities.FilterLink
}

// PersistentFiltersCommand keeps one filter suffix per filter key.
type PersistentFiltersCommand struct {
	preferences Preferences
	storage     repositories.StorageRepository
	keys        entities.StorageKeys
	mu          sync.Mutex
}

// NewPersistentFiltersCommand creates the filter store.
func NewPersistentFiltersCommand(
	preferences Preferences,
	storage repositories.StorageRepository,
	keys entities.StorageKeys,
) *PersistentFiltersCommand {
	return &PersistentFiltersCommand{preferences: preferences, storage: storage, keys: keys}
}

func (it *PersistentFiltersCommand) Enabled(ctx context.Context) bool {
	return it.preferences.GetBool(ctx, entities.PrefGeneralPersistentFilters, true)
}

func (it *PersistentFiltersCommand) Save(ctx context.Context, location entities.Location) (bool, error) {
	if !it.Enabled(ctx) {
		return false, nil
	}
	key := entities.FilterKey(location)
	if key == "" {
		return false, nil
	}

	it.mu.Lock()
	defer it.mu.Unlock()

	filters, err := it.load(ctx)
	if err != nil {
		return false, err
	}
	filters[key] = entities.FilterValue(location)

	data, err := json.Marshal(filters)
	if err != nil {
		return false, fmt.Errorf("failed to encode filters: %w", err)
	}
	if err = it.storage.Set(ctx, it.keys.PersistentFilters(), data); err != nil {
		return false, fmt.Errorf("failed to save filters: %w", err)
	}
	return true, nil
}

func (it *PersistentFiltersCommand) Restore(ctx context.Context, location entities.Location) (string, bool) {
	if !it.Enabled(ctx) {
		return "", false
	}
	key := entities.FilterKey(location)
	if key == "" {
		return "", false
	}

	filters, err := it.load(ctx)
	if err != nil {
		logger.Warnf("Failed to read filters: %v", err)
		return "", false
	}

	saved := filters[key]
	ignored := entities.FilterIgnoredParams(location, true)
	cached := entities.SortedQuery(saved, ignored)
	current := entities.SortedQuery(location.Search, ignored)
	if current != "" || cached == "" || cached == current {
		return "", false
	}
	return key + saved, true
}

func (it *PersistentFiltersCommand) NavigationLinks(ctx context.Context) []entities.FilterLink {
	links := []entities.FilterLink{}
	if !it.Enabled(ctx) {
		return links
	}

	filters, err := it.load(ctx)
	if err != nil {
		logger.Warnf("Failed to read filters: %v", err)
		return links
	}

	for key, search := range filters {
		if !entities.IsFilterablePath(key) {
			continue
		}
		links = append(links, entities.FilterLink{
			Match: strings.TrimSuffix(key, "/"),
			Href:  key + search,
		})
	}
	slices.SortFunc(links, func(a, b entities.FilterLink) int {
		return strings.Compare(a.Match, b.Match)
	})
	return links
}

func (it *PersistentFiltersCommand) load(ctx context.Context) (map[string]string, error) {
	filters := make(map[string]string)
	data, found, err := it.storage.Get(ctx, it.keys.PersistentFilters())
	if err != nil {
		return nil, fmt.Errorf("failed to read filters: %w", err)
	}
	if !found {
		return filters, nil
	}
	if err = json.Unmarshal(data, &filters); err != nil {
		return nil, fmt.Errorf("failed to decode filters: %w", err)
	}
	return filters, nil
}
