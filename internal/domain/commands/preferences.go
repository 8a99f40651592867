package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
)

// Preferences reads and writes the user toggles. Values are JSON scalars:
// booleans, numbers, strings or null.
type Preferences interface {
	Get(ctx context.Context, key entities.Preference) (interface{}, bool)
	GetBool(ctx context.Context, key entities.Preference, defaultValue bool) bool
	GetNumber(ctx context.Context, key entities.Preference, defaultValue float64) float64
	Set(ctx context.Context, key entities.Preference, value interface{}) error
	All(ctx context.Context) map[string]interface{}
}

// PreferencesCommand stores every toggle in one JSON object. The store is
// read on every access so that other processes' writes are visible.
type PreferencesCommand struct {
	storage repositories.StorageRepository
	keys    entities.StorageKeys
	mu      sync.Mutex
}

// NewPreferencesCommand creates a preference store on top of the storage.
func NewPreferencesCommand(storage repositories.StorageRepository, keys entities.StorageKeys) *PreferencesCommand {
	return &PreferencesCommand{storage: storage, keys: keys}
}

// Get returns the stored value and whether the key has ever been set. A key
// explicitly set to null is present with a nil value.
func (it *PreferencesCommand) Get(ctx context.Context, key entities.Preference) (interface{}, bool) {
	values, err := it.load(ctx)
	if err != nil {
		logger.Warnf("Failed to read preferences: %v", err)
		return nil, false
	}
	value, ok := values[string(key)]
	return value, ok
}

// GetBool returns the truthiness of the stored value, or the default when unset.
func (it *PreferencesCommand) GetBool(ctx context.Context, key entities.Preference, defaultValue bool) bool {
	value, ok := it.Get(ctx, key)
	if !ok {
		return defaultValue
	}
	return truthy(value)
}

// GetNumber returns a numeric value, or the default when unset or not a number.
func (it *PreferencesCommand) GetNumber(ctx context.Context, key entities.Preference, defaultValue float64) float64 {
	value, ok := it.Get(ctx, key)
	if !ok {
		return defaultValue
	}
	number, isNumber := value.(float64)
	if !isNumber {
		return defaultValue
	}
	return number
}

func (it *PreferencesCommand) Set(ctx context.Context, key entities.Preference, value interface{}) error {
	switch v := value.(type) {
	case nil, bool, string, float64:
	case int:
		value = float64(v)
	default:
		return fmt.Errorf("unsupported preference value type %T", value)
	}

	it.mu.Lock()
	defer it.mu.Unlock()

	values, err := it.load(ctx)
	if err != nil {
		return err
	}
	values[string(key)] = value

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err = it.storage.Set(ctx, it.keys.Preferences(), data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

func (it *PreferencesCommand) All(ctx context.Context) map[string]interface{} {
	values, err := it.load(ctx)
	if err != nil {
		logger.Warnf("Failed to read preferences: %v", err)
		return map[string]interface{}{}
	}
	return values
}

func (it *PreferencesCommand) load(ctx context.Context) (map[string]interface{}, error) {
	values := make(map[string]interface{})
	data, found, err := it.storage.Get(ctx, it.keys.Preferences())
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}
	if !found {
		return values, nil
	}
	if err = json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to decode preferences: %w", err)
	}
	return values, nil
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}
