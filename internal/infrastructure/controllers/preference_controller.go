package controllers

import (
	"context"
	"strconv"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/commands"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// PreferenceController handles the "preference" subcommand.
type PreferenceController struct {
	preferences commands.Preferences
}

// NewPreferenceController creates a new PreferenceController.
func NewPreferenceController(preferences commands.Preferences) *PreferenceController {
	return &PreferenceController{preferences: preferences}
}

// GetBind returns the Cobra command metadata for the preference controller.
func (it *PreferenceController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "preference [key] [value]",
		Short: "Read or change user preferences",
		Long: `Without arguments, print every stored preference. With a key, print its
value. With a key and a value, store it: "true", "false", "null" and numbers
are stored as such, anything else as a string.`,
		Args: cobra.MaximumNArgs(2), //nolint:mnd // key and value
	}
}

// Execute reads or writes one preference.
func (it *PreferenceController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	switch len(args) {
	case 0:
		if err := writeJSON(cmd, it.preferences.All(ctx)); err != nil {
			logger.Errorf("Failed to write output: %v", err)
		}
	case 1:
		value, _ := it.preferences.Get(ctx, entities.Preference(args[0]))
		if err := writeJSON(cmd, value); err != nil {
			logger.Errorf("Failed to write output: %v", err)
		}
	default:
		key := entities.Preference(args[0])
		if err := it.preferences.Set(ctx, key, parsePreferenceValue(args[1])); err != nil {
			logger.Errorf("Failed to set %q: %v", key, err)
			return
		}
		logger.Infof("Set %q", key)
	}
}

func (it *PreferenceController) AddFlags(_ *cobra.Command) {}

func parsePreferenceValue(raw string) interface{} {
	switch raw {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if number, err := strconv.ParseFloat(raw, 64); err == nil {
		return number
	}
	return raw
}
