package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitlab-enhancer/internal"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "gitlab-enhancer",
		Short: "Page-aware helpers for the GitLab web UI",
		Long: `Classifies GitLab page URLs, fetches paginated API resources and keeps a
persistent cache of projects, labels, preferences and list filters.

Configuration is read from --config, or from .gitlab-enhancer.yaml in the
usual locations; GITLAB_URL and GITLAB_TOKEN are used without a file.`,
		SilenceUsage: true,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  bind.Args,
			Run: func(command *cobra.Command, arguments []string) {
				controller.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		controller.AddFlags(subCmd)

		rootCmd.AddCommand(subCmd)
	}
}

// globalFlags reads --config and --verbose ahead of Execute, since the
// settings they select are needed to build the container. Flags owned by
// subcommands are skipped.
func globalFlags(root *cobra.Command, args []string) (string, bool) {
	flags := root.PersistentFlags()
	flags.ParseErrorsWhitelist.UnknownFlags = true
	if err := flags.Parse(args); err != nil {
		logger.Debugf("Could not pre-read global flags: %v", err)
	}
	configPath, _ := flags.GetString("config")
	verbose, _ := flags.GetBool("verbose")
	return configPath, verbose
}

func loadSettings(configPath string) *entities.Settings {
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return entities.DefaultSettings()
		}
		configPath = found
	}

	logger.Debugf("Using config file: %s", configPath)
	settings, err := entities.NewSettings(configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	return settings
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})

	cobraRoot := buildRootCommand()
	configPath, verbose := globalFlags(cobraRoot, os.Args[1:])
	settings := loadSettings(configPath)
	if level, err := logger.ParseLevel(settings.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("Unknown log level %q", settings.LogLevel)
	}
	if os.Getenv("DEBUG") == "true" || verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	// Add all subcommands
	appContext := injectAppContext(settings)
	addSubcommands(cobraRoot, appContext)

	err := cobraRoot.Execute()
	if closeErr := appContext.Close(); closeErr != nil {
		logger.Warnf("Failed to close storage: %v", closeErr)
	}
	if err != nil {
		logger.Fatalf("Error executing 'gitlab-enhancer': %s", err)
	}
}
