package controllers

import (
	"context"
	"io"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/commands"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// AvatarsController handles the "avatars" subcommand.
type AvatarsController struct {
	avatars commands.ProjectAvatars
}

// NewAvatarsController creates a new AvatarsController.
func NewAvatarsController(avatars commands.ProjectAvatars) *AvatarsController {
	return &AvatarsController{avatars: avatars}
}

// GetBind returns the Cobra command metadata for the avatars controller.
func (it *AvatarsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "avatars <html-file>",
		Short: "Resolve the avatars of the projects listed on a saved page",
		Long: `Read a saved GitLab page ("-" for stdin), extract the projects it lists
and print each project's avatar URL, or its initial when it has none.
--url is the address the page was saved from.`,
		Args: cobra.ExactArgs(1),
	}
}

// Execute resolves the avatars of one document.
func (it *AvatarsController) Execute(cmd *cobra.Command, args []string) {
	pageURL, _ := cmd.Flags().GetString("url")

	var document io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			logger.Errorf("Failed to open %q: %v", args[0], err)
			return
		}
		defer file.Close()
		document = file
	}

	avatars, err := it.avatars.Resolve(context.Background(), document, pageURL)
	if err != nil {
		logger.Errorf("Failed to resolve avatars: %v", err)
		return
	}
	if err = writeJSON(cmd, avatars); err != nil {
		logger.Errorf("Failed to write output: %v", err)
	}
}

// AddFlags adds the avatars-specific flags to the given Cobra command.
func (it *AvatarsController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("url", "", "URL the page was saved from")
	_ = cmd.MarkFlagRequired("url")
}
