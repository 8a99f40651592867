package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/commands"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// SessionController handles the "session" subcommand.
type SessionController struct {
	session commands.SessionContext
}

// NewSessionController creates a new SessionController.
func NewSessionController(session commands.SessionContext) *SessionController {
	return &SessionController{session: session}
}

// GetBind returns the Cobra command metadata for the session controller.
func (it *SessionController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "session",
		Short: "Show the signed-in user and the GitLab version",
		Args:  cobra.NoArgs,
	}
}

type sessionOutput struct {
	Ready      bool                    `json:"ready"`
	User       *entities.User          `json:"user"`
	Version    *entities.RemoteVersion `json:"version"`
	Enterprise bool                    `json:"enterprise"`
}

// Execute loads the session context and prints it.
func (it *SessionController) Execute(cmd *cobra.Command, _ []string) {
	it.session.Load(context.Background())

	output := sessionOutput{
		Ready:   it.session.IsReady(),
		User:    it.session.User(),
		Version: it.session.Version(),
	}
	if output.Version != nil {
		output.Enterprise = output.Version.Enterprise()
	}
	if !output.Ready {
		logger.Warn("Session is not ready")
	}

	if err := writeJSON(cmd, output); err != nil {
		logger.Errorf("Failed to write output: %v", err)
	}
}

func (it *SessionController) AddFlags(_ *cobra.Command) {}
