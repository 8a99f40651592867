package entities

import "github.com/spf13/cobra"

// ControllerBind is the Cobra command metadata a controller is mounted with.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
	Args  cobra.PositionalArgs
}

// Controller is one CLI operation.
type Controller interface {
	GetBind() ControllerBind
	Execute(command *cobra.Command, arguments []string)
	AddFlags(command *cobra.Command)
}
