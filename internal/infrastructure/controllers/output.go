package controllers

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// writeJSON prints value as indented JSON on the command's output stream.
func writeJSON(cmd *cobra.Command, value interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
