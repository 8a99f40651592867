//go:build unit

package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// newTestCommand mounts a controller on a bare command writing to out.
func newTestCommand(controller entities.Controller, in string) (*cobra.Command, *bytes.Buffer) {
	bind := controller.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{Use: bind.Use, Args: bind.Args}
	controller.AddFlags(cmd)

	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader(in))
	return cmd, out
}

// decodeAll reads every JSON value written to out.
func decodeAll[T any](t *testing.T, out *bytes.Buffer) []T {
	t.Helper()

	var values []T
	decoder := json.NewDecoder(out)
	for {
		var value T
		err := decoder.Decode(&value)
		if err == io.EOF {
			return values
		}
		require.NoError(t, err)
		values = append(values, value)
	}
}
