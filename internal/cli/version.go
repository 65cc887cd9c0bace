package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/pbapi/internal/buildinfo"
)

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show pbapi version and build information",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(app.stdout(), buildinfo.Current().String())
			return nil
		},
	}
}
