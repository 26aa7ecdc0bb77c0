package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modkit/usernotes/pkg/usernotes"
)

const modulePath = "github.com/modkit/usernotes"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the usernotes version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "usernotes v%s\nmodule: %s\n", usernotes.Version, modulePath)
			return nil
		},
	}
}
