package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Fetch the usernotes record, bootstrapping it if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.notes.Sync(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "usernotes ready for r/%s\n", a.cfg.Subreddit)
			return nil
		},
	}
}
