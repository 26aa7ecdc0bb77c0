package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the usernotes page changelog, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			revisions, err := a.wiki.Revisions(a.cfg.GetPageName())
			if err != nil {
				return err
			}
			for _, rev := range revisions {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
					rev.CreatedAt.UTC().Format("2006-01-02 15:04:05"), rev.Reason)
			}
			return nil
		},
	}
}
