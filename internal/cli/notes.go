package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newNotesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "notes <username>",
		Short: "List a user's notes, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := a.notes.GetNotes(args[0])
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no notes on %s\n", args[0])
				return nil
			}

			for i, n := range notes {
				when := time.Unix(n.CreatedAt, 0).UTC().Format("2006-01-02 15:04")
				fmt.Fprintf(cmd.OutOrStdout(), "#%d  %s  %s  [%s]  %s\n",
					i, when, n.Moderator, n.Warning, n.Body)
				if url, err := n.FullURL(); err == nil && url != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", url)
				}
			}
			return nil
		},
	}
}
