package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modkit/usernotes/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	var link string
	var warning string

	cmd := &cobra.Command{
		Use:   "add <username> <message...>",
		Short: "Add a note to a user",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if warning != "" && !types.ValidWarning(warning) {
				return fmt.Errorf("unknown warning category %q (one of: %s)",
					warning, strings.Join(types.Warnings, ", "))
			}

			note := types.NewNote(args[0], strings.Join(args[1:], " "),
				types.WithSubreddit(a.cfg.Subreddit),
				types.WithLink(link),
				types.WithWarning(warning),
			)
			if err := a.notes.AddNote(note); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added note on %s\n", note.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&link, "link", "", "associated permalink (full URL or shorthand)")
	cmd.Flags().StringVar(&warning, "warning", types.WarningNone, "warning category")
	return cmd
}
