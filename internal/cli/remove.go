package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRemoveNoteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-note <username> <index>",
		Short: "Remove one note from a user (0 is the most recent)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid note index %q", args[1])
			}
			if err := a.notes.RemoveNote(args[0], index); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed note #%d on %s\n", index, args[0])
			return nil
		},
	}
}

func newRemoveUserCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-user <username>",
		Short: "Remove all of a user's notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.notes.RemoveUser(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed all notes on %s\n", args[0])
			return nil
		},
	}
}
