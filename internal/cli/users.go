package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUsersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all users with at least one note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.notes.GetUsers()
			if err != nil {
				return err
			}
			for _, user := range users {
				fmt.Fprintln(cmd.OutOrStdout(), user)
			}
			return nil
		},
	}
}
