package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/mizodict/internal/app"
)

func newRecentCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "recent",
		Short: "Show or clear the recent searches",
	}
	command.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the recent searches, most recent first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), func(a *app.App) error {
					printRecent(cmd.OutOrStdout(), a.Favorites.Recent())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Clear the recent searches",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), func(a *app.App) error {
					a.Favorites.ClearRecent(cmd.Context())
					fmt.Fprintln(cmd.OutOrStdout(), "Cleared the recent searches")
					return nil
				})
			},
		},
	)
	return command
}
