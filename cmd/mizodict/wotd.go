package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/mizodict/internal/app"
)

func newWordOfDayCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "wotd",
		Short: "Word of the day",
	}
	command.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the word of the day, picking a new one on a new day",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), func(a *app.App) error {
					printWordOfDay(cmd.OutOrStdout(), a.WordOfDayView(cmd.Context()))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "history",
			Short: "Show the words of the previous days, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), func(a *app.App) error {
					history, err := a.WordOfDay.History(cmd.Context())
					if err != nil {
						return fmt.Errorf("a.WordOfDay.History() > %w", err)
					}
					printHistory(cmd.OutOrStdout(), history)
					return nil
				})
			},
		},
	)
	return command
}
