package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/mizodict/internal/app"
	"github.com/at-ishikawa/mizodict/internal/view"
)

func newDictionaryCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "dictionary",
		Short: "Inspect the loaded dictionary",
	}
	command.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show the number of entries and reverse lookup tokens",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), func(a *app.App) error {
					if a.LoadErr != nil {
						return fmt.Errorf("failed to load the dictionary: %w", a.LoadErr)
					}
					index := a.Dictionary.Index()
					fmt.Fprintf(cmd.OutOrStdout(), "source: %s\nentries: %d\nreverse tokens: %d\n",
						a.Config.Dictionary.Source, index.Len(), index.TokenCount())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "reverse <token>",
			Short: "List the English words whose definition contains a Mizo token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), func(a *app.App) error {
					matches := a.Dictionary.ReverseLookup(args[0])
					if len(matches) == 0 {
						fmt.Fprintf(cmd.OutOrStdout(), "No English words for %q\n", args[0])
						return nil
					}
					for _, match := range matches {
						printEntry(cmd.OutOrStdout(), view.Entry{
							Word:       match.Word,
							Definition: match.Definition,
							Favorite:   a.Favorites.IsFavorite(match.Word, match.Definition),
						})
					}
					return nil
				})
			},
		},
	)
	return command
}
