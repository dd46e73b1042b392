package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/mizodict/internal/app"
	"github.com/at-ishikawa/mizodict/internal/search"
	"github.com/at-ishikawa/mizodict/internal/translation"
	"github.com/at-ishikawa/mizodict/internal/view"
)

func newLookupCommand() *cobra.Command {
	mode := search.ModeOffline
	direction := translation.MizoToEnglish

	command := &cobra.Command{
		Use:   "lookup <query>",
		Short: "Look up an English word or a Mizo word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			ctx := cmd.Context()

			return withApp(ctx, func(a *app.App) error {
				if a.LoadErr != nil {
					placeholderColor.Fprintln(cmd.ErrOrStderr(), a.Banner())
				}
				if mode == search.ModeOnline {
					a.Checker.Probe(ctx)
				}

				result, err := a.Engine.Search(ctx, search.Query{Text: query, Mode: mode, Direction: direction})
				if err != nil {
					printResults(cmd.OutOrStdout(), view.ErrorResults(err))
					if errors.Is(err, search.ErrEmptyQuery) {
						return nil
					}
					return fmt.Errorf("a.Engine.Search() > %w", err)
				}
				printResults(cmd.OutOrStdout(), view.ResultCard(result, a.Favorites.IsFavorite))
				return nil
			})
		},
	}
	flags := command.Flags()
	flags.Var(&mode, "mode", fmt.Sprintf("Search mode. Possible values are %s and %s", search.ModeOffline, search.ModeOnline))
	flags.Var(&direction, "direction", fmt.Sprintf("Translation direction in online mode. Possible values are %s and %s",
		translation.MizoToEnglish, translation.EnglishToMizo))
	return command
}
