package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/mizodict/internal/app"
	"github.com/at-ishikawa/mizodict/internal/assets"
	"github.com/at-ishikawa/mizodict/internal/pdf"
	"github.com/at-ishikawa/mizodict/internal/view"
)

func newFavoriteCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "favorite",
		Short: "Manage favorite entries",
	}
	command.AddCommand(
		newFavoriteToggleCommand(),
		newFavoriteListCommand(),
		newFavoriteExportCommand(),
	)
	return command
}

func newFavoriteToggleCommand() *cobra.Command {
	var definition string
	command := &cobra.Command{
		Use:   "toggle <word>",
		Short: "Add a word to the favorites, or remove it when it is already one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				word := args[0]
				if definition == "" {
					entry, ok := a.Dictionary.Lookup(word)
					if !ok {
						return fmt.Errorf("%q is not in the dictionary, pass --definition", word)
					}
					word, definition = entry.Word, entry.Definition
				}

				if a.Favorites.Toggle(cmd.Context(), word, definition) {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s to the favorites\n", wordColor.Sprint(word))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the favorites\n", wordColor.Sprint(word))
				}
				return nil
			})
		},
	}
	command.Flags().StringVar(&definition, "definition", "", "Definition to store with the word. Defaults to the dictionary definition")
	return command
}

func newFavoriteListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the favorites, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				printFavorites(cmd.OutOrStdout(), view.FavoriteEntries(a.Favorites.List()))
				return nil
			})
		},
	}
}

func newFavoriteExportCommand() *cobra.Command {
	var (
		output       string
		convertToPDF bool
	)
	command := &cobra.Command{
		Use:   "export",
		Short: "Export the favorites to a Markdown file, optionally converted to PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filepath.Ext(output) != ".md" {
				return fmt.Errorf("--output must be a .md file: %s", output)
			}

			return withApp(cmd.Context(), func(a *app.App) error {
				var buf bytes.Buffer
				if err := assets.WriteFavorites(&buf, a.Config.Templates.FavoritesTemplate, assets.FavoritesTemplate{
					Title:     app.Title + " Favorites",
					Date:      time.Now(),
					Favorites: view.FavoriteEntries(a.Favorites.List()),
				}); err != nil {
					return fmt.Errorf("assets.WriteFavorites() > %w", err)
				}

				if dir := filepath.Dir(output); dir != "." {
					if err := os.MkdirAll(dir, 0755); err != nil {
						return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
					}
				}
				if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
					return fmt.Errorf("os.WriteFile(%s) > %w", output, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d favorites to %s\n", a.Favorites.Len(), output)

				if !convertToPDF {
					return nil
				}
				pdfPath, err := pdf.ConvertMarkdownToPDF(output)
				if err != nil {
					return fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", pdfPath)
				return nil
			})
		},
	}
	flags := command.Flags()
	flags.StringVarP(&output, "output", "o", "favorites.md", "Markdown file to write")
	flags.BoolVar(&convertToPDF, "pdf", false, "Also convert the Markdown file to PDF")
	return command
}
