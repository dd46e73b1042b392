package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/at-ishikawa/mizodict/internal/translation"
	"github.com/at-ishikawa/mizodict/internal/view"
	"github.com/at-ishikawa/mizodict/internal/wotd"
)

var (
	titleColor       = color.New(color.Bold, color.FgGreen)
	wordColor        = color.New(color.Bold)
	favoriteColor    = color.New(color.FgYellow)
	placeholderColor = color.New(color.FgYellow)
	dimColor         = color.New(color.Faint)
)

func printEntry(w io.Writer, entry view.Entry) {
	star := ""
	if entry.Favorite {
		star = " " + favoriteColor.Sprint("★")
	}
	fmt.Fprintf(w, "  %s  %s%s\n", wordColor.Sprint(entry.Word), entry.Definition, star)
}

func printResults(w io.Writer, results view.Results) {
	if results.Placeholder != nil {
		placeholderColor.Fprintln(w, results.Placeholder.Title)
		fmt.Fprintln(w, results.Placeholder.Message)
		return
	}
	if results.Card == nil {
		return
	}

	card := results.Card
	titleColor.Fprintln(w, card.Title)
	if card.Direction != "" {
		suffix := ""
		if card.Cached {
			suffix = " (cached)"
		}
		dimColor.Fprintf(w, "%s%s\n", card.Direction, suffix)
	}
	for _, entry := range card.Entries {
		printEntry(w, entry)
	}
}

func printFavorites(w io.Writer, entries []view.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No favorites yet.")
		return
	}
	for _, entry := range entries {
		printEntry(w, entry)
	}
}

func printRecent(w io.Writer, recent []string) {
	if len(recent) == 0 {
		fmt.Fprintln(w, "No recent searches.")
		return
	}
	for i, query := range recent {
		fmt.Fprintf(w, "%2d. %s\n", i+1, query)
	}
}

func printWordOfDay(w io.Writer, model view.WordOfDay) {
	if model.Today == nil {
		placeholderColor.Fprintln(w, model.Error)
		return
	}
	titleColor.Fprintf(w, "Word of the Day (%s)\n", model.Date)
	printEntry(w, *model.Today)
}

func printHistory(w io.Writer, history []wotd.Record) {
	if len(history) == 0 {
		fmt.Fprintln(w, "No word of the day yet.")
		return
	}
	for _, record := range history {
		fmt.Fprintf(w, "%s  %s  %s\n", dimColor.Sprint(record.Date), wordColor.Sprint(record.Word), record.Definition)
	}
}

func printStatus(w io.Writer, baseURL string, status translation.Status, err error) {
	if err != nil {
		placeholderColor.Fprintf(w, "offline: %s\n", baseURL)
		fmt.Fprintf(w, "  %v\n", err)
		return
	}
	state := "online"
	if !status.Usable() {
		state = "unusable (no model or api key)"
	}
	titleColor.Fprintf(w, "%s: %s\n", state, baseURL)
	fmt.Fprintf(w, "  model: %s\n", status.ModelName)
	fmt.Fprintf(w, "  cache: %d mizo-to-english, %d english-to-mizo\n",
		status.CacheSize.MizoToEnglish, status.CacheSize.EnglishToMizo)
}
