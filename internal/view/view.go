// Package view builds render-ready models from the application state. It performs no I/O.
package view

import (
	"errors"
	"strings"

	"github.com/at-ishikawa/mizodict/internal/favorites"
	"github.com/at-ishikawa/mizodict/internal/search"
	"github.com/at-ishikawa/mizodict/internal/translation"
	"github.com/at-ishikawa/mizodict/internal/wotd"
)

type TabID string

const (
	TabDictionary TabID = "dictionary"
	TabFavorites  TabID = "favorites"
	TabWordOfDay  TabID = "wotd"
)

type Tab struct {
	ID     TabID  `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// ParseTab falls back to the dictionary tab for unknown values.
func ParseTab(value string) TabID {
	switch TabID(strings.ToLower(strings.TrimSpace(value))) {
	case TabFavorites:
		return TabFavorites
	case TabWordOfDay:
		return TabWordOfDay
	default:
		return TabDictionary
	}
}

func Tabs(active TabID) []Tab {
	tabs := []Tab{
		{ID: TabDictionary, Label: "Dictionary"},
		{ID: TabFavorites, Label: "Favorites"},
		{ID: TabWordOfDay, Label: "Word of the Day"},
	}
	for i := range tabs {
		tabs[i].Active = tabs[i].ID == active
	}
	return tabs
}

type PlaceholderKind string

const (
	PlaceholderEmpty         PlaceholderKind = "empty"
	PlaceholderLoading       PlaceholderKind = "loading"
	PlaceholderError         PlaceholderKind = "error"
	PlaceholderNotFound      PlaceholderKind = "not_found"
	PlaceholderServerOffline PlaceholderKind = "server_offline"
)

type Placeholder struct {
	Kind    PlaceholderKind `json:"kind"`
	Title   string          `json:"title"`
	Message string          `json:"message"`
}

func EmptyPlaceholder() Placeholder {
	return Placeholder{
		Kind:    PlaceholderEmpty,
		Title:   "Search the dictionary",
		Message: "Type an English word or a Mizo word to look it up.",
	}
}

func LoadingPlaceholder(query string) Placeholder {
	return Placeholder{
		Kind:    PlaceholderLoading,
		Title:   "Searching",
		Message: "Looking up \"" + query + "\"...",
	}
}

func NotFoundPlaceholder(query string) Placeholder {
	return Placeholder{
		Kind:    PlaceholderNotFound,
		Title:   "No results",
		Message: "No entry found for \"" + query + "\". Try online mode for a translation.",
	}
}

func ServerOfflinePlaceholder() Placeholder {
	return Placeholder{
		Kind:    PlaceholderServerOffline,
		Title:   "Translation server offline",
		Message: "Online translation is unavailable right now. Switch to offline mode to search the dictionary.",
	}
}

func ErrorPlaceholder(message string) Placeholder {
	return Placeholder{
		Kind:    PlaceholderError,
		Title:   "Translation error",
		Message: message,
	}
}

// Entry is one word and definition with its favorite state.
type Entry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Favorite   bool   `json:"favorite"`
}

type Card struct {
	Kind      search.Kind           `json:"kind"`
	Query     string                `json:"query"`
	Title     string                `json:"title"`
	Entries   []Entry               `json:"entries"`
	Direction translation.Direction `json:"direction,omitempty"`
	Cached    bool                  `json:"cached,omitempty"`
}

// Results is either a card or a placeholder.
type Results struct {
	Card        *Card        `json:"card,omitempty"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`
}

// FavoriteChecker reports whether a word and definition pair is a favorite.
type FavoriteChecker func(word, definition string) bool

func ResultCard(result search.Result, isFavorite FavoriteChecker) Results {
	if isFavorite == nil {
		isFavorite = func(string, string) bool { return false }
	}
	entry := func(word, definition string) Entry {
		return Entry{Word: word, Definition: definition, Favorite: isFavorite(word, definition)}
	}

	card := &Card{Kind: result.Kind, Query: result.Query}
	switch result.Kind {
	case search.KindDictionary:
		card.Title = result.Word
		card.Entries = []Entry{entry(result.Word, result.Definition)}
	case search.KindReverse:
		card.Title = "English words for \"" + result.Query + "\""
		for _, match := range result.Matches {
			card.Entries = append(card.Entries, entry(match.Word, match.Definition))
		}
	case search.KindTranslation:
		card.Title = result.Query
		card.Direction = result.Direction
		card.Cached = result.Cached
		card.Entries = []Entry{entry(result.Query, result.Translation)}
	default:
		placeholder := NotFoundPlaceholder(result.Query)
		return Results{Placeholder: &placeholder}
	}
	return Results{Card: card}
}

// ErrorResults maps a search error to its placeholder. An empty query shows the empty placeholder.
func ErrorResults(err error) Results {
	var placeholder Placeholder
	var translationErr *search.TranslationError
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		placeholder = EmptyPlaceholder()
	case errors.Is(err, search.ErrServerOffline):
		placeholder = ServerOfflinePlaceholder()
	case errors.As(err, &translationErr):
		placeholder = ErrorPlaceholder(translationErr.Message)
	default:
		placeholder = ErrorPlaceholder(err.Error())
	}
	return Results{Placeholder: &placeholder}
}

type Sidebar struct {
	Favorites []Entry  `json:"favorites"`
	Recent    []string `json:"recent"`
}

// NewSidebar lists favorites as given and at most favorites.SidebarRecentLimit recent searches.
func NewSidebar(favs []favorites.Favorite, recent []string) Sidebar {
	if len(recent) > favorites.SidebarRecentLimit {
		recent = recent[:favorites.SidebarRecentLimit]
	}
	return Sidebar{
		Favorites: FavoriteEntries(favs),
		Recent:    recent,
	}
}

func FavoriteEntries(favs []favorites.Favorite) []Entry {
	entries := make([]Entry, 0, len(favs))
	for _, favorite := range favs {
		entries = append(entries, Entry{Word: favorite.Word, Definition: favorite.Definition, Favorite: true})
	}
	return entries
}

type WordOfDay struct {
	Today   *Entry        `json:"today,omitempty"`
	Date    string        `json:"date,omitempty"`
	History []wotd.Record `json:"history"`
	Error   string        `json:"error,omitempty"`
}

func NewWordOfDay(today *wotd.Record, history []wotd.Record, isFavorite FavoriteChecker) WordOfDay {
	model := WordOfDay{History: history}
	if model.History == nil {
		model.History = []wotd.Record{}
	}
	if today == nil {
		model.Error = "No word of the day is available."
		return model
	}
	favorite := isFavorite != nil && isFavorite(today.Word, today.Definition)
	model.Today = &Entry{Word: today.Word, Definition: today.Definition, Favorite: favorite}
	model.Date = today.Date
	return model
}

// Page is everything the dictionary page renders.
type Page struct {
	Title     string                `json:"title"`
	Banner    string                `json:"banner,omitempty"`
	Tabs      []Tab                 `json:"tabs"`
	ActiveTab TabID                 `json:"active_tab"`
	Query     string                `json:"query"`
	Mode      search.Mode           `json:"mode"`
	Direction translation.Direction `json:"direction"`
	Online    bool                  `json:"online"`
	Results   Results               `json:"results"`
	Favorites []Entry               `json:"favorites"`
	Sidebar   Sidebar               `json:"sidebar"`
	WordOfDay WordOfDay             `json:"wotd"`
}
