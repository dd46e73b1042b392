// Package app wires the dictionary application state together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/mizodict/internal/config"
	"github.com/at-ishikawa/mizodict/internal/connectivity"
	"github.com/at-ishikawa/mizodict/internal/dictionary"
	"github.com/at-ishikawa/mizodict/internal/favorites"
	"github.com/at-ishikawa/mizodict/internal/search"
	"github.com/at-ishikawa/mizodict/internal/storage"
	"github.com/at-ishikawa/mizodict/internal/translation"
	"github.com/at-ishikawa/mizodict/internal/view"
	"github.com/at-ishikawa/mizodict/internal/wotd"
)

const (
	Title = "Mizo Dictionary"

	translationTimeout = 30 * time.Second
)

// App owns every piece of state the page and the CLI share.
type App struct {
	Config     *config.Config
	Storage    storage.Store
	Dictionary *dictionary.Store
	Favorites  *favorites.Store
	WordOfDay  *wotd.Selector
	Checker    *connectivity.Checker
	Client     *translation.Client
	Engine     *search.Engine
	// LoadErr is the dictionary load failure shown as a banner. The app still works with an empty dictionary.
	LoadErr error

	logger *slog.Logger
}

// New opens the configured storage and builds the app on top of it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage.Open() > %w", err)
	}
	return NewWithStorage(ctx, cfg, store, logger), nil
}

// NewWithStorage builds the app with an injected store. The dictionary is loaded once.
func NewWithStorage(ctx context.Context, cfg *config.Config, store storage.Store, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	dict := dictionary.NewStore(cfg.Dictionary.Source, dictionary.NewLoader(cfg.Dictionary.CacheDirectory))
	var loadErr error
	if err := dict.Load(ctx); err != nil {
		logger.Error("failed to load the dictionary", "source", cfg.Dictionary.Source, "error", err)
		loadErr = err
	}

	client := translation.NewClient(cfg.Translation.BaseURL, translationTimeout)
	checker := connectivity.NewChecker(client, cfg.Translation.ProbeTimeout, cfg.Translation.ProbeInterval, logger)
	favs := favorites.Open(ctx, store, favorites.Options{
		MaxFavorites: cfg.Favorites.MaxFavorites,
		MaxRecent:    cfg.Favorites.MaxRecent,
		Logger:       logger,
	})
	selector := wotd.NewSelector(store, dict,
		wotd.WithHistorySize(cfg.WordOfDay.HistorySize),
		wotd.WithLogger(logger),
	)
	engine := search.NewEngine(dict, checker, client, favs, search.WithLogger(logger))

	return &App{
		Config:     cfg,
		Storage:    store,
		Dictionary: dict,
		Favorites:  favs,
		WordOfDay:  selector,
		Checker:    checker,
		Client:     client,
		Engine:     engine,
		LoadErr:    loadErr,
		logger:     logger,
	}
}

// Banner is the message shown when the dictionary could not be loaded.
func (a *App) Banner() string {
	if a.LoadErr == nil {
		return ""
	}
	return "Failed to load the dictionary. Only online translation is available."
}

// PageRequest is what the page was asked to show.
type PageRequest struct {
	Tab       view.TabID
	Query     string
	Mode      search.Mode
	Direction translation.Direction
}

// Page runs the requested search and builds the page view model.
func (a *App) Page(ctx context.Context, req PageRequest) view.Page {
	if req.Tab == "" {
		req.Tab = view.TabDictionary
	}
	if req.Mode == "" {
		req.Mode = search.ModeOffline
	}
	if req.Direction == "" {
		req.Direction = translation.MizoToEnglish
	}

	page := view.Page{
		Title:     Title,
		Banner:    a.Banner(),
		Tabs:      view.Tabs(req.Tab),
		ActiveTab: req.Tab,
		Query:     req.Query,
		Mode:      req.Mode,
		Direction: req.Direction,
		Online:    a.Checker.Connected(),
		Favorites: view.FavoriteEntries(a.Favorites.List()),
	}

	switch req.Tab {
	case view.TabDictionary:
		page.Results = a.Results(ctx, search.Query{Text: req.Query, Mode: req.Mode, Direction: req.Direction})
	case view.TabWordOfDay:
		page.WordOfDay = a.WordOfDayView(ctx)
	}
	// The sidebar is built last so it includes the query that was just searched.
	page.Sidebar = view.NewSidebar(a.Favorites.List(), a.Favorites.Recent())
	return page
}

// Results searches q and maps the outcome to a card or a placeholder.
func (a *App) Results(ctx context.Context, q search.Query) view.Results {
	result, err := a.Engine.Search(ctx, q)
	if err != nil {
		if !errors.Is(err, search.ErrEmptyQuery) {
			a.logger.Info("search failed", "query", q.Text, "mode", q.Mode, "error", err)
		}
		return view.ErrorResults(err)
	}
	return view.ResultCard(result, a.Favorites.IsFavorite)
}

func (a *App) WordOfDayView(ctx context.Context) view.WordOfDay {
	var today *wotd.Record
	record, err := a.WordOfDay.Today(ctx)
	if err != nil {
		a.logger.Warn("failed to pick the word of the day", "error", err)
	} else {
		today = &record
	}

	history, err := a.WordOfDay.History(ctx)
	if err != nil {
		a.logger.Warn("failed to read the word of the day history", "error", err)
	}
	return view.NewWordOfDay(today, history, a.Favorites.IsFavorite)
}

// Close releases the translation client and the storage.
func (a *App) Close() error {
	return errors.Join(a.Client.Close(), a.Storage.Close())
}
