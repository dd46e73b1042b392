// Package search resolves a query against the dictionary or the translation service.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/mizodict/internal/dictionary"
	"github.com/at-ishikawa/mizodict/internal/metrics"
	"github.com/at-ishikawa/mizodict/internal/translation"
)

var (
	// ErrEmptyQuery is returned for blank queries. Callers treat it as a no-op.
	ErrEmptyQuery = errors.New("empty query")
	// ErrServerOffline is returned for online searches while the translation service is unusable.
	ErrServerOffline = errors.New("translation server is offline")
)

// TranslationError is a failed remote translation. Message is safe to show to the user.
type TranslationError struct {
	Message string
	Err     error
}

func (e *TranslationError) Error() string {
	return "translation error: " + e.Message
}

func (e *TranslationError) Unwrap() error { return e.Err }

type Kind string

const (
	KindDictionary  Kind = "dictionary"
	KindReverse     Kind = "reverse"
	KindTranslation Kind = "translation"
	KindNotFound    Kind = "not_found"
)

type Query struct {
	Text      string
	Mode      Mode
	Direction translation.Direction
}

type Result struct {
	Kind        Kind                  `json:"kind"`
	Query       string                `json:"query"`
	Word        string                `json:"word,omitempty"`
	Definition  string                `json:"definition,omitempty"`
	Matches     []dictionary.Match    `json:"matches,omitempty"`
	Translation string                `json:"translation,omitempty"`
	Direction   translation.Direction `json:"direction,omitempty"`
	Cached      bool                  `json:"cached,omitempty"`
}

type Engine struct {
	dictionary   Dictionary
	connectivity Connectivity
	translator   Translator
	recorder     Recorder
	cache        translation.Cache
	logger       *slog.Logger
}

type Option func(*Engine)

func WithCache(cache translation.Cache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func NewEngine(dictionary Dictionary, connectivity Connectivity, translator Translator, recorder Recorder, opts ...Option) *Engine {
	engine := &Engine{
		dictionary:   dictionary,
		connectivity: connectivity,
		translator:   translator,
		recorder:     recorder,
		cache:        translation.NewMemoryCache("search"),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	engine.logger = engine.logger.With("component", "search")
	return engine
}

// Search resolves q. Every result returned without an error is recorded as a recent search.
func (e *Engine) Search(ctx context.Context, q Query) (Result, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return Result{}, ErrEmptyQuery
	}
	mode := q.Mode
	if mode == "" {
		mode = ModeOffline
	}

	var (
		result Result
		err    error
	)
	switch mode {
	case ModeOffline:
		result = e.searchOffline(text)
	case ModeOnline:
		result, err = e.searchOnline(ctx, text, q.Direction)
	default:
		return Result{}, fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		return Result{}, err
	}

	metrics.SearchesTotal.WithLabelValues(string(mode), string(result.Kind)).Inc()
	if e.recorder != nil {
		e.recorder.AddRecent(ctx, text)
	}
	return result, nil
}

// searchOffline prefers a forward hit over a reverse hit.
func (e *Engine) searchOffline(text string) Result {
	normalized := strings.ToLower(text)
	if entry, ok := e.dictionary.Lookup(normalized); ok {
		return Result{
			Kind:       KindDictionary,
			Query:      text,
			Word:       entry.Word,
			Definition: entry.Definition,
		}
	}
	if matches := e.dictionary.ReverseLookup(normalized); len(matches) > 0 {
		return Result{
			Kind:    KindReverse,
			Query:   text,
			Matches: matches,
		}
	}
	return Result{Kind: KindNotFound, Query: text}
}

func (e *Engine) searchOnline(ctx context.Context, text string, direction translation.Direction) (Result, error) {
	if e.connectivity == nil || !e.connectivity.Connected() {
		metrics.SearchesTotal.WithLabelValues(string(ModeOnline), "offline").Inc()
		return Result{}, ErrServerOffline
	}
	if direction == "" {
		direction = translation.MizoToEnglish
	}

	result := Result{
		Kind:      KindTranslation,
		Query:     text,
		Direction: direction,
	}
	if cached, ok := e.cache.Get(direction, text); ok {
		result.Translation = cached
		result.Cached = true
		return result, nil
	}

	translated, err := e.translator.Translate(ctx, direction, text)
	if err != nil {
		e.logger.Warn("translation failed", "query", text, "direction", direction, "error", err)
		metrics.SearchesTotal.WithLabelValues(string(ModeOnline), "error").Inc()
		return Result{}, &TranslationError{Message: err.Error(), Err: err}
	}
	e.cache.Set(direction, text, translated)

	result.Translation = translated
	return result, nil
}
