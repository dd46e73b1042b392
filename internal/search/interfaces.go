package search

import (
	"context"

	"github.com/at-ishikawa/mizodict/internal/dictionary"
	"github.com/at-ishikawa/mizodict/internal/translation"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/search/mock_interfaces.go -package=mock_search

type Dictionary interface {
	Lookup(word string) (dictionary.Entry, bool)
	ReverseLookup(token string) []dictionary.Match
}

type Connectivity interface {
	Connected() bool
}

// Translator calls the remote translation service.
type Translator interface {
	Translate(ctx context.Context, direction translation.Direction, word string) (string, error)
}

// Recorder receives every query that produced a result.
type Recorder interface {
	AddRecent(ctx context.Context, query string)
}
