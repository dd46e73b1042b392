// Package favorites keeps the favorite entries and the recent searches.
package favorites

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/at-ishikawa/mizodict/internal/storage"
)

const (
	DefaultMaxFavorites = 50
	DefaultMaxRecent    = 10
	// SidebarRecentLimit is how many recent searches the sidebar shows.
	SidebarRecentLimit = 5
)

const keySeparator = "|"

type Favorite struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// Key is the composite identity of a favorite.
func (f Favorite) Key() string {
	return f.Word + keySeparator + f.Definition
}

// ParseKey splits a composite key on its first separator. Definitions may contain the separator.
func ParseKey(key string) Favorite {
	word, definition, _ := strings.Cut(key, keySeparator)
	return Favorite{Word: word, Definition: definition}
}

type Options struct {
	MaxFavorites int
	MaxRecent    int
	Logger       *slog.Logger
}

// Store holds favorites in insertion order and recent searches newest first.
// Every mutation is written through to storage. Write failures are logged and the in-memory state is kept.
type Store struct {
	storage      storage.Store
	maxFavorites int
	maxRecent    int
	logger       *slog.Logger

	mu        sync.RWMutex
	favorites []string
	recent    []string
}

// Open restores both collections from s. Unreadable values are logged and start empty.
func Open(ctx context.Context, s storage.Store, opts Options) *Store {
	if opts.MaxFavorites <= 0 {
		opts.MaxFavorites = DefaultMaxFavorites
	}
	if opts.MaxRecent <= 0 {
		opts.MaxRecent = DefaultMaxRecent
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	store := &Store{
		storage:      s,
		maxFavorites: opts.MaxFavorites,
		maxRecent:    opts.MaxRecent,
		logger:       opts.Logger.With("component", "favorites"),
	}
	store.favorites = store.restore(ctx, storage.KeyFavorites, store.maxFavorites, true)
	store.recent = store.restore(ctx, storage.KeyRecentSearches, store.maxRecent, false)
	return store
}

// restore reads a list and enforces the uniqueness and bound invariants on it.
// Favorites are stored oldest first, so keepLast keeps the newest when trimming.
func (s *Store) restore(ctx context.Context, key string, limit int, keepLast bool) []string {
	var values []string
	if err := storage.GetJSON(ctx, s.storage, key, &values); err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warn("failed to restore from storage", "key", key, "error", err)
		}
		return nil
	}

	unique := make([]string, 0, len(values))
	for _, value := range values {
		if !slices.Contains(unique, value) {
			unique = append(unique, value)
		}
	}
	if len(unique) > limit {
		if keepLast {
			unique = unique[len(unique)-limit:]
		} else {
			unique = unique[:limit]
		}
	}
	return unique
}

func (s *Store) persist(ctx context.Context, key string, values []string) {
	if err := storage.SetJSON(ctx, s.storage, key, values); err != nil {
		s.logger.Warn("failed to persist to storage", "key", key, "error", err)
	}
}

// Toggle removes the favorite when present, otherwise adds it as the newest one,
// evicting the oldest when the store is full. It returns whether the entry is now a favorite.
func (s *Store) Toggle(ctx context.Context, word, definition string) bool {
	key := Favorite{Word: word, Definition: definition}.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.favorites, key); i >= 0 {
		s.favorites = slices.Delete(s.favorites, i, i+1)
		s.persist(ctx, storage.KeyFavorites, s.favorites)
		return false
	}

	if len(s.favorites) >= s.maxFavorites {
		evicted := s.favorites[:len(s.favorites)-s.maxFavorites+1]
		s.logger.Debug("evicting favorites", "keys", evicted)
		s.favorites = slices.Clone(s.favorites[len(evicted):])
	}
	s.favorites = append(s.favorites, key)
	s.persist(ctx, storage.KeyFavorites, s.favorites)
	return true
}

func (s *Store) IsFavorite(word, definition string) bool {
	key := Favorite{Word: word, Definition: definition}.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.favorites, key)
}

// List returns the favorites newest first.
func (s *Store) List() []Favorite {
	s.mu.RLock()
	defer s.mu.RUnlock()

	favorites := make([]Favorite, 0, len(s.favorites))
	for i := len(s.favorites) - 1; i >= 0; i-- {
		favorites = append(favorites, ParseKey(s.favorites[i]))
	}
	return favorites
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.favorites)
}

// AddRecent moves query to the front of the recent searches.
func (s *Store) AddRecent(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recent := make([]string, 0, len(s.recent)+1)
	recent = append(recent, query)
	for _, existing := range s.recent {
		if existing != query {
			recent = append(recent, existing)
		}
	}
	if len(recent) > s.maxRecent {
		recent = recent[:s.maxRecent]
	}
	s.recent = recent
	s.persist(ctx, storage.KeyRecentSearches, s.recent)
}

// Recent returns the recent searches, most recent first.
func (s *Store) Recent() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recent)
}

func (s *Store) ClearRecent(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recent = nil
	if err := s.storage.Delete(ctx, storage.KeyRecentSearches); err != nil {
		s.logger.Warn("failed to delete from storage", "key", storage.KeyRecentSearches, "error", err)
	}
}
