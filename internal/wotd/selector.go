// Package wotd picks one dictionary entry per calendar day and keeps a short history.
package wotd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/at-ishikawa/mizodict/internal/storage"
)

const (
	DateLayout         = "2006-01-02"
	DefaultHistorySize = 7
)

var ErrEmptyDictionary = errors.New("dictionary has no words")

type Record struct {
	Date       string `json:"date"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// WordSource is the dictionary the word is picked from.
type WordSource interface {
	Words() []string
	Definition(word string) (string, bool)
}

type Selector struct {
	store       storage.Store
	words       WordSource
	now         func() time.Time
	rand        *rand.Rand
	historySize int
	logger      *slog.Logger

	mu sync.Mutex
	// last and history are the in-memory copies used when storage cannot be read.
	last    *Record
	history []Record
}

type Option func(*Selector)

func WithClock(now func() time.Time) Option {
	return func(s *Selector) {
		s.now = now
	}
}

func WithRand(r *rand.Rand) Option {
	return func(s *Selector) {
		s.rand = r
	}
}

func WithHistorySize(size int) Option {
	return func(s *Selector) {
		if size > 0 {
			s.historySize = size
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) {
		s.logger = logger
	}
}

func NewSelector(store storage.Store, words WordSource, opts ...Option) *Selector {
	selector := &Selector{
		store:       store,
		words:       words,
		now:         time.Now,
		rand:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		historySize: DefaultHistorySize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(selector)
	}
	selector.logger = selector.logger.With("component", "wotd")
	return selector
}

func (s *Selector) today() string {
	return s.now().Local().Format(DateLayout)
}

// Today returns the word of the day, picking and persisting a new one when the stored date is not today.
func (s *Selector) Today(ctx context.Context) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	word, date := s.latest(ctx)
	if date == today && word != "" {
		if definition, ok := s.words.Definition(word); ok {
			return Record{Date: today, Word: word, Definition: definition}, nil
		}
		s.logger.Info("stored word of the day is no longer in the dictionary", "word", word)
	}

	words := s.words.Words()
	if len(words) == 0 {
		return Record{}, ErrEmptyDictionary
	}
	word = words[s.rand.IntN(len(words))]
	definition, _ := s.words.Definition(word)
	record := Record{Date: today, Word: word, Definition: definition}
	s.last = &record

	if err := s.store.Set(ctx, storage.KeyCurrentWotd, []byte(word)); err != nil {
		s.logger.Warn("failed to persist the word of the day", "error", err)
	}
	if err := s.store.Set(ctx, storage.KeyWotdDate, []byte(today)); err != nil {
		s.logger.Warn("failed to persist the word of the day date", "error", err)
	}
	s.appendHistory(ctx, record)
	return record, nil
}

// latest returns the persisted word unless the in-memory pick is newer, which happens when storage writes failed.
func (s *Selector) latest(ctx context.Context) (word, date string) {
	word, date = s.readCurrent(ctx)
	if s.last != nil && s.last.Date > date {
		return s.last.Word, s.last.Date
	}
	return word, date
}

func (s *Selector) readCurrent(ctx context.Context) (word, date string) {
	rawWord, err := s.store.Get(ctx, storage.KeyCurrentWotd)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warn("failed to read the word of the day", "error", err)
		}
		return "", ""
	}
	rawDate, err := s.store.Get(ctx, storage.KeyWotdDate)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warn("failed to read the word of the day date", "error", err)
		}
		return "", ""
	}
	return string(rawWord), string(rawDate)
}

// appendHistory prepends record, replacing an entry with the same date.
func (s *Selector) appendHistory(ctx context.Context, record Record) {
	history, err := s.readHistory(ctx)
	if err != nil {
		s.logger.Warn("failed to read the word of the day history, using the in-memory copy", "error", err)
		history = s.history
	}

	updated := make([]Record, 0, len(history)+1)
	updated = append(updated, record)
	for _, existing := range history {
		if existing.Date != record.Date {
			updated = append(updated, existing)
		}
	}
	if len(updated) > s.historySize {
		updated = updated[:s.historySize]
	}
	s.history = updated

	if err := storage.SetJSON(ctx, s.store, storage.KeyWotdHistory, updated); err != nil {
		s.logger.Warn("failed to persist the word of the day history", "error", err)
	}
}

func (s *Selector) readHistory(ctx context.Context) ([]Record, error) {
	var history []Record
	if err := storage.GetJSON(ctx, s.store, storage.KeyWotdHistory, &history); err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage.GetJSON > %w", err)
	}
	return history, nil
}

// History re-reads the persisted history, newest first.
// When storage cannot be read it returns the history kept in memory for this session.
func (s *Selector) History(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.readHistory(ctx)
	if err != nil {
		if s.history == nil {
			return nil, err
		}
		s.logger.Warn("failed to read the word of the day history, using the in-memory copy", "error", err)
		return slices.Clone(s.history), nil
	}
	return history, nil
}

// Current re-reads the persisted word of the day without picking a new one.
func (s *Selector) Current(ctx context.Context) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	word, date := s.latest(ctx)
	if word == "" {
		return Record{}, false
	}
	definition, _ := s.words.Definition(word)
	return Record{Date: date, Word: word, Definition: definition}, true
}
