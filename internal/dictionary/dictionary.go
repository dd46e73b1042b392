package dictionary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Entry is one English word and its Mizo definition.
type Entry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// Match is an entry found through the reverse index.
type Match struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// LoadError reports an unreachable or malformed dictionary source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dictionary from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseEntries decodes a flat JSON object of word to definition, keeping document order.
// A repeated key keeps its first position and takes the last value.
func ParseEntries(r io.Reader) ([]Entry, error) {
	decoder := json.NewDecoder(r)

	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("decoder.Token > %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("dictionary must be a JSON object, got %v", token)
	}

	var entries []Entry
	positions := make(map[string]int)
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("decoder.Token > %w", err)
		}
		word, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", keyToken)
		}

		var definition string
		if err := decoder.Decode(&definition); err != nil {
			return nil, fmt.Errorf("definition of %q must be a string: %w", word, err)
		}

		if i, exists := positions[word]; exists {
			entries[i].Definition = definition
			continue
		}
		positions[word] = len(entries)
		entries = append(entries, Entry{Word: word, Definition: definition})
	}

	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("decoder.Token > %w", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after the dictionary object")
	}
	return entries, nil
}

// Index is an immutable snapshot of a loaded dictionary.
type Index struct {
	entries     []Entry
	forward     map[string]int
	reverse     map[string][]Match
	definitions map[string][]Match
}

// NewIndex builds the forward and reverse mappings in one pass over entries.
func NewIndex(entries []Entry) *Index {
	index := &Index{
		entries:     entries,
		forward:     make(map[string]int, len(entries)),
		reverse:     make(map[string][]Match),
		definitions: make(map[string][]Match),
	}

	for i, entry := range entries {
		key := strings.ToLower(entry.Word)
		if _, exists := index.forward[key]; !exists {
			index.forward[key] = i
		}

		match := Match{Word: entry.Word, Definition: entry.Definition}
		for _, token := range Tokens(entry.Definition) {
			index.reverse[token] = append(index.reverse[token], match)
		}
		normalized := normalizeDefinition(entry.Definition)
		if normalized != "" {
			index.definitions[normalized] = append(index.definitions[normalized], match)
		}
	}
	return index
}

func normalizeDefinition(definition string) string {
	return strings.ToLower(strings.TrimSpace(definition))
}

func (index *Index) Lookup(word string) (Entry, bool) {
	i, ok := index.forward[strings.ToLower(strings.TrimSpace(word))]
	if !ok {
		return Entry{}, false
	}
	return index.entries[i], true
}

// ReverseLookup returns entries whose definition contains token.
// Short definitions such as "in" never produce tokens, so a query equal to a whole definition also matches.
func (index *Index) ReverseLookup(token string) []Match {
	token = strings.ToLower(strings.TrimSpace(token))
	matches := index.reverse[token]
	if len(matches) == 0 {
		matches = index.definitions[token]
	}
	if len(matches) == 0 {
		return nil
	}
	result := make([]Match, len(matches))
	copy(result, matches)
	return result
}

func (index *Index) Entries() []Entry {
	result := make([]Entry, len(index.entries))
	copy(result, index.entries)
	return result
}

func (index *Index) Len() int {
	return len(index.entries)
}

// TokenCount is the number of distinct reverse index keys.
func (index *Index) TokenCount() int {
	return len(index.reverse)
}

// MarshalJSON writes the entries back as a flat object in their original order.
func (index *Index) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range index.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Word)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal(%s) > %w", entry.Word, err)
		}
		value, err := json.Marshal(entry.Definition)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal(%s) > %w", entry.Definition, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Store owns the current Index and replaces it as a whole on every load.
type Store struct {
	loader *Loader
	source string

	mu    sync.RWMutex
	index *Index
}

func NewStore(source string, loader *Loader) *Store {
	return &Store{
		loader: loader,
		source: source,
		index:  NewIndex(nil),
	}
}

// NewStoreFromEntries returns a store that is already loaded with entries.
func NewStoreFromEntries(entries []Entry) *Store {
	return &Store{index: NewIndex(entries)}
}

// Load reads the source and swaps in a fresh index. On failure the previous index stays in place.
func (s *Store) Load(ctx context.Context) error {
	if s.loader == nil {
		return &LoadError{Source: s.source, Err: fmt.Errorf("no loader configured")}
	}
	contents, err := s.loader.Load(ctx, s.source)
	if err != nil {
		return &LoadError{Source: s.source, Err: err}
	}
	entries, err := ParseEntries(bytes.NewReader(contents))
	if err != nil {
		return &LoadError{Source: s.source, Err: fmt.Errorf("ParseEntries > %w", err)}
	}

	index := NewIndex(entries)
	s.mu.Lock()
	s.index = index
	s.mu.Unlock()
	return nil
}

func (s *Store) Index() *Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

func (s *Store) Lookup(word string) (Entry, bool) {
	return s.Index().Lookup(word)
}

func (s *Store) ReverseLookup(token string) []Match {
	return s.Index().ReverseLookup(token)
}

// Words returns the English keys in dictionary order.
func (s *Store) Words() []string {
	entries := s.Index().entries
	words := make([]string, len(entries))
	for i, entry := range entries {
		words[i] = entry.Word
	}
	return words
}

// Definition returns the definition of word using the forward lookup.
func (s *Store) Definition(word string) (string, bool) {
	entry, ok := s.Lookup(word)
	if !ok {
		return "", false
	}
	return entry.Definition, true
}

func (s *Store) Len() int {
	return s.Index().Len()
}
