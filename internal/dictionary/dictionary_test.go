package dictionary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntries(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Entry
		wantErr bool
	}{
		{
			name:  "keeps document order",
			input: `{"zebra": "sakawr", "apple": "theipui", "house": "in"}`,
			want: []Entry{
				{Word: "zebra", Definition: "sakawr"},
				{Word: "apple", Definition: "theipui"},
				{Word: "house", Definition: "in"},
			},
		},
		{
			name:  "repeated key keeps first position and last value",
			input: `{"water": "tui", "fire": "mei", "water": "tuithiang"}`,
			want: []Entry{
				{Word: "water", Definition: "tuithiang"},
				{Word: "fire", Definition: "mei"},
			},
		},
		{
			name:  "empty object",
			input: `{}`,
			want:  nil,
		},
		{
			name:    "array root",
			input:   `["house", "in"]`,
			wantErr: true,
		},
		{
			name:    "non string definition",
			input:   `{"house": 1}`,
			wantErr: true,
		},
		{
			name:    "nested object",
			input:   `{"house": {"mizo": "in"}}`,
			wantErr: true,
		},
		{
			name:    "truncated document",
			input:   `{"house": "in"`,
			wantErr: true,
		},
		{
			name:    "trailing data",
			input:   `{"house": "in"} {}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntries(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newTestIndex() *Index {
	return NewIndex([]Entry{
		{Word: "house", Definition: "in"},
		{Word: "home", Definition: "in, chenna hmun"},
		{Word: "dwelling", Definition: "chenna"},
		{Word: "House", Definition: "in lian"},
		{Word: "water", Definition: "tui"},
	})
}

func TestIndex_Lookup(t *testing.T) {
	index := newTestIndex()

	tests := []struct {
		name   string
		word   string
		want   Entry
		wantOK bool
	}{
		{
			name:   "exact key",
			word:   "house",
			want:   Entry{Word: "house", Definition: "in"},
			wantOK: true,
		},
		{
			name:   "case insensitive and first key wins",
			word:   "HOUSE",
			want:   Entry{Word: "house", Definition: "in"},
			wantOK: true,
		},
		{
			name:   "surrounding spaces are ignored",
			word:   "  water ",
			want:   Entry{Word: "water", Definition: "tui"},
			wantOK: true,
		},
		{
			name: "missing word",
			word: "xyz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := index.Lookup(tt.word)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndex_ReverseLookup(t *testing.T) {
	index := newTestIndex()

	tests := []struct {
		name  string
		token string
		want  []Match
	}{
		{
			name:  "token in several definitions keeps dictionary order",
			token: "chenna",
			want: []Match{
				{Word: "home", Definition: "in, chenna hmun"},
				{Word: "dwelling", Definition: "chenna"},
			},
		},
		{
			name:  "token is lowercased",
			token: "HMUN",
			want:  []Match{{Word: "home", Definition: "in, chenna hmun"}},
		},
		{
			name:  "whole short definition",
			token: "in",
			want:  []Match{{Word: "house", Definition: "in"}},
		},
		{
			name:  "no match",
			token: "xyz",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, index.ReverseLookup(tt.token))
		})
	}
}

func TestIndex_ReverseLookupReturnsCopy(t *testing.T) {
	index := newTestIndex()
	got := index.ReverseLookup("chenna")
	got[0].Word = "changed"
	assert.Equal(t, "home", index.ReverseLookup("chenna")[0].Word)
}

func TestIndex_ReverseIndexCompleteness(t *testing.T) {
	entries := []Entry{
		{Word: "love", Definition: "hmangaihna, duhna"},
		{Word: "peace", Definition: "remna; muanna (thlamuanna)"},
		{Word: "light", Definition: "êng, ṭhalna"},
	}
	index := NewIndex(entries)

	for _, entry := range entries {
		for _, token := range Tokens(entry.Definition) {
			matches := index.ReverseLookup(token)
			assert.Contains(t, matches, Match{Word: entry.Word, Definition: entry.Definition}, token)
		}
	}
	assert.Equal(t, 7, index.TokenCount())
}

func TestIndex_MarshalJSON(t *testing.T) {
	index := NewIndex([]Entry{
		{Word: "zebra", Definition: "sakawr"},
		{Word: "quote", Definition: `"thu"`},
	})
	got, err := index.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":"sakawr","quote":"\"thu\""}`, string(got))

	reparsed, err := ParseEntries(strings.NewReader(string(got)))
	require.NoError(t, err)
	assert.Equal(t, index.Entries(), reparsed)
}

func TestStore_Load(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "dictionary.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"house": "in", "water": "tui"}`), 0644))
	malformed := filepath.Join(dir, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte(`{"house": `), 0644))

	t.Run("loads file", func(t *testing.T) {
		store := NewStore(valid, NewLoader(""))
		require.NoError(t, store.Load(context.Background()))
		assert.Equal(t, 2, store.Len())
		assert.Equal(t, []string{"house", "water"}, store.Words())

		definition, ok := store.Definition("House")
		assert.True(t, ok)
		assert.Equal(t, "in", definition)
	})

	t.Run("missing file", func(t *testing.T) {
		store := NewStore(filepath.Join(dir, "missing.json"), NewLoader(""))
		err := store.Load(context.Background())

		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Equal(t, filepath.Join(dir, "missing.json"), loadErr.Source)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("malformed file keeps previous index", func(t *testing.T) {
		store := NewStore(valid, NewLoader(""))
		require.NoError(t, store.Load(context.Background()))

		store.source = malformed
		err := store.Load(context.Background())
		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Equal(t, 2, store.Len())
	})
}

func TestNewStoreFromEntries(t *testing.T) {
	store := NewStoreFromEntries([]Entry{{Word: "house", Definition: "in"}})

	entry, ok := store.Lookup("HoUsE")
	assert.True(t, ok)
	assert.Equal(t, "in", entry.Definition)
	assert.Equal(t, []Match{{Word: "house", Definition: "in"}}, store.ReverseLookup("in"))

	err := store.Load(context.Background())
	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}
