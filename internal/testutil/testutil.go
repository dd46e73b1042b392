// Package testutil provides shared test helpers for creating config and dictionary fixtures.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Pair is one dictionary entry fixture.
type Pair struct {
	Word       string
	Definition string
}

// DefaultPairs is a small English to Mizo word list used across tests.
var DefaultPairs = []Pair{
	{Word: "house", Definition: "in"},
	{Word: "dog", Definition: "ui"},
	{Word: "water", Definition: "tui"},
	{Word: "love", Definition: "hmangaihna, duhna"},
	{Word: "beautiful", Definition: "mawi, hmêltha"},
}

// DictionaryJSON encodes pairs as a flat JSON object, keeping their order.
func DictionaryJSON(t *testing.T, pairs ...Pair) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pair := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(pair.Word)
		require.NoError(t, err)
		value, err := json.Marshal(pair.Definition)
		require.NoError(t, err)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

// WriteDictionary writes a dictionary file into dir and returns its path.
// DefaultPairs are used when no pairs are given.
func WriteDictionary(t *testing.T, dir string, pairs ...Pair) string {
	t.Helper()
	if len(pairs) == 0 {
		pairs = DefaultPairs
	}

	path := filepath.Join(dir, "dictionary.json")
	require.NoError(t, os.WriteFile(path, DictionaryJSON(t, pairs...), 0644))
	return path
}

// SetupTestConfig creates a dictionary and a config file using the file storage in tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dictionaryPath := WriteDictionary(t, tmpDir)
	configContent := fmt.Sprintf(`dictionary:
  source: %s
  cache_directory: %s
translation:
  base_url: http://127.0.0.1:1/api
  probe_timeout: 100ms
storage:
  driver: file
  file:
    path: %s
`,
		dictionaryPath,
		filepath.Join(tmpDir, "cache"),
		filepath.Join(tmpDir, "data", "storage.yml"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithTranslationServer points the config at a translation service base URL.
func SetupTestConfigWithTranslationServer(t *testing.T, tmpDir, baseURL string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = bytes.Replace(content, []byte("http://127.0.0.1:1/api"), []byte(baseURL), 1)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}
