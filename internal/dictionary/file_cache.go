package dictionary

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FileCache keeps the last successfully fetched copy of each remote source on disk.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (f *FileCache) filePath(source string) string {
	sum := sha256.Sum256([]byte(source))
	return filepath.Join(f.rootDir, hex.EncodeToString(sum[:8])+".json")
}

// cache calls fetch and stores its result. When fetch fails, a previously stored copy is returned instead.
func (cache *FileCache) cache(source string, fetch func() ([]byte, error)) ([]byte, error) {
	contents, fetchErr := fetch()
	if fetchErr == nil {
		if err := cache.write(source, contents); err != nil {
			slog.Default().Warn("failed to write the dictionary cache",
				"source", source,
				"error", err,
			)
		}
		return contents, nil
	}

	cached, err := cache.read(source)
	if err != nil {
		return nil, fmt.Errorf("fetch > %w", fetchErr)
	}
	slog.Default().Warn("using the cached dictionary",
		"source", source,
		"error", fetchErr,
	)
	return cached, nil
}

func (cache *FileCache) write(source string, contents []byte) error {
	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", cache.rootDir, err)
	}
	if err := os.WriteFile(cache.filePath(source), contents, 0644); err != nil {
		return fmt.Errorf("os.WriteFile > %w", err)
	}
	return nil
}

func (cache *FileCache) read(source string) ([]byte, error) {
	contents, err := os.ReadFile(cache.filePath(source))
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile > %w", err)
	}
	return contents, nil
}
