package dictionary

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Loader reads a dictionary source, which is either an http(s) URL or a local file path.
type Loader struct {
	client    *resty.Client
	fileCache *FileCache
}

// NewLoader returns a loader. Remote sources are cached under cacheDirectory unless it is empty.
func NewLoader(cacheDirectory string) *Loader {
	loader := &Loader{
		client: resty.New(),
	}
	if cacheDirectory != "" {
		loader.fileCache = NewFileCache(cacheDirectory)
	}
	return loader
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func (l *Loader) Load(ctx context.Context, source string) ([]byte, error) {
	if !isRemote(source) {
		contents, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("os.ReadFile(%s) > %w", source, err)
		}
		return contents, nil
	}

	fetch := func() ([]byte, error) {
		return l.fetch(ctx, source)
	}
	if l.fileCache == nil {
		return fetch()
	}
	contents, err := l.fileCache.cache(source, fetch)
	if err != nil {
		return nil, fmt.Errorf("fileCache.cache > %w", err)
	}
	return contents, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	res, err := l.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return res.Body(), nil
}
