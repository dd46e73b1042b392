package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/mizodict/internal/metrics"
)

var (
	ErrEmptyText     = errors.New("no word provided")
	ErrNoTranslation = errors.New("translation failed")
)

const DefaultBatchLimit = 20

// Translation is the outcome of Service.Translate.
type Translation struct {
	Input     string
	Output    string
	Direction Direction
	Model     string
	// Cached is true when the output came from the cache without calling the provider.
	Cached bool
}

type BatchItem struct {
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	Direction Direction `json:"direction"`
}

// Service is the server side of the translation endpoints: a provider behind a cache.
type Service struct {
	provider   Provider
	cache      Cache
	batchLimit int
	logger     *slog.Logger
}

func NewService(provider Provider, cache Cache, batchLimit int, logger *slog.Logger) *Service {
	if batchLimit <= 0 {
		batchLimit = DefaultBatchLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider:   provider,
		cache:      cache,
		batchLimit: batchLimit,
		logger:     logger.With("component", "translation"),
	}
}

func (s *Service) ModelName() string {
	return s.provider.Name()
}

func (s *Service) Translate(ctx context.Context, direction Direction, text string) (Translation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Translation{}, ErrEmptyText
	}

	result := Translation{
		Input:     text,
		Direction: direction,
		Model:     s.provider.Name(),
	}
	if cached, ok := s.cache.Get(direction, text); ok {
		s.logger.Debug("cache hit", "text", text, "direction", direction)
		result.Output = cached
		result.Cached = true
		return result, nil
	}

	source, target := direction.Languages()
	output, err := s.provider.Translate(ctx, text, source, target)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(s.provider.Name(), "error").Inc()
		s.logger.Warn("translation failed",
			"text", text,
			"source", source,
			"target", target,
			"error", err,
		)
		return Translation{}, fmt.Errorf("%w: provider.Translate > %w", ErrNoTranslation, err)
	}
	metrics.ProviderRequestsTotal.WithLabelValues(s.provider.Name(), "success").Inc()

	output = strings.TrimSpace(output)
	if output == "" {
		return Translation{}, fmt.Errorf("%w: empty output for %q", ErrNoTranslation, text)
	}
	s.cache.Set(direction, text, output)
	s.logger.Debug("translated", "text", text, "translation", output, "direction", direction)

	result.Output = output
	return result, nil
}

// BatchTranslate translates at most the batch limit of words. Words that fail are left out.
func (s *Service) BatchTranslate(ctx context.Context, direction Direction, words []string) []BatchItem {
	if len(words) > s.batchLimit {
		words = words[:s.batchLimit]
	}

	items := make([]BatchItem, 0, len(words))
	for _, word := range words {
		translated, err := s.Translate(ctx, direction, word)
		if err != nil {
			continue
		}
		items = append(items, BatchItem{
			Input:     word,
			Output:    translated.Output,
			Direction: direction,
		})
	}
	return items
}

func (s *Service) Status() Status {
	configured := s.provider.Configured()
	return Status{
		ModelLoaded:      configured,
		ModelName:        s.provider.Name(),
		APIKeyConfigured: configured,
		CacheSize: CacheSize{
			MizoToEnglish: s.cache.Len(MizoToEnglish),
			EnglishToMizo: s.cache.Len(EnglishToMizo),
		},
		Status: "online",
	}
}

func (s *Service) ClearCache() {
	s.cache.Clear()
	s.logger.Info("cache cleared")
}
