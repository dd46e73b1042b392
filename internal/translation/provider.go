package translation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avast/retry-go"
)

//go:generate mockgen -source=provider.go -destination=../mocks/translation/mock_provider.go -package=mock_translation

// Provider translates text between two language codes.
type Provider interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
	Name() string
	// Configured reports whether the provider has the credentials it needs.
	Configured() bool
}

// ErrNotConfigured is returned by providers without credentials.
var ErrNotConfigured = errors.New("translation provider is not configured")

// IsRetryable determines if a provider error should trigger a retry
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Incomplete responses
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// 5xx and rate limiting
	if strings.Contains(errStr, "response error 5") || strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// Retry runs fn until it succeeds, returns a non-retryable error, or maxRetryAttempts retries are spent.
func Retry(ctx context.Context, maxRetryAttempts uint, fn func() error) error {
	return retry.Do(
		func() error {
			err := fn()
			if err != nil && !IsRetryable(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}
