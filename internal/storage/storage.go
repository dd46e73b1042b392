// Package storage provides the durable key-value store that keeps favorites, recent searches
// and the word of the day between sessions.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys used by the dictionary application.
const (
	KeyFavorites      = "favorites"
	KeyRecentSearches = "recentSearches"
	KeyCurrentWotd    = "currentWotd"
	KeyWotdDate       = "wotdDate"
	KeyWotdHistory    = "wotdHistory"
)

// ErrKeyNotFound is returned by Get when the key has never been written.
var ErrKeyNotFound = errors.New("storage: key not found")

const (
	OpOpen   = "open"
	OpGet    = "get"
	OpSet    = "set"
	OpDelete = "delete"
)

// Error wraps a failure of the underlying store with the operation and key.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Store is a string-keyed byte store. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetJSON decodes the JSON value stored at key into v.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &Error{Op: OpGet, Key: key, Err: fmt.Errorf("json.Unmarshal > %w", err)}
	}
	return nil
}

// SetJSON encodes v as JSON and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &Error{Op: OpSet, Key: key, Err: fmt.Errorf("json.Marshal > %w", err)}
	}
	return s.Set(ctx, key, data)
}
