package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore keeps every key in a single YAML document and rewrites it on each mutation.
type FileStore struct {
	path string

	mu     sync.RWMutex
	values map[string]string
}

// NewFileStore reads path if it exists. A missing file is an empty store.
func NewFileStore(path string) (*FileStore, error) {
	store := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, &Error{Op: OpOpen, Err: fmt.Errorf("os.ReadFile(%s) > %w", path, err)}
	}
	if err := yaml.Unmarshal(contents, &store.values); err != nil {
		return nil, &Error{Op: OpOpen, Err: fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)}
	}
	if store.values == nil {
		store.values = make(map[string]string)
	}
	return store, nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return []byte(value), nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.values[key]
	s.values[key] = string(value)
	if err := s.flush(); err != nil {
		if existed {
			s.values[key] = previous
		} else {
			delete(s.values, key)
		}
		return &Error{Op: OpSet, Key: key, Err: err}
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.values[key]
	if !existed {
		return nil
	}
	delete(s.values, key)
	if err := s.flush(); err != nil {
		s.values[key] = previous
		return &Error{Op: OpDelete, Key: key, Err: err}
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

// flush writes to a temporary file and renames it so a crash never leaves a truncated document.
func (s *FileStore) flush() error {
	contents, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("yaml.Marshal > %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp > %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(contents); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file.Write > %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", s.path, err)
	}
	return nil
}
