package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	upsertMySQL = `INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value), updated_at = CURRENT_TIMESTAMP`
	upsertSQLite = `INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?)
		ON CONFLICT(entry_key) DO UPDATE SET entry_value = excluded.entry_value, updated_at = CURRENT_TIMESTAMP`
)

// SQLStore keeps values in the kv_entries table of a MySQL or SQLite database.
type SQLStore struct {
	db     *sqlx.DB
	upsert string
}

// NewSQLStore wraps an opened and migrated database. The upsert dialect follows db.DriverName().
func NewSQLStore(db *sqlx.DB) *SQLStore {
	upsert := upsertMySQL
	if db.DriverName() == "sqlite3" {
		upsert = upsertSQLite
	}
	return &SQLStore{db: db, upsert: upsert}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT entry_value FROM kv_entries WHERE entry_key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, &Error{Op: OpGet, Key: key, Err: fmt.Errorf("db.GetContext(kv_entries) > %w", err)}
	}
	return []byte(value), nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.upsert, key, string(value)); err != nil {
		return &Error{Op: OpSet, Key: key, Err: fmt.Errorf("db.ExecContext(upsert kv_entries) > %w", err)}
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE entry_key = ?", key); err != nil {
		return &Error{Op: OpDelete, Key: key, Err: fmt.Errorf("db.ExecContext(delete kv_entries) > %w", err)}
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
