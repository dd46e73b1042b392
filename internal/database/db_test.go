package database

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/mizodict/internal/config"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
	}{
		{
			name: "creates connection with valid config",
			cfg: config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				Database: "mizodict",
				Username: "testuser",
				Password: "testpass",
			},
		},
		{
			name: "creates connection with pool settings and params",
			cfg: config.DatabaseConfig{
				Host:            "db.example.com",
				Port:            3307,
				Database:        "mizodict",
				Username:        "admin",
				Password:        "secret",
				Params:          map[string]string{"charset": "utf8mb4"},
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				ConnMaxLifetime: 300,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Open(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, got)
			defer got.Close()

			assert.Equal(t, "mysql", got.DriverName())
		})
	}
}

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mizodict.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "sqlite3", db.DriverName())
	require.NoError(t, Migrate(context.Background(), db))
	// Running twice must not fail.
	require.NoError(t, Migrate(context.Background(), db))

	_, err = db.Exec("INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?)", "favorites", "[]")
	require.NoError(t, err)
}

func TestMigrate(t *testing.T) {
	migrations := fstest.MapFS{
		"migrations/002_second.sql": {Data: []byte("CREATE TABLE b (id INT);")},
		"migrations/001_first.sql":  {Data: []byte("CREATE TABLE a (id INT);\nCREATE TABLE c (id INT);\n")},
	}

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE a").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE c").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE b").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, migrate(context.Background(), sqlx.NewDb(db, "mysql"), migrations))
	assert.NoError(t, mock.ExpectationsWereMet())
}
