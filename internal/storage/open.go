package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/mizodict/internal/config"
	"github.com/at-ishikawa/mizodict/internal/database"
)

// Open creates the store selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		if cfg.Storage.SQLite.Path == "" {
			return nil, &Error{Op: OpOpen, Err: fmt.Errorf("storage.sqlite.path is required")}
		}
		db, err := database.OpenSQLite(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, &Error{Op: OpOpen, Err: fmt.Errorf("database.OpenSQLite() > %w", err)}
		}
		return migratedSQLStore(ctx, db)
	case "mysql":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, &Error{Op: OpOpen, Err: fmt.Errorf("database.Open() > %w", err)}
		}
		return migratedSQLStore(ctx, db)
	case "redis":
		return NewRedisStore(cfg.Redis)
	case "file", "":
		if cfg.Storage.File.Path == "" {
			return nil, &Error{Op: OpOpen, Err: fmt.Errorf("storage.file.path is required")}
		}
		return NewFileStore(cfg.Storage.File.Path)
	default:
		return nil, &Error{Op: OpOpen, Err: fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)}
	}
}

func migratedSQLStore(ctx context.Context, db *sqlx.DB) (Store, error) {
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, &Error{Op: OpOpen, Err: fmt.Errorf("database.Migrate() > %w", err)}
	}
	return NewSQLStore(db), nil
}
