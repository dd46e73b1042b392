package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/mizodict/internal/app"
	"github.com/at-ishikawa/mizodict/internal/config"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// withApp builds the application for one command and closes it afterwards.
func withApp(ctx context.Context, fn func(a *app.App) error) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a, err := app.New(ctx, cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("app.New() > %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("a.Close() > %w", closeErr)
		}
	}()
	return fn(a)
}
