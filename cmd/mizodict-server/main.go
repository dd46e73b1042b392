package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/mizodict/internal/app"
	"github.com/at-ishikawa/mizodict/internal/bootstrap"
	"github.com/at-ishikawa/mizodict/internal/config"
	"github.com/at-ishikawa/mizodict/internal/server"
	"github.com/at-ishikawa/mizodict/internal/translation"
	"github.com/at-ishikawa/mizodict/internal/translation/google"
	"github.com/at-ishikawa/mizodict/internal/translation/openai"
)

var configFile string

func main() {
	var debugMode bool
	rootCmd := &cobra.Command{
		Use:           "mizodict-server",
		Short:         "Mizo dictionary page and translation service HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", os.Getenv("MIZODICT_CONFIG"), "config file path (env MIZODICT_CONFIG)")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	})))
}

// provider is a translation provider holding a connection that must be closed.
type provider interface {
	translation.Provider
	Close() error
}

func newProvider(cfg *config.Config) (provider, error) {
	switch cfg.Translation.Provider {
	case "google", "":
		return google.NewClient(cfg.Google.Endpoint, cfg.Google.APIKey, cfg.Translation.MaxRetryAttempts), nil
	case "openai":
		return openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.Translation.MaxRetryAttempts), nil
	default:
		return nil, fmt.Errorf("unknown translation provider %q", cfg.Translation.Provider)
	}
}

func run(ctx context.Context) error {
	logger := slog.Default()
	lifecycle := bootstrap.New(bootstrap.WithLogger(logger))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	translationProvider, err := newProvider(cfg)
	if err != nil {
		return fmt.Errorf("newProvider() > %w", err)
	}
	if !translationProvider.Configured() {
		// The server still serves the dictionary; /api/status reports the missing key.
		logger.Warn("translation provider has no API key", "provider", translationProvider.Name())
	}
	svc := translation.NewService(translationProvider, translation.NewMemoryCache("server"), cfg.Translation.BatchLimit, logger)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		_ = translationProvider.Close()
		return fmt.Errorf("app.New() > %w", err)
	}
	lifecycle.AddShutdownHook(func(ctx context.Context) error {
		return errors.Join(a.Close(), translationProvider.Close())
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: h2c.NewHandler(server.NewServer(a, svc, logger).Handler(), &http2.Server{}),
	}
	lifecycle.AddShutdownHook(srv.Shutdown)

	return lifecycle.Run(ctx, func(ctx context.Context) error {
		return serve(ctx, srv, func(ctx context.Context, addr net.Addr) {
			logger.Info("Starting server", "addr", addr.String(), "provider", translationProvider.Name())
			// translation.base_url may point at this server, so the first probe waits for the listener.
			go a.Checker.Run(ctx)
		})
	})
}

// serve binds srv.Addr, calls listening once connections can be accepted, and serves until srv is shut down.
func serve(ctx context.Context, srv *http.Server, listening func(ctx context.Context, addr net.Addr)) error {
	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("net.Listen(%s) > %w", srv.Addr, err)
	}
	listening(ctx, listener.Addr())

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
