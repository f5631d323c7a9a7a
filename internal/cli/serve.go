package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tabledeck/internal/config"
	"tabledeck/internal/logging"
	"tabledeck/internal/preview"
	"tabledeck/internal/web"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server for the browser UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	// Load .env if present; real environment variables win otherwise.
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"preview_max_rows", cfg.Preview.MaxRows,
		"strict_quotes", cfg.Preview.StrictQuotes,
		"remote_validator", cfg.Remote.URL != "",
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	var remote *preview.Client
	if cfg.Remote.URL != "" {
		remote = preview.NewClient(cfg.Remote.URL, cfg.Remote.Timeout)
		slog.Info("remote validation enabled", "timeout", cfg.Remote.Timeout)
	}

	service := preview.NewService(cfg.Preview.MaxRows, cfg.Preview.StrictQuotes, remote)
	themes := preview.NewThemeStore()
	server := web.NewServer(service, themes, cfg)

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		return err
	}
	return nil
}
