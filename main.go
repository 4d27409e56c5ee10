package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/ic-coder123/bookverse/config"
	"github.com/ic-coder123/bookverse/middleware"
	"github.com/ic-coder123/bookverse/seed"
	"github.com/ic-coder123/bookverse/store"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "bookverse",
		Usage: "Book review storage service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Override LOG_LEVEL (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Open the configured storage and serve health endpoints",
				Action: serveCommand,
			},
			{
				Name:   "seed",
				Usage:  "Load the default challenges and books into the configured storage",
				Action: seedCommand,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("exiting", "error", err)
		os.Exit(1)
	}
}

// setup loads config and installs the process-wide logger.
func setup(c *cli.Context) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	config.LogEnv(logger)
	return cfg, logger, nil
}

func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Storage, error) {
	s, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return s, nil
}

func closeStorage(s store.Storage, logger *slog.Logger) {
	if err := s.Close(context.Background()); err != nil {
		logger.Warn("storage close", "error", err)
	}
}

func seedCommand(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	ctx := c.Context
	s, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage(s, logger)

	_, err = seed.Defaults(ctx, s, time.Now(), logger)
	return err
}

func serveCommand(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	ctx := c.Context
	s, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage(s, logger)

	if !cfg.UseMongo() && cfg.SeedDefaults {
		if _, err := seed.Defaults(ctx, s, time.Now(), logger); err != nil {
			return err
		}
	}

	server := &http.Server{Addr: ":" + cfg.Port, Handler: newRouter(s, cfg.CORSOrigin)}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return err
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", "error", err)
	}
	return nil
}

// newRouter serves liveness and readiness; readiness pings the storage.
func newRouter(s store.Storage, corsOrigin string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.CORS(corsOrigin))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "welcome to bookverse."})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
