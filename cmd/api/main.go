package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/crescendo-labs/backend/internal/adapters/rest"
	"github.com/crescendo-labs/backend/internal/adapters/spotify"
	"github.com/crescendo-labs/backend/internal/adapters/sqlite"
	"github.com/crescendo-labs/backend/internal/auth"
	"github.com/crescendo-labs/backend/internal/config"
	"github.com/crescendo-labs/backend/internal/core/services"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "crescendo",
	})

	if err := run(logger, *configPath); err != nil {
		logger.Fatal("exiting", "error", err)
	}
}

func run(logger *log.Logger, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if level, err := log.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}

	// Crash early when required credentials are missing.
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		return errors.New("spotify client id and secret are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Driven adapters.
	db, err := sqlite.NewAdapter(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	catalog := spotify.NewClient(cfg.Spotify, logger.With("adapter", "spotify"))

	if cfg.Google.ClientID == "" {
		return errors.New("google client id is required")
	}
	verifier, err := auth.NewGoogleVerifier(ctx, cfg.Google.ClientID)
	if err != nil {
		return err
	}

	// Core services wired by constructor injection.
	discovery := services.NewDiscovery(catalog, cfg.Discovery, logger)
	users := services.NewUsers(db.Users())
	groups := services.NewGroups(db.Groups())
	events := services.NewEvents(db.Events())

	// Driving adapter.
	handler := rest.NewHandler(discovery, users, groups, events, verifier, logger.With("adapter", "rest"))

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
