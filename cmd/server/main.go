package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sumire/backlog/internal/config"
	"github.com/sumire/backlog/internal/handler"
	"github.com/sumire/backlog/internal/repository"
	"github.com/sumire/backlog/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(newLogger(cfg))

	store := repository.NewStore(time.Now)
	if cfg.SeedData {
		if err := seed(store, cfg.SeedFile); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
		slog.Info("store seeded",
			"tickets", store.Tickets.Count(),
			"labels", store.Labels.Count(),
		)
	}

	ticketSvc := service.NewTicketService(store.Tickets)
	labelSvc := service.NewLabelService(store.Labels)

	e := handler.NewRouter(handler.RouterConfig{
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.FrontendURLs,
		BodyLimit:      cfg.BodyLimit,
		ExposeErrors:   !cfg.IsProduction(),
	}, ticketSvc, labelSvc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

func seed(store *repository.Store, path string) error {
	var (
		fixture repository.Fixture
		err     error
	)
	if path != "" {
		fixture, err = repository.LoadFixture(path)
	} else {
		fixture, err = repository.DefaultFixture()
	}
	if err != nil {
		return err
	}
	return store.Seed(fixture)
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
