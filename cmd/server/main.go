package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"flashdeals/internal/cheapshark"
	"flashdeals/internal/config"
	"flashdeals/internal/detail"
	"flashdeals/internal/listing"
	"flashdeals/internal/normalize"
	"flashdeals/internal/stores"
	"flashdeals/internal/web"
)

func main() {
	slog.Info("Starting Flash Deals server...")
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}

	api := cheapshark.New(cfg.APIBaseURL, cfg.HTTPTimeout)
	directory := stores.New(api)
	normalizer := normalize.New(directory, cfg.RedirectBaseURL)
	listingCtrl := listing.New(api, normalizer, cfg.PageSize)
	detailCtrl := detail.New(api, normalizer, cfg.ModalCloseDelay)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// A failed directory load degrades to placeholder store names; the
	// reload endpoint can recover it later.
	loadCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
	if err := directory.Load(loadCtx); err != nil {
		slog.Warn("Continuing without store names; filters may be unavailable", "error", err)
	}
	cancel()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      web.NewRouter(listingCtrl, detailCtrl, directory),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening on port", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped.")
}
