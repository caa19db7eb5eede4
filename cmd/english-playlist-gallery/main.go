package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/oleonardodeandrade/english-playlist-gallery/internal/api"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/config"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/controllers"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/models"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/services/youtube"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel, cfg.IsProduction())
	logger.Info("Starting English Playlist Gallery API")
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	// 3. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.Info("Database initialized")

	// 4. Initialize YouTube client
	youtubeClient, err := youtube.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize YouTube client: %w", err)
	}
	logger.Info("YouTube client initialized")

	// 5. Initialize controllers
	syncCtrl := controllers.NewSyncController(db, youtubeClient, logger)
	logger.Info("Controllers initialized")

	// 6. Initialize HTTP server
	server := api.NewServer(cfg, db, youtubeClient, syncCtrl, logger)

	// Start server in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 7. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("English Playlist Gallery API is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("English Playlist Gallery API stopped")
	return nil
}
