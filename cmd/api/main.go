package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"items-api/internal/config"
	"items-api/internal/database"
	"items-api/internal/handler"
	"items-api/internal/repository"
	"items-api/internal/router"
	"items-api/internal/seed"
	"items-api/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("driver", cfg.Database.Driver).Msg("starting items API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	itemRepo, closeStore, err := newItemRepository(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer closeStore()

	if err := itemRepo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	if err := seedItems(ctx, cfg, itemRepo, logger); err != nil {
		return fmt.Errorf("failed to seed items: %w", err)
	}

	// Initialize services and handlers
	itemService := service.NewItemService(itemRepo, logger)
	itemHandler := handler.NewItemHandler(itemService, logger)

	// Initialize router
	mux := router.New(itemHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newItemRepository opens the configured store. The returned func releases it.
func newItemRepository(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (repository.ItemRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		connConfig, err := database.PostgresConfig(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresItemRepository(connConfig, logger), func() {}, nil

	default:
		db, err := database.OpenSQLite(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close database")
			}
		}
		return repository.NewSQLiteItemRepository(db, logger), closeDB, nil
	}
}

// seedItems imports SEED_FILES into an empty table, reading from S3 first when enabled.
func seedItems(ctx context.Context, cfg *config.Config, repo repository.ItemRepository, logger zerolog.Logger) error {
	if len(cfg.Seed.Files) == 0 {
		return nil
	}

	fileLoader := seed.NewFileLoader(logger)
	var s3Loader seed.Loader

	if cfg.S3.Enabled {
		loader, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	} else {
		logger.Info().Msg("using local file system for seed files (S3 disabled)")
	}

	loader := seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	_, err := seed.NewSeeder(cfg.Seed.Files, loader, repo, logger).Run(ctx)
	return err
}
