package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mini-inventory/internal/auth"
	"mini-inventory/internal/catalog"
	"mini-inventory/internal/config"
	"mini-inventory/internal/database"
	"mini-inventory/internal/handler"
	"mini-inventory/internal/ledger"
	"mini-inventory/internal/repository"
	"mini-inventory/internal/router"
	"mini-inventory/internal/service"
	"mini-inventory/internal/storage"

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
	logger.Info().Msg("starting mini-inventory API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database persistence is optional
	var repo repository.InventoryRepository
	if cfg.Database.Enabled {
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		inventoryRepo := repository.NewInventoryRepository(pool, logger)
		if err := inventoryRepo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare database schema: %w", err)
		}
		repo = inventoryRepo
	} else {
		logger.Info().Msg("database persistence disabled")
	}

	store := newStore(ctx, cfg, logger)

	// Initialize auth
	users, err := auth.NewDirectory(auth.DefaultSeeds(), cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to initialize user directory: %w", err)
	}
	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL())
	if err != nil {
		return fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	// Initialize service
	inventoryService := service.NewInventoryService(
		catalog.New(),
		ledger.New(ledger.Policy{AllowNegativeStock: cfg.Inventory.AllowNegativeStock}),
		store,
		repo,
		logger,
	)

	if cfg.Inventory.File != "" {
		n, err := inventoryService.Load(ctx, cfg.Inventory.File)
		if err != nil {
			return fmt.Errorf("failed to load inventory file: %w", err)
		}
		logger.Info().
			Str("file", cfg.Inventory.File).
			Int("products", n).
			Msg("inventory loaded")
	}

	// Initialize HTTP handlers and router
	mux := router.New(router.Handlers{
		Auth:         handler.NewAuthHandler(users, tokens, logger),
		Products:     handler.NewProductHandler(inventoryService, logger),
		Transactions: handler.NewTransactionHandler(inventoryService, logger),
		Reports:      handler.NewReportHandler(inventoryService, logger),
		Inventory:    handler.NewInventoryHandler(inventoryService, logger),
	}, tokens, logger)

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
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newStore returns the local data directory, fronted by S3 when it is enabled and reachable.
func newStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) storage.Store {
	local := storage.NewFileStore(cfg.Inventory.DataDir, logger)
	if !cfg.S3.Enabled {
		logger.Info().
			Str("data_dir", cfg.Inventory.DataDir).
			Msg("using local file system for inventory files (S3 disabled)")
		return local
	}

	s3Store, err := storage.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 store, falling back to local file system only")
		return local
	}

	return storage.NewFallbackStore(s3Store, local, true, logger)
}
