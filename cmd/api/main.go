package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodpedia/internal/auth"
	"foodpedia/internal/catalog"
	"foodpedia/internal/config"
	"foodpedia/internal/database"
	"foodpedia/internal/handler"
	"foodpedia/internal/repository"
	"foodpedia/internal/router"
	"foodpedia/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting foodpedia API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply database schema: %w", err)
	}

	restaurantRepo := repository.NewRestaurantRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	if cfg.Catalog.SeedOnStart {
		seeder := catalog.NewSeeder(newCatalogLoader(ctx, cfg, logger), restaurantRepo, cfg.Catalog.Files, logger)
		if _, err := seeder.Seed(ctx); err != nil {
			return fmt.Errorf("failed to seed restaurant catalogue: %w", err)
		}
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	restaurantService := service.NewRestaurantService(restaurantRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, restaurantRepo, logger)
	statsService := service.NewStatsService(restaurantRepo, reviewRepo, logger)
	authService := service.NewAuthService(userRepo, tokens, logger)

	mux := router.New(
		handler.NewRestaurantHandler(restaurantService, logger),
		handler.NewReviewHandler(reviewService, logger),
		handler.NewAuthHandler(authService, logger),
		handler.NewStatsHandler(statsService, logger),
		tokens,
		logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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

// newCatalogLoader returns a local file loader, fronted by S3 when enabled.
func newCatalogLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) catalog.Loader {
	fileLoader := catalog.NewFileLoader(logger)
	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for catalogue files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)
}
