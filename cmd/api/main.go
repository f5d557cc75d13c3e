package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/config"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/coupon"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/database"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/handler"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/repository"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/router"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/service"
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
	logger.Info().Msg("starting coupon engine API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Apply schema
	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	couponRepo := repository.NewCouponRepository(pool, logger)
	redemptionRepo := repository.NewRedemptionRepository(pool, logger)
	storeRepo := repository.NewStoreRepository(pool, logger)

	// Initialize discount calculator and service
	calculator := coupon.NewCalculator(cfg.Coupon.DeliveryFeeCredit)
	couponService := service.NewCouponService(
		couponRepo,
		redemptionRepo,
		storeRepo,
		calculator,
		cfg.Coupon.MaxPageSize,
		logger,
	)

	// Initialize HTTP handlers and router
	couponHandler := handler.NewCouponHandler(couponService, logger)
	mux := router.New(couponHandler, cfg.Auth.APIKey, logger)

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
