package main

import (
	"context"
	"echocity/config"
	"echocity/observability"
	"echocity/repository"
	"echocity/routes"
	"echocity/seed"
	"echocity/service"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := config.LoadConfig()
	logger := observability.NewLogger(cfg.LogLevel)

	err := run(cfg, logger, http.ListenAndServe)
	if err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run serves until listen returns. The backend connection is released before it returns.
func run(cfg *config.Config, logger *zap.Logger, listen func(addr string, handler http.Handler) error) error {
	// Connect the configured key-value backend
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	kv, closeKV, err := repository.OpenKeyValueStore(ctx, cfg, logger)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}
	defer func() {
		if err := closeKV(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	metrics := observability.NewMetrics()
	store := service.NewRecordStore(kv, seed.Default(), service.StoreOptions{
		Logger:          logger,
		Metrics:         metrics,
		PersistProfiles: cfg.Store.PersistProfiles,
	})

	// Setup routes
	router := routes.SetupRoutes(store, metrics, logger)

	// Add CORS middleware
	corsHandler := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Set CORS headers
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "3600")

			// Handle preflight requests
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		zap.String("addr", addr),
		zap.String("backend", cfg.Store.Backend),
		zap.Bool("persist_profiles", cfg.Store.PersistProfiles),
	)
	if err := listen(addr, corsHandler(router)); err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return nil
}
