package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/wonny/trendlens/internal/api"
	"github.com/wonny/trendlens/internal/api/handlers"
	"github.com/wonny/trendlens/internal/dashboard"
	"github.com/wonny/trendlens/internal/datastore"
	"github.com/wonny/trendlens/internal/render"
	"github.com/wonny/trendlens/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analytics API server",
	Long: `Starts the REST API server.

Datasets are uploaded as CSV files, kept in memory, and queried through
per-chart endpoints or rendered as a full HTML report. Idle datasets are
evicted in the background.

Endpoints:
  GET    /health                               - Health check
  POST   /api/datasets                         - Upload a dataset
  GET    /api/datasets/{id}                    - Dataset overview
  DELETE /api/datasets/{id}                    - Evict a dataset
  GET    /api/datasets/{id}/dashboard          - Full chart payload
  GET    /api/datasets/{id}/report             - HTML report

Example:
  go run ./cmd/trends serve
  go run ./cmd/trends serve --port 8080`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "API server port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== TrendLens API Server ===")

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Load chart profile
	profile, err := loadProfile(cfg, log)
	if err != nil {
		return err
	}

	// 4. Create dataset store with background eviction
	store := datastore.New(cfg.Store.MaxDatasets, log)
	janitor, err := datastore.NewJanitor(store, cfg.Store.TTL, cfg.Store.SweepInterval, log)
	if err != nil {
		return fmt.Errorf("create janitor: %w", err)
	}
	janitor.Start()
	defer janitor.Stop()

	// 5. Create dashboard builder and renderer
	builder := dashboard.NewBuilder(profile, log)
	renderer := render.New(profile)

	// 6. Create handlers
	datasets := handlers.NewDatasetHandler(store, builder, cfg.Upload.MaxBytes, log)
	charts := handlers.NewChartHandler(store, builder, renderer, profile, log)

	// 7. Create router with the upload rate limit
	limiter := rate.NewLimiter(rate.Limit(cfg.Upload.RatePerSec), cfg.Upload.Burst)
	router := api.NewRouter(datasets, charts, limiter, log)

	// 8. Create server
	server := api.New(cfg, log, router)

	// 9. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET    /health")
	fmt.Println("  POST   /api/datasets")
	fmt.Println("  GET    /api/datasets/{id}")
	fmt.Println("  DELETE /api/datasets/{id}")
	fmt.Println("  GET    /api/datasets/{id}/dashboard")
	fmt.Println("  GET    /api/datasets/{id}/report")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
