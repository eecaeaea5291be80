package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/amaumene/collectarr/internal/api"
	"github.com/amaumene/collectarr/internal/config"
	"github.com/amaumene/collectarr/internal/controllers"
	"github.com/amaumene/collectarr/internal/interpreter"
	"github.com/amaumene/collectarr/internal/models"
	"github.com/amaumene/collectarr/internal/scheduler"
	"github.com/amaumene/collectarr/internal/services/llm"
	"github.com/amaumene/collectarr/internal/utils"
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
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting Collectarr")
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	// 3. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.Info("Database initialized")

	// 4. Initialize the query interpreter. Without an API key the
	// generative backend stays absent and every query takes the
	// deterministic fallback path.
	var backend interpreter.Backend
	if cfg.OpenAIAPIKey != "" {
		backend = llm.NewClient(cfg, logger)
		logger.WithField("model", cfg.AIModel).Info("Generative backend initialized")
	} else {
		logger.Info("No OPENAI_API_KEY set, query interpretation is rule-based only")
	}

	interp := interpreter.NewInterpreter(backend, cfg.AITimeout, cfg.InterpretCacheTTL, logger)

	// 5. Initialize controllers
	searchCtrl := controllers.NewSearchController(db, interp, cfg.TopGenres, logger)
	logger.Info("Controllers initialized")

	// 6. Initialize scheduler
	sched := scheduler.NewScheduler(db, cfg.TopGenres, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 7. Initialize HTTP server
	server := api.NewServer(cfg, db, searchCtrl, logger)

	// Start server in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 8. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("Collectarr is running")

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

	logger.Info("Collectarr stopped")
	return nil
}
