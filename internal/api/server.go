package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/amaumene/collectarr/internal/api/handlers"
	"github.com/amaumene/collectarr/internal/api/middleware"
	"github.com/amaumene/collectarr/internal/config"
	"github.com/amaumene/collectarr/internal/controllers"
	"github.com/amaumene/collectarr/internal/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server     *http.Server
	db         *models.Database
	searchCtrl *controllers.SearchController
	logger     *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, db *models.Database, searchCtrl *controllers.SearchController, logger *logrus.Logger) *Server {
	s := &Server{
		db:         db,
		searchCtrl: searchCtrl,
		logger:     logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Logging(mux, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	// Health check
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.HandleFunc("/health", healthHandler.ServeHTTP)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	// Catalog CRUD
	mediaHandler := handlers.NewMediaHandler(s.db, s.logger)
	mux.HandleFunc("/api/media", mediaHandler.ServeHTTP)
	mux.HandleFunc("/api/media/", mediaHandler.ServeHTTP)

	// Search pipeline
	searchHandler := handlers.NewSearchHandler(s.searchCtrl, s.logger)
	mux.HandleFunc("/api/search", searchHandler.ServeHTTP)

	// Statistics
	statsHandler := handlers.NewStatsHandler(s.searchCtrl, s.logger)
	mux.HandleFunc("/api/stats", statsHandler.ServeHTTP)

	// Closed enumerations for filter UIs
	mux.HandleFunc("/api/media-types", handlers.MediaTypesHandler)
	mux.HandleFunc("/api/media-statuses", handlers.MediaStatusesHandler)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
