package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cinelog/cinelog/internal/api/handlers"
	"github.com/cinelog/cinelog/internal/api/middleware"
	"github.com/cinelog/cinelog/internal/config"
	"github.com/cinelog/cinelog/internal/controllers"
	"github.com/cinelog/cinelog/internal/models"
	"github.com/cinelog/cinelog/internal/services/tmdb"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server         *http.Server
	db             *models.Database
	tmdbClient     *tmdb.Client
	enrichmentCtrl *controllers.EnrichmentController
	logger         *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, db *models.Database, tmdbClient *tmdb.Client, enrichmentCtrl *controllers.EnrichmentController, logger *logrus.Logger) *Server {
	s := &Server{
		db:             db,
		tmdbClient:     tmdbClient,
		enrichmentCtrl: enrichmentCtrl,
		logger:         logger,
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
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.Handle("GET /health", healthHandler)

	statusHandler := handlers.NewStatusHandler(s.db, s.logger)
	mux.Handle("GET /status", statusHandler)

	moviesHandler := handlers.NewMoviesHandler(s.db, s.enrichmentCtrl, s.logger)
	mux.HandleFunc("GET /api/movies", moviesHandler.List)
	mux.HandleFunc("POST /api/movies", moviesHandler.Create)
	mux.HandleFunc("PUT /api/movies/{id}", moviesHandler.Update)
	mux.HandleFunc("DELETE /api/movies/{id}", moviesHandler.Delete)

	searchHandler := handlers.NewSearchHandler(s.tmdbClient, s.logger)
	mux.HandleFunc("GET /api/movies/search", searchHandler.Suggestions)
	mux.HandleFunc("GET /api/movies/lookup", searchHandler.Lookup)
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
