package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/api/handlers"
	"github.com/jogit64/veganscope/internal/api/middleware"
	"github.com/jogit64/veganscope/internal/config"
	"github.com/jogit64/veganscope/internal/controllers"
	"github.com/jogit64/veganscope/internal/services/tmdb"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger *logrus.Logger
}

// Dependencies collects everything the route handlers need
type Dependencies struct {
	Catalog   *tmdb.Client
	Movies    *controllers.Browser
	Shows     *controllers.Browser
	Search    *controllers.SearchSession
	Evals     *controllers.EvaluationController
	Favorites *controllers.FavoriteController
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, deps Dependencies, logger *logrus.Logger) *Server {
	s := &Server{logger: logger}

	mux := http.NewServeMux()
	s.setupRoutes(mux, deps)

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
func (s *Server) setupRoutes(mux *http.ServeMux, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.HandleFunc("/health", healthHandler.ServeHTTP)

	statusHandler := handlers.NewStatusHandler(
		[]*controllers.Browser{deps.Movies, deps.Shows, deps.Search.Browser},
		deps.Evals, deps.Favorites, s.logger)
	mux.HandleFunc("/status", statusHandler.ServeHTTP)

	mux.Handle("/metrics", promhttp.Handler())

	mediaHandler := handlers.NewMediaHandler(deps.Movies, deps.Shows, deps.Catalog, deps.Evals, deps.Favorites, s.logger)
	mux.HandleFunc("/api/media/", mediaHandler.ServeHTTP)

	searchHandler := handlers.NewSearchHandler(deps.Search, s.logger)
	mux.HandleFunc("/api/search", searchHandler.ServeHTTP)
	mux.HandleFunc("/api/search/", searchHandler.ServeHTTP)

	evalHandler := handlers.NewEvaluationHandler(deps.Evals, s.logger)
	mux.HandleFunc("/api/evaluations", evalHandler.ServeHTTP)

	criteriaHandler := handlers.NewCriteriaHandler()
	mux.HandleFunc("/api/criteria", criteriaHandler.ServeHTTP)

	favoriteHandler := handlers.NewFavoriteHandler(deps.Favorites, s.logger)
	mux.HandleFunc("/api/favorites", favoriteHandler.ServeHTTP)

	genreHandler := handlers.NewGenreHandler(deps.Catalog, s.logger)
	mux.HandleFunc("/api/genres", genreHandler.ServeHTTP)
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
