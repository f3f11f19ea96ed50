package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jogit64/veganscope/internal/api"
	"github.com/jogit64/veganscope/internal/config"
	"github.com/jogit64/veganscope/internal/controllers"
	"github.com/jogit64/veganscope/internal/models"
	"github.com/jogit64/veganscope/internal/scheduler"
	"github.com/jogit64/veganscope/internal/services/evalstore"
	"github.com/jogit64/veganscope/internal/services/tmdb"
	"github.com/jogit64/veganscope/internal/utils"
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
	logger.Info("Starting VeganScope")

	// 3. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.Info("Database initialized")

	// 4. Initialize services
	catalog, err := tmdb.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog client: %w", err)
	}
	logger.Info("Catalog client initialized")

	store, err := evalstore.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize evaluation store client: %w", err)
	}
	logger.Info("Evaluation store client initialized")

	// 5. Initialize controllers
	evalCtrl := controllers.NewEvaluationController(store, logger)
	favCtrl := controllers.NewFavoriteController(db, logger)

	movies := controllers.NewBrowser("movies", controllers.MovieCatalog{Client: catalog}, evalCtrl, logger)
	shows := controllers.NewBrowser("shows", controllers.ShowCatalog{Client: catalog}, evalCtrl, logger)
	search := controllers.NewSearchSession(catalog, evalCtrl, logger)
	logger.Info("Controllers initialized")

	// 6. Initialize scheduler
	sched := scheduler.NewScheduler(evalCtrl, catalog, cfg.EvalRefreshMinutes, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 7. Initialize HTTP server
	server := api.NewServer(cfg, api.Dependencies{
		Catalog:   catalog,
		Movies:    movies,
		Shows:     shows,
		Search:    search,
		Evals:     evalCtrl,
		Favorites: favCtrl,
	}, logger)

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

	logger.Info("VeganScope is running")

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

	logger.Info("VeganScope stopped")
	return nil
}
