package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/controllers"
	"github.com/jogit64/veganscope/internal/models"
	"github.com/jogit64/veganscope/internal/services/tmdb"
)

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron           *cron.Cron
	evalCtrl       *controllers.EvaluationController
	catalog        *tmdb.Client
	refreshMinutes int
	logger         *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(evalCtrl *controllers.EvaluationController, catalog *tmdb.Client, refreshMinutes int, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		evalCtrl:       evalCtrl,
		catalog:        catalog,
		refreshMinutes: refreshMinutes,
		logger:         logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	// Periodically re-sync the evaluation collection from the remote store
	spec := fmt.Sprintf("@every %dm", s.refreshMinutes)
	_, err := s.cron.AddFunc(spec, func() {
		s.runEvaluationRefresh()
	})
	if err != nil {
		return fmt.Errorf("failed to add evaluation refresh job: %w", err)
	}

	// Every 6 hours: re-warm the genre caches
	_, err = s.cron.AddFunc("0 */6 * * *", func() {
		s.runGenreWarmup()
	})
	if err != nil {
		return fmt.Errorf("failed to add genre warmup job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	// Run the initial sync immediately so ratings are available before the
	// first browsing request
	go func() {
		s.runEvaluationRefresh()
		s.runGenreWarmup()
	}()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runEvaluationRefresh executes the evaluation sync job
func (s *Scheduler) runEvaluationRefresh() {
	s.logger.Debug("Running scheduled evaluation refresh")
	ctx := context.Background()

	if s.evalCtrl.Refresh(ctx) {
		s.logger.Debug("Evaluation refresh completed")
	}
}

// runGenreWarmup pre-fills the genre caches so filter menus answer instantly
func (s *Scheduler) runGenreWarmup() {
	ctx := context.Background()

	movieGenres := s.catalog.GetGenres(ctx, models.MediaTypeMovie)
	showGenres := s.catalog.GetGenres(ctx, models.MediaTypeTV)
	s.logger.WithFields(logrus.Fields{
		"movie_genres": len(movieGenres),
		"show_genres":  len(showGenres),
	}).Debug("Genre caches warmed")
}
