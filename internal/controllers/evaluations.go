package controllers

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/models"
	"github.com/jogit64/veganscope/internal/ratings"
)

// EvaluationStore is the remote table the controller syncs against
type EvaluationStore interface {
	FetchEvaluations(ctx context.Context, filter *models.MediaKey) ([]models.Evaluation, bool)
	AddEvaluation(ctx context.Context, eval models.Evaluation) (*models.Evaluation, error)
}

// EvaluationController keeps a local collection of all evaluations in sync
// with the remote store and serves consensus ratings from it
type EvaluationController struct {
	store      EvaluationStore
	collection *ratings.Collection
	logger     *logrus.Logger
}

// NewEvaluationController creates the controller with an empty collection
func NewEvaluationController(store EvaluationStore, logger *logrus.Logger) *EvaluationController {
	return &EvaluationController{
		store:      store,
		collection: ratings.NewCollection(),
		logger:     logger,
	}
}

// Refresh replaces the local collection with the remote one. On store failure
// the previous collection is kept so ratings degrade to stale rather than
// absent.
func (c *EvaluationController) Refresh(ctx context.Context) bool {
	evals, ok := c.store.FetchEvaluations(ctx, nil)
	if !ok {
		c.logger.Warn("Evaluation refresh failed, keeping previous collection")
		return false
	}
	c.collection.Replace(evals)
	c.logger.WithField("count", len(evals)).Info("Evaluation collection refreshed")
	return true
}

// Add validates and submits a new evaluation. The local collection is only
// updated once the store confirms the insert.
func (c *EvaluationController) Add(ctx context.Context, eval models.Evaluation) (*models.Evaluation, error) {
	if strings.TrimSpace(eval.Username) == "" {
		return nil, fmt.Errorf("username is required")
	}
	if eval.MediaID <= 0 {
		return nil, fmt.Errorf("invalid media id %d", eval.MediaID)
	}
	if !eval.MediaType.Valid() {
		return nil, fmt.Errorf("invalid media type %q", eval.MediaType)
	}
	if !eval.Rating.Storable() {
		return nil, fmt.Errorf("rating %q cannot be submitted", eval.Rating)
	}

	confirmed, err := c.store.AddEvaluation(ctx, eval)
	if err != nil {
		return nil, err
	}

	c.collection.Prepend(*confirmed)
	c.logger.WithFields(logrus.Fields{
		"media_id":   confirmed.MediaID,
		"media_type": confirmed.MediaType,
		"rating":     confirmed.Rating,
	}).Info("Evaluation added")

	return confirmed, nil
}

// RatingFor returns the consensus rating for one title
func (c *EvaluationController) RatingFor(key models.MediaKey) models.EthicalRating {
	return c.collection.RatingFor(key)
}

// ForMedia returns the evaluations for one title, most recent first
func (c *EvaluationController) ForMedia(key models.MediaKey) []models.Evaluation {
	return c.collection.ForMedia(key)
}

// All returns every cached evaluation, most recent first
func (c *EvaluationController) All() []models.Evaluation {
	return c.collection.All()
}

// Count returns the size of the cached collection
func (c *EvaluationController) Count() int {
	return c.collection.Len()
}
