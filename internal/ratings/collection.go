package ratings

import (
	"sync"

	"github.com/jogit64/veganscope/internal/models"
)

// Collection holds the evaluation set read back from the remote store,
// most recent first, and answers per-item lookups for the browsing
// pipelines. Safe for concurrent use.
type Collection struct {
	mu    sync.RWMutex
	evals []models.Evaluation
}

// NewCollection creates an empty collection
func NewCollection() *Collection {
	return &Collection{}
}

// Replace swaps the whole collection for a freshly fetched one
func (c *Collection) Replace(evals []models.Evaluation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evals = append([]models.Evaluation(nil), evals...)
}

// Prepend inserts a newly confirmed evaluation at the front, keeping the
// most-recent-first ordering
func (c *Collection) Prepend(eval models.Evaluation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evals = append([]models.Evaluation{eval}, c.evals...)
}

// All returns a copy of the collection in its current order
func (c *Collection) All() []models.Evaluation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Evaluation(nil), c.evals...)
}

// ForMedia returns all evaluations matching one identity pair
func (c *Collection) ForMedia(key models.MediaKey) []models.Evaluation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var matched []models.Evaluation
	for _, e := range c.evals {
		if e.Key() == key {
			matched = append(matched, e)
		}
	}
	return matched
}

// RatingFor computes the consensus rating for one identity pair
func (c *Collection) RatingFor(key models.MediaKey) models.EthicalRating {
	return Aggregate(c.ForMedia(key))
}

// Len returns the number of evaluations currently held
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.evals)
}
