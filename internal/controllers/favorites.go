package controllers

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/models"
)

// FavoriteController owns the persistent favorites set
type FavoriteController struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewFavoriteController creates the controller over an open database
func NewFavoriteController(db *models.Database, logger *logrus.Logger) *FavoriteController {
	return &FavoriteController{db: db, logger: logger}
}

// Add bookmarks an identity pair. Adding an existing favorite is a no-op.
func (c *FavoriteController) Add(mediaID int64, mediaType models.MediaType) error {
	if mediaID <= 0 {
		return fmt.Errorf("invalid media id %d", mediaID)
	}
	if !mediaType.Valid() {
		return fmt.Errorf("invalid media type %q", mediaType)
	}
	if err := c.db.AddFavorite(mediaID, mediaType); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	c.logger.WithFields(logrus.Fields{
		"media_id":   mediaID,
		"media_type": mediaType,
	}).Info("Favorite added")
	return nil
}

// Remove drops a bookmark. Removing a missing favorite is a no-op.
func (c *FavoriteController) Remove(mediaID int64, mediaType models.MediaType) error {
	if !mediaType.Valid() {
		return fmt.Errorf("invalid media type %q", mediaType)
	}
	if err := c.db.RemoveFavorite(mediaID, mediaType); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	c.logger.WithFields(logrus.Fields{
		"media_id":   mediaID,
		"media_type": mediaType,
	}).Info("Favorite removed")
	return nil
}

// IsFavorite reports whether an identity pair is bookmarked
func (c *FavoriteController) IsFavorite(mediaID int64, mediaType models.MediaType) (bool, error) {
	return c.db.IsFavorite(mediaID, mediaType)
}

// List returns every favorite in insertion order
func (c *FavoriteController) List() ([]*models.FavoriteRef, error) {
	favs, err := c.db.GetFavorites()
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favs, nil
}
