package models

import (
	"fmt"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// FavoriteRef marks a user's bookmark on one media item, keyed by the same
// identity pair as the catalog
type FavoriteRef struct {
	ID        uint64    `boltholdKey:"ID"`
	MediaID   int64     `boltholdIndex:"MediaID"`
	MediaType MediaType `json:"media_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Database wraps the bolthold store holding the favorites set
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Favorite operations

// AddFavorite inserts a favorite if the identity pair is not already present.
// Set semantics: adding twice is a no-op.
func (db *Database) AddFavorite(mediaID int64, mediaType MediaType) error {
	existing, err := db.findFavorite(mediaID, mediaType)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	fav := &FavoriteRef{
		MediaID:   mediaID,
		MediaType: mediaType,
		CreatedAt: time.Now(),
	}
	return db.store.Insert(bolthold.NextSequence(), fav)
}

// RemoveFavorite deletes a favorite by identity pair. Removing a missing
// favorite is a no-op.
func (db *Database) RemoveFavorite(mediaID int64, mediaType MediaType) error {
	existing, err := db.findFavorite(mediaID, mediaType)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	return db.store.Delete(existing.ID, &FavoriteRef{})
}

// IsFavorite reports whether the identity pair is bookmarked
func (db *Database) IsFavorite(mediaID int64, mediaType MediaType) (bool, error) {
	existing, err := db.findFavorite(mediaID, mediaType)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// GetFavorites retrieves all favorites in insertion order
func (db *Database) GetFavorites() ([]*FavoriteRef, error) {
	var favs []*FavoriteRef
	err := db.store.Find(&favs, nil)
	if err != nil {
		return nil, err
	}
	return favs, nil
}

func (db *Database) findFavorite(mediaID int64, mediaType MediaType) (*FavoriteRef, error) {
	var favs []*FavoriteRef
	query := bolthold.Where("MediaID").Eq(mediaID).And("MediaType").Eq(mediaType)

	err := db.store.Find(&favs, query)
	if err != nil {
		return nil, err
	}
	if len(favs) == 0 {
		return nil, nil
	}
	return favs[0], nil
}
