package controllers

import (
	"path/filepath"
	"testing"

	"github.com/jogit64/veganscope/internal/models"
)

func newTestFavorites(t *testing.T) *FavoriteController {
	t.Helper()
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewFavoriteController(db, newTestLogger())
}

func TestFavoritesSetSemantics(t *testing.T) {
	c := newTestFavorites(t)

	if err := c.Add(42, models.MediaTypeMovie); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	// Adding the same pair again is a no-op
	if err := c.Add(42, models.MediaTypeMovie); err != nil {
		t.Fatalf("duplicate Add failed: %v", err)
	}

	favs, err := c.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(favs) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(favs))
	}

	ok, err := c.IsFavorite(42, models.MediaTypeMovie)
	if err != nil || !ok {
		t.Errorf("expected (42, movie) to be a favorite, got ok=%v err=%v", ok, err)
	}

	if err := c.Remove(42, models.MediaTypeMovie); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	// Removing a missing pair is a no-op
	if err := c.Remove(42, models.MediaTypeMovie); err != nil {
		t.Fatalf("Remove of absent favorite failed: %v", err)
	}

	ok, err = c.IsFavorite(42, models.MediaTypeMovie)
	if err != nil || ok {
		t.Errorf("expected favorite gone, got ok=%v err=%v", ok, err)
	}
}

func TestFavoritesDistinguishMediaTypes(t *testing.T) {
	c := newTestFavorites(t)

	if err := c.Add(5, models.MediaTypeMovie); err != nil {
		t.Fatalf("Add movie failed: %v", err)
	}
	if err := c.Add(5, models.MediaTypeTV); err != nil {
		t.Fatalf("Add show failed: %v", err)
	}

	favs, err := c.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(favs) != 2 {
		t.Fatalf("movie 5 and show 5 are distinct favorites, got %d", len(favs))
	}

	if err := c.Remove(5, models.MediaTypeMovie); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	ok, err := c.IsFavorite(5, models.MediaTypeTV)
	if err != nil || !ok {
		t.Errorf("removing the movie must not touch the show, got ok=%v err=%v", ok, err)
	}
}

func TestFavoritesValidation(t *testing.T) {
	c := newTestFavorites(t)

	if err := c.Add(0, models.MediaTypeMovie); err == nil {
		t.Error("expected error for zero media id")
	}
	if err := c.Add(1, "book"); err == nil {
		t.Error("expected error for invalid media type")
	}
	if err := c.Remove(1, "book"); err == nil {
		t.Error("expected error for invalid media type")
	}
}
