package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/models"
	"github.com/jogit64/veganscope/internal/services/tmdb"
)

// GenreHandler serves the catalog genre lists used to populate filter menus.
//
//	GET /api/genres             merged movie and show genres
//	GET /api/genres?type=movie  one namespace only
type GenreHandler struct {
	catalog *tmdb.Client
	logger  *logrus.Logger
}

// NewGenreHandler creates a new genre handler
func NewGenreHandler(catalog *tmdb.Client, logger *logrus.Logger) *GenreHandler {
	return &GenreHandler{catalog: catalog, logger: logger}
}

// ServeHTTP handles the genres endpoint
func (h *GenreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var genres []models.Genre
	if rawType := r.URL.Query().Get("type"); rawType != "" {
		mediaType, ok := models.ParseMediaType(rawType)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid media type "+rawType)
			return
		}
		genres = h.catalog.GetGenres(r.Context(), mediaType)
	} else {
		genres = h.catalog.CombinedGenres(r.Context())
	}

	if genres == nil {
		genres = []models.Genre{}
	}
	writeJSON(w, http.StatusOK, genres)
}
