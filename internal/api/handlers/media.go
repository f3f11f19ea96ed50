package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/controllers"
	"github.com/jogit64/veganscope/internal/models"
	"github.com/jogit64/veganscope/internal/services/tmdb"
)

// MediaHandler serves the two catalog browsing contexts and title details.
//
//	GET  /api/media/{movie|tv}          current snapshot
//	POST /api/media/{movie|tv}/next     scroll trigger, folds in the next page
//	PUT  /api/media/{movie|tv}/filters  replace criteria and reload from page 1
//	GET  /api/media/{movie|tv}/{id}     details with consensus and evaluations
type MediaHandler struct {
	movies    *controllers.Browser
	shows     *controllers.Browser
	catalog   *tmdb.Client
	evals     *controllers.EvaluationController
	favorites *controllers.FavoriteController
	logger    *logrus.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(movies, shows *controllers.Browser, catalog *tmdb.Client, evals *controllers.EvaluationController, favorites *controllers.FavoriteController, logger *logrus.Logger) *MediaHandler {
	return &MediaHandler{
		movies:    movies,
		shows:     shows,
		catalog:   catalog,
		evals:     evals,
		favorites: favorites,
		logger:    logger,
	}
}

// DetailResponse bundles a title with everything the detail view shows
type DetailResponse struct {
	Item            models.MediaItem     `json:"item"`
	ConsensusRating models.EthicalRating `json:"consensus_rating"`
	Evaluations     []models.Evaluation  `json:"evaluations"`
	IsFavorite      bool                 `json:"is_favorite"`
}

// ServeHTTP routes requests under /api/media/
func (h *MediaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/media/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}

	mediaType, ok := models.ParseMediaType(parts[0])
	if !ok {
		writeError(w, http.StatusNotFound, "unknown media type "+parts[0])
		return
	}
	browser := h.movies
	if mediaType == models.MediaTypeTV {
		browser = h.shows
	}

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, browser.Snapshot())

	case len(parts) == 2 && parts[1] == "next":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		browser.NextPage(r.Context())
		writeJSON(w, http.StatusOK, browser.Snapshot())

	case len(parts) == 2 && parts[1] == "filters":
		if r.Method != http.MethodPut {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.setFilters(w, r, browser)

	case len(parts) == 2:
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.details(w, r, mediaType, parts[1])

	default:
		http.NotFound(w, r)
	}
}

func (h *MediaHandler) setFilters(w http.ResponseWriter, r *http.Request, browser *controllers.Browser) {
	var filters models.Filters
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filters payload")
		return
	}
	if !validFacetRating(filters.Rating) {
		writeError(w, http.StatusBadRequest, "invalid ethical rating "+string(filters.Rating))
		return
	}
	// The context is already type-scoped, the facet would only fight it
	filters.MediaType = ""

	browser.SetFilters(filters)
	browser.NextPage(r.Context())
	writeJSON(w, http.StatusOK, browser.Snapshot())
}

func (h *MediaHandler) details(w http.ResponseWriter, r *http.Request, mediaType models.MediaType, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid media id "+rawID)
		return
	}

	item, ok := h.catalog.GetDetails(r.Context(), id, mediaType)
	if !ok {
		writeError(w, http.StatusNotFound, "media not found")
		return
	}

	key := models.MediaKey{ID: id, Type: mediaType}
	item.Rating = h.evals.RatingFor(key)

	fav, err := h.favorites.IsFavorite(id, mediaType)
	if err != nil {
		h.logger.WithError(err).Error("Failed to check favorite")
	}

	evaluations := h.evals.ForMedia(key)
	if evaluations == nil {
		evaluations = []models.Evaluation{}
	}

	writeJSON(w, http.StatusOK, DetailResponse{
		Item:            *item,
		ConsensusRating: item.Rating,
		Evaluations:     evaluations,
		IsFavorite:      fav,
	})
}

// validFacetRating accepts the three stored colors, the derived unrated
// bucket, or no constraint at all
func validFacetRating(r models.EthicalRating) bool {
	switch r {
	case "", models.RatingGreen, models.RatingYellow, models.RatingRed, models.RatingUnrated:
		return true
	}
	return false
}
