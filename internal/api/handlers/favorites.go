package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/controllers"
	"github.com/jogit64/veganscope/internal/models"
)

// FavoriteHandler serves the persistent favorites set.
//
//	GET    /api/favorites  list in insertion order
//	POST   /api/favorites  bookmark an identity pair
//	DELETE /api/favorites  drop a bookmark
type FavoriteHandler struct {
	favorites *controllers.FavoriteController
	logger    *logrus.Logger
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favorites *controllers.FavoriteController, logger *logrus.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

// FavoriteRequest identifies the pair to add or remove
type FavoriteRequest struct {
	MediaID   int64            `json:"media_id"`
	MediaType models.MediaType `json:"media_type"`
}

// ServeHTTP handles the favorites endpoint
func (h *FavoriteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		favs, err := h.favorites.List()
		if err != nil {
			h.logger.WithError(err).Error("Failed to list favorites")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if favs == nil {
			favs = []*models.FavoriteRef{}
		}
		writeJSON(w, http.StatusOK, favs)

	case http.MethodPost:
		req, ok := h.decode(w, r)
		if !ok {
			return
		}
		if err := h.favorites.Add(req.MediaID, req.MediaType); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, req)

	case http.MethodDelete:
		req, ok := h.decode(w, r)
		if !ok {
			return
		}
		if err := h.favorites.Remove(req.MediaID, req.MediaType); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *FavoriteHandler) decode(w http.ResponseWriter, r *http.Request) (FavoriteRequest, bool) {
	var req FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid favorite payload")
		return req, false
	}
	return req, true
}
