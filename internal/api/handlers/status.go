package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/controllers"
)

// StatusHandler reports the state of every browsing context plus cache sizes
type StatusHandler struct {
	browsers  []*controllers.Browser
	evals     *controllers.EvaluationController
	favorites *controllers.FavoriteController
	logger    *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(browsers []*controllers.Browser, evals *controllers.EvaluationController, favorites *controllers.FavoriteController, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		browsers:  browsers,
		evals:     evals,
		favorites: favorites,
		logger:    logger,
	}
}

// ContextStatus summarizes one browsing context
type ContextStatus struct {
	State   controllers.BrowseState `json:"state"`
	Page    int                     `json:"page"`
	Items   int                     `json:"items"`
	HasMore bool                    `json:"has_more"`
}

// StatusResponse represents the status response
type StatusResponse struct {
	Contexts    map[string]ContextStatus `json:"contexts"`
	Evaluations int                      `json:"evaluations"`
	Favorites   int                      `json:"favorites"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := StatusResponse{
		Contexts:    make(map[string]ContextStatus),
		Evaluations: h.evals.Count(),
	}

	for _, b := range h.browsers {
		snap := b.Snapshot()
		response.Contexts[b.Name()] = ContextStatus{
			State:   snap.State,
			Page:    snap.Page,
			Items:   len(snap.Items),
			HasMore: snap.HasMore,
		}
	}

	favs, err := h.favorites.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count favorites")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	response.Favorites = len(favs)

	writeJSON(w, http.StatusOK, response)
}
