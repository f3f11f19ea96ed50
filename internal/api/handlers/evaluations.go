package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/controllers"
	"github.com/jogit64/veganscope/internal/models"
)

// EvaluationHandler serves the cached evaluation collection and accepts new
// submissions.
//
//	GET  /api/evaluations                            whole collection
//	GET  /api/evaluations?media_type=tv&media_id=42  one title's evaluations
//	POST /api/evaluations                            submit a new one
type EvaluationHandler struct {
	evals  *controllers.EvaluationController
	logger *logrus.Logger
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evals *controllers.EvaluationController, logger *logrus.Logger) *EvaluationHandler {
	return &EvaluationHandler{evals: evals, logger: logger}
}

// EvaluationRequest is the submission payload. Criteria holds the checked
// criterion ids.
type EvaluationRequest struct {
	MediaID   int64                `json:"media_id"`
	MediaType models.MediaType     `json:"media_type"`
	Username  string               `json:"username"`
	Rating    models.EthicalRating `json:"rating"`
	Comment   string               `json:"comment"`
	Criteria  []string             `json:"criteria"`
}

// ServeHTTP handles the evaluations endpoint
func (h *EvaluationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.add(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *EvaluationHandler) list(w http.ResponseWriter, r *http.Request) {
	rawType := r.URL.Query().Get("media_type")
	rawID := r.URL.Query().Get("media_id")

	if rawType == "" && rawID == "" {
		evals := h.evals.All()
		if evals == nil {
			evals = []models.Evaluation{}
		}
		writeJSON(w, http.StatusOK, evals)
		return
	}

	mediaType, ok := models.ParseMediaType(rawType)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid media type "+rawType)
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid media id "+rawID)
		return
	}

	key := models.MediaKey{ID: id, Type: mediaType}
	evals := h.evals.ForMedia(key)
	if evals == nil {
		evals = []models.Evaluation{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"evaluations":      evals,
		"consensus_rating": h.evals.RatingFor(key),
	})
}

func (h *EvaluationHandler) add(w http.ResponseWriter, r *http.Request) {
	var req EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid evaluation payload")
		return
	}

	criteria := make([]models.Criterion, 0, len(req.Criteria))
	for _, id := range req.Criteria {
		c := models.CriterionByID(id)
		c.Checked = true
		criteria = append(criteria, c)
	}

	confirmed, err := h.evals.Add(r.Context(), models.Evaluation{
		MediaID:   req.MediaID,
		MediaType: req.MediaType,
		Username:  req.Username,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Criteria:  criteria,
	})
	if err != nil {
		h.logger.WithError(err).Warn("Evaluation rejected")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, confirmed)
}

// CriteriaHandler serves the static catalog of ethical criteria
type CriteriaHandler struct{}

// NewCriteriaHandler creates a new criteria handler
func NewCriteriaHandler() *CriteriaHandler {
	return &CriteriaHandler{}
}

// ServeHTTP handles the criteria endpoint
func (h *CriteriaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, models.CriteriaCatalog)
}
