package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/controllers"
)

// SearchHandler serves the search browsing context.
//
//	GET  /api/search       current snapshot plus the active query
//	POST /api/search       start a new query, returns the first page
//	POST /api/search/next  scroll trigger on the current results
type SearchHandler struct {
	session *controllers.SearchSession
	logger  *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(session *controllers.SearchSession, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{session: session, logger: logger}
}

// SearchRequest is the new-query payload
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse wraps a snapshot with the query it belongs to
type SearchResponse struct {
	Query string               `json:"query"`
	controllers.Snapshot
}

// ServeHTTP routes requests under /api/search
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/search"), "/")

	switch {
	case rest == "" && r.Method == http.MethodGet:
		h.respond(w)

	case rest == "" && r.Method == http.MethodPost:
		var req SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid search payload")
			return
		}
		h.session.Search(r.Context(), req.Query)
		h.respond(w)

	case rest == "next" && r.Method == http.MethodPost:
		h.session.NextPage(r.Context())
		h.respond(w)

	case rest == "" || rest == "next":
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)

	default:
		http.NotFound(w, r)
	}
}

func (h *SearchHandler) respond(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, SearchResponse{
		Query:    h.session.Query(),
		Snapshot: h.session.Snapshot(),
	})
}
