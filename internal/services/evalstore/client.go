// Package evalstore adapts the hosted evaluation table (Supabase/PostgREST)
// into the internal evaluation model. The remote schema speaks a different
// vocabulary: French color names for ratings, "film"/"série" for media types
// and a free-form criteria map; the mapping lives entirely in this package.
package evalstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/config"
	"github.com/jogit64/veganscope/internal/models"
)

const evaluationsPath = "/rest/v1/evaluations"

var storeRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "veganscope_evalstore_requests_total",
		Help: "Evaluation store requests by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ratingFromRemote translates the store's color vocabulary into the internal
// enum. Anything outside the expected set maps to the unknown sentinel so a
// bad row degrades instead of crashing aggregation.
var ratingFromRemote = map[string]models.EthicalRating{
	"vert":  models.RatingGreen,
	"jaune": models.RatingYellow,
	"rouge": models.RatingRed,
}

var ratingToRemote = map[models.EthicalRating]string{
	models.RatingGreen:  "vert",
	models.RatingYellow: "jaune",
	models.RatingRed:    "rouge",
}

func mediaTypeToRemote(t models.MediaType) string {
	if t == models.MediaTypeMovie {
		return "film"
	}
	return "série"
}

func mediaTypeFromRemote(s string) models.MediaType {
	if s == "film" {
		return models.MediaTypeMovie
	}
	return models.MediaTypeTV
}

// remoteEvaluation mirrors one row of the evaluations table
type remoteEvaluation struct {
	ID            string          `json:"id,omitempty"`
	TMDBID        string          `json:"tmdb_id"`
	Pseudo        string          `json:"pseudo"`
	NiveauEthique string          `json:"niveau_ethique"`
	Commentaire   *string         `json:"commentaire"`
	MediaType     string          `json:"media_type"`
	Criteres      map[string]bool `json:"criteres"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
}

// Client handles communication with the evaluation store
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new evaluation store client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.EvalStoreURL == "" {
		return nil, fmt.Errorf("evaluation store URL is required")
	}
	if cfg.EvalStoreKey == "" {
		return nil, fmt.Errorf("evaluation store API key is required")
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.EvalStoreURL, "/"),
		apiKey:     cfg.EvalStoreKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}

// FetchEvaluations reads evaluations from the remote table, most recent
// first. A nil filter returns the full collection; a filter narrows the
// query to one identity pair. The second return value is false on failure so
// callers can keep a previous snapshot instead of wiping it.
func (c *Client) FetchEvaluations(ctx context.Context, filter *models.MediaKey) ([]models.Evaluation, bool) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("order", "created_at.desc")
	if filter != nil {
		params.Set("tmdb_id", "eq."+strconv.FormatInt(filter.ID, 10))
		params.Set("media_type", "eq."+mediaTypeToRemote(filter.Type))
	}

	fullURL := c.baseURL + evaluationsPath + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		c.logger.WithError(err).Error("Failed to create evaluation fetch request")
		return nil, false
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		storeRequests.WithLabelValues("fetch", "failure").Inc()
		c.logger.WithError(err).Error("Evaluation fetch failed")
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		storeRequests.WithLabelValues("fetch", "failure").Inc()
		body, _ := io.ReadAll(resp.Body)
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"body":        string(body),
		}).Error("Evaluation store returned non-OK status")
		return nil, false
	}

	var rows []remoteEvaluation
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		storeRequests.WithLabelValues("fetch", "failure").Inc()
		c.logger.WithError(err).Error("Failed to decode evaluation rows")
		return nil, false
	}

	storeRequests.WithLabelValues("fetch", "success").Inc()

	evals := make([]models.Evaluation, 0, len(rows))
	for _, row := range rows {
		evals = append(evals, c.fromRemote(row))
	}
	return evals, true
}

// AddEvaluation appends one evaluation to the remote table. On rejection the
// error is returned and nothing may be inserted locally; on success the
// confirmed record (with store-assigned id and timestamp) comes back for the
// caller to prepend to its cache.
func (c *Client) AddEvaluation(ctx context.Context, eval models.Evaluation) (*models.Evaluation, error) {
	remoteRating, ok := ratingToRemote[eval.Rating]
	if !ok {
		return nil, fmt.Errorf("rating %q cannot be stored", eval.Rating)
	}

	row := remoteEvaluation{
		TMDBID:        strconv.FormatInt(eval.MediaID, 10),
		Pseudo:        eval.Username,
		NiveauEthique: remoteRating,
		MediaType:     mediaTypeToRemote(eval.MediaType),
		Criteres:      make(map[string]bool, len(eval.Criteria)),
	}
	// Blank comments are stored as an absent value, never as an empty string
	if comment := strings.TrimSpace(eval.Comment); comment != "" {
		row.Commentaire = &comment
	}
	for _, criterion := range eval.Criteria {
		row.Criteres[criterion.ID] = criterion.Checked
	}

	body, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal evaluation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+evaluationsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		storeRequests.WithLabelValues("add", "failure").Inc()
		return nil, fmt.Errorf("evaluation insert failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		storeRequests.WithLabelValues("add", "failure").Inc()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("evaluation store rejected insert with status %d: %s", resp.StatusCode, string(respBody))
	}

	var inserted []remoteEvaluation
	if err := json.NewDecoder(resp.Body).Decode(&inserted); err != nil {
		storeRequests.WithLabelValues("add", "failure").Inc()
		return nil, fmt.Errorf("failed to decode insert response: %w", err)
	}
	if len(inserted) == 0 {
		storeRequests.WithLabelValues("add", "failure").Inc()
		return nil, fmt.Errorf("evaluation store returned no inserted row")
	}

	storeRequests.WithLabelValues("add", "success").Inc()
	confirmed := c.fromRemote(inserted[0])
	return &confirmed, nil
}

// fromRemote translates one remote row into the internal model. Criteria
// descriptions are not stored remotely and get resolved from the local
// catalog; ids are sorted for a stable order.
func (c *Client) fromRemote(row remoteEvaluation) models.Evaluation {
	mediaID, err := strconv.ParseInt(row.TMDBID, 10, 64)
	if err != nil {
		c.logger.WithField("tmdb_id", row.TMDBID).Warn("Evaluation row carries a non-numeric media id")
	}

	rating, ok := ratingFromRemote[row.NiveauEthique]
	if !ok {
		rating = models.RatingUnknown
	}

	ids := make([]string, 0, len(row.Criteres))
	for id := range row.Criteres {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	criteria := make([]models.Criterion, 0, len(ids))
	for _, id := range ids {
		criterion := models.CriterionByID(id)
		criterion.Checked = row.Criteres[id]
		criteria = append(criteria, criterion)
	}

	var comment string
	if row.Commentaire != nil {
		comment = *row.Commentaire
	}

	return models.Evaluation{
		ID:        row.ID,
		MediaID:   mediaID,
		MediaType: mediaTypeFromRemote(row.MediaType),
		Username:  row.Pseudo,
		Rating:    rating,
		Comment:   comment,
		Criteria:  criteria,
		CreatedAt: row.CreatedAt,
	}
}
