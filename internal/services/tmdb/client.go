// Package tmdb adapts the TMDB catalog API into the internal media model.
// Every operation degrades to an empty or absent result on remote failure;
// errors never cross the adapter boundary.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/config"
)

const (
	imageBaseURL = "https://image.tmdb.org/t/p"
	posterSize   = "w500"
	backdropSize = "original"

	defaultSort = "popularity.desc"

	// Shows older than this are not discovered when no year filter is set
	firstAirDateFloor = "2015-01-01"
)

var catalogRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "veganscope_catalog_requests_total",
		Help: "TMDB catalog requests by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

// Client handles communication with the TMDB API
type Client struct {
	baseURL  string
	apiKey   string
	language string

	pageSize         int
	maxBackfillPages int

	httpClient *http.Client
	cache      *cache.Cache
	logger     *logrus.Logger

	now func() time.Time
}

// NewClient creates a new TMDB client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB API key is required")
	}

	return &Client{
		baseURL:          cfg.TMDBBaseURL,
		apiKey:           cfg.TMDBAPIKey,
		language:         cfg.Language,
		pageSize:         cfg.PageSize,
		maxBackfillPages: cfg.MaxBackfillPages,
		httpClient:       &http.Client{Timeout: 30 * time.Second},
		cache:            cache.New(6*time.Hour, 10*time.Minute),
		logger:           logger,
	}, nil
}

// clock returns the injected clock or the real one
func (c *Client) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// get performs a GET request against the TMDB API, retrying transient
// failures with exponential backoff. The api key, result language and
// adult-content flag are always attached.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("include_adult", "false")
	if params.Get("language") == "" {
		params.Set("language", c.language)
	}

	fullURL := c.baseURL + endpoint + "?" + params.Encode()

	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
	}).Debug("Making TMDB API request")

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		// Rate limiting and server errors are worth a retry
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("TMDB returned status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("TMDB returned status %d", resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		catalogRequests.WithLabelValues(metricEndpoint(endpoint), "failure").Inc()
		return err
	}

	catalogRequests.WithLabelValues(metricEndpoint(endpoint), "success").Inc()
	return nil
}

// metricEndpoint collapses id-bearing paths into their first segment to keep
// the label cardinality bounded
func metricEndpoint(endpoint string) string {
	trimmed := strings.TrimPrefix(endpoint, "/")
	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		return trimmed[:i]
	}
	return trimmed
}
