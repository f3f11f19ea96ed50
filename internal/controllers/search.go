package controllers

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/models"
	"github.com/jogit64/veganscope/internal/services/tmdb"
)

// SearchCatalog pages through multi-search results for the current query.
// An empty query yields an empty, already-exhausted page.
type SearchCatalog struct {
	Client *tmdb.Client

	mu    sync.RWMutex
	query string
}

// SetQuery replaces the active search query
func (c *SearchCatalog) SetQuery(query string) {
	c.mu.Lock()
	c.query = strings.TrimSpace(query)
	c.mu.Unlock()
}

// Query returns the active search query
func (c *SearchCatalog) Query() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// FetchPage runs the multi-search for the active query. Browsing filters do
// not translate to search parameters; they apply locally in the pipeline.
func (c *SearchCatalog) FetchPage(ctx context.Context, page int, _ models.Filters) tmdb.Page {
	query := c.Query()
	if query == "" {
		return tmdb.Page{Page: page}
	}
	return c.Client.SearchMulti(ctx, query, page)
}

// SearchSession couples a browsing context to a mutable search query so that
// search results scroll, filter and deduplicate exactly like the catalog
// lists do
type SearchSession struct {
	*Browser
	catalog *SearchCatalog
}

// NewSearchSession creates the search browsing context
func NewSearchSession(client *tmdb.Client, ratings RatingSource, logger *logrus.Logger) *SearchSession {
	catalog := &SearchCatalog{Client: client}
	return &SearchSession{
		Browser: NewBrowser("search", catalog, ratings, logger),
		catalog: catalog,
	}
}

// Search starts a new query: the previous result list is discarded and the
// first page is loaded before returning
func (s *SearchSession) Search(ctx context.Context, query string) {
	s.catalog.SetQuery(query)
	s.SetFilters(models.Filters{})
	s.NextPage(ctx)
}

// Query returns the query the current results belong to
func (s *SearchSession) Query() string {
	return s.catalog.Query()
}
