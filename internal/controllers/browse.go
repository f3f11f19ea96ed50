package controllers

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/models"
	"github.com/jogit64/veganscope/internal/services/tmdb"
	"github.com/jogit64/veganscope/internal/utils"
)

// BrowseState identifies where a browsing context is in its fetch cycle
type BrowseState string

const (
	BrowseIdle            BrowseState = "idle"
	BrowseFetching        BrowseState = "fetching"
	BrowseAwaitingTrigger BrowseState = "awaiting_trigger"
	BrowseExhausted       BrowseState = "exhausted"
)

// Catalog is the slice of the media catalog one browsing context pages
// through. Implementations never return errors: a failed fetch is an empty
// page (§ adapter failure semantics).
type Catalog interface {
	FetchPage(ctx context.Context, page int, filters models.Filters) tmdb.Page
}

// RatingSource resolves the consensus rating the pipeline attaches to each
// item before the ethical-rating facet is applied
type RatingSource interface {
	RatingFor(key models.MediaKey) models.EthicalRating
}

// Browser drives one infinite-scroll browsing context (the movies list, the
// shows list or a search-results list). It accumulates a growing, filtered,
// deduplicated item list across successive catalog pages.
//
// At most one page fetch is in flight at any time; scroll triggers arriving
// mid-fetch are dropped, not queued. A filter change is a hard reset: it
// clears the accumulated list, restarts pagination and bumps a generation
// counter so a fetch that was already in flight gets discarded on completion
// instead of corrupting the fresh state.
type Browser struct {
	name    string
	catalog Catalog
	ratings RatingSource
	logger  *logrus.Logger

	mu         sync.Mutex
	state      BrowseState
	filters    models.Filters
	generation uint64
	page       int
	hasMore    bool
	inFlight   bool
	items      []models.MediaItem
	seen       map[models.MediaKey]struct{}
}

// Snapshot is what the grid renders: the accumulated list plus paging info
type Snapshot struct {
	Items   []models.MediaItem `json:"items"`
	Page    int                `json:"page"`
	HasMore bool               `json:"has_more"`
	State   BrowseState        `json:"state"`
	Filters models.Filters     `json:"filters"`
}

// NewBrowser creates a browsing context over one catalog slice
func NewBrowser(name string, catalog Catalog, ratings RatingSource, logger *logrus.Logger) *Browser {
	return &Browser{
		name:    name,
		catalog: catalog,
		ratings: ratings,
		logger:  logger,
		state:   BrowseIdle,
		hasMore: true,
		seen:    make(map[models.MediaKey]struct{}),
	}
}

// SetFilters replaces the browsing criteria and hard-resets the context:
// accumulated list cleared, pagination back to the first page, any in-flight
// fetch invalidated. Callers load the first page with NextPage afterwards.
func (b *Browser) SetFilters(filters models.Filters) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.generation++
	b.filters = filters
	b.items = nil
	b.seen = make(map[models.MediaKey]struct{})
	b.page = 0
	b.hasMore = true
	b.inFlight = false
	b.state = BrowseIdle

	b.logger.WithFields(logrus.Fields{
		"context":    b.name,
		"generation": b.generation,
	}).Debug("Browsing context reset")
}

// NextPage fetches and folds in the next catalog page. Returns false when the
// request was coalesced (a fetch is already in flight), the context is
// exhausted, or the completed fetch turned out stale.
func (b *Browser) NextPage(ctx context.Context) bool {
	b.mu.Lock()
	if b.inFlight || b.state == BrowseExhausted {
		b.mu.Unlock()
		return false
	}
	b.inFlight = true
	b.state = BrowseFetching
	gen := b.generation
	pageToLoad := b.page + 1
	filters := b.filters
	b.mu.Unlock()

	page := b.catalog.FetchPage(ctx, pageToLoad, filters)

	// Per-page processing: readability filter, rating attachment, local
	// facets. Dedupe happens under the lock against the accumulated list.
	survivors := make([]models.MediaItem, 0, len(page.Results))
	for _, item := range page.Results {
		if !utils.Displayable(item.Title) {
			continue
		}
		item.Rating = b.ratings.RatingFor(item.Key())
		if !filters.Matches(item) {
			continue
		}
		survivors = append(survivors, item)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.generation {
		// Filters changed while the fetch was in flight: the result
		// belongs to a list that no longer exists
		b.logger.WithFields(logrus.Fields{
			"context": b.name,
			"page":    pageToLoad,
		}).Debug("Discarding stale page fetch")
		return false
	}
	b.inFlight = false

	added := 0
	for _, item := range survivors {
		key := item.Key()
		if _, dup := b.seen[key]; dup {
			continue
		}
		b.seen[key] = struct{}{}
		b.items = append(b.items, item)
		added++
	}

	b.page = pageToLoad
	b.hasMore = page.HasMore

	if !page.HasMore || added == 0 {
		b.state = BrowseExhausted
		b.hasMore = false
	} else {
		b.state = BrowseAwaitingTrigger
	}

	b.logger.WithFields(logrus.Fields{
		"context":     b.name,
		"page":        pageToLoad,
		"added":       added,
		"accumulated": len(b.items),
		"has_more":    b.hasMore,
	}).Debug("Page folded into browsing context")

	return true
}

// Snapshot returns a copy of the current context state
func (b *Browser) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := make([]models.MediaItem, len(b.items))
	copy(items, b.items)

	return Snapshot{
		Items:   items,
		Page:    b.page,
		HasMore: b.hasMore,
		State:   b.state,
		Filters: b.filters,
	}
}

// Name returns the context name used in logs and the status endpoint
func (b *Browser) Name() string {
	return b.name
}

// MovieCatalog pages through movie discovery
type MovieCatalog struct {
	Client *tmdb.Client
}

// FetchPage translates the browsing filters into a discovery request
func (c MovieCatalog) FetchPage(ctx context.Context, page int, filters models.Filters) tmdb.Page {
	return c.Client.DiscoverMovies(ctx, tmdb.DiscoverOptions{
		Page:    page,
		GenreID: filters.GenreID,
		Year:    filters.Year,
	})
}

// ShowCatalog pages through show discovery
type ShowCatalog struct {
	Client *tmdb.Client
}

// FetchPage translates the browsing filters into a discovery request
func (c ShowCatalog) FetchPage(ctx context.Context, page int, filters models.Filters) tmdb.Page {
	return c.Client.DiscoverShows(ctx, tmdb.DiscoverOptions{
		Page:    page,
		GenreID: filters.GenreID,
		Year:    filters.Year,
	})
}
