package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/models"
	"github.com/jogit64/veganscope/internal/utils"
)

// Page is one logical page of catalog results
type Page struct {
	Page    int
	Results []models.MediaItem
	HasMore bool
}

// DiscoverOptions narrows a discovery request
type DiscoverOptions struct {
	Page    int
	GenreID *int64
	Year    string // four-digit string, empty means no constraint
}

// listResponse is the common paginated envelope of TMDB list endpoints
type listResponse struct {
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	Results    []rawItem `json:"results"`
}

// rawItem covers both movie and show payloads; field names differ between
// the two (title vs name, release_date vs first_air_date)
type rawItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	GenreIDs     []int64 `json:"genre_ids"`
	MediaType    string  `json:"media_type"` // only present on /search/multi
}

func (r rawItem) hasPoster() bool {
	return r.PosterPath != ""
}

// normalize maps a raw payload into the single internal shape
func (r rawItem) normalize(mediaType models.MediaType) models.MediaItem {
	item := models.MediaItem{
		ID:        r.ID,
		Overview:  r.Overview,
		GenreIDs:  r.GenreIDs,
		MediaType: mediaType,
	}

	if r.Title != "" {
		item.Title = r.Title
	} else {
		item.Title = r.Name
	}

	if mediaType == models.MediaTypeMovie {
		item.ReleaseDate = r.ReleaseDate
	} else {
		item.FirstAirDate = r.FirstAirDate
	}

	if r.PosterPath != "" {
		item.PosterURL = imageBaseURL + "/" + posterSize + r.PosterPath
	}
	if r.BackdropPath != "" {
		item.BackdropURL = imageBaseURL + "/" + backdropSize + r.BackdropPath
	}

	return item
}

// DiscoverMovies fetches one page of trending movies. Returns an empty page
// on any transport or parse failure.
func (c *Client) DiscoverMovies(ctx context.Context, opts DiscoverOptions) Page {
	params := url.Values{}
	params.Set("page", strconv.Itoa(opts.Page))
	params.Set("sort_by", defaultSort)
	if opts.GenreID != nil {
		params.Set("with_genres", strconv.FormatInt(*opts.GenreID, 10))
	}
	if opts.Year != "" {
		params.Set("year", opts.Year)
	}

	var resp listResponse
	if err := c.get(ctx, "/discover/movie", params, &resp); err != nil {
		c.logger.WithError(err).WithField("page", opts.Page).Error("Movie discovery failed")
		return Page{Page: opts.Page}
	}

	results := make([]models.MediaItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, r.normalize(models.MediaTypeMovie))
	}

	return Page{
		Page:    resp.Page,
		Results: results,
		HasMore: resp.Page < resp.TotalPages,
	}
}

// DiscoverShows fetches one logical page of trending shows. The upstream
// catalog has no reliable year filter for shows, so a year constraint is
// expressed as a first-air-date range instead; the upper edge is clamped to
// today when the selected year is the current one.
//
// Upstream pages routinely contain posterless or non-displayable entries, so
// the adapter keeps requesting successive upstream pages until pageSize
// displayable items are accumulated, the catalog is exhausted, or the
// backfill cap is hit.
func (c *Client) DiscoverShows(ctx context.Context, opts DiscoverOptions) Page {
	now := c.clock()
	today := now.Format("2006-01-02")
	currentYear := strconv.Itoa(now.Year())

	var gte, lte string
	if opts.Year != "" {
		gte = opts.Year + "-01-01"
		if opts.Year == currentYear {
			lte = today
		} else {
			lte = opts.Year + "-12-31"
		}
	} else {
		gte = firstAirDateFloor
		lte = today
	}

	var valid []models.MediaItem
	cursor := opts.Page
	lastTotalPages := cursor

	for len(valid) < c.pageSize && cursor < opts.Page+c.maxBackfillPages {
		params := url.Values{}
		params.Set("page", strconv.Itoa(cursor))
		params.Set("sort_by", defaultSort)
		params.Set("first_air_date.gte", gte)
		params.Set("first_air_date.lte", lte)
		if opts.GenreID != nil {
			params.Set("with_genres", strconv.FormatInt(*opts.GenreID, 10))
		}

		var resp listResponse
		if err := c.get(ctx, "/discover/tv", params, &resp); err != nil {
			c.logger.WithError(err).WithField("page", cursor).Error("Show discovery failed")
			return Page{Page: opts.Page}
		}

		if resp.TotalPages > 0 {
			lastTotalPages = resp.TotalPages
		}

		for _, r := range resp.Results {
			if !r.hasPoster() {
				continue
			}
			item := r.normalize(models.MediaTypeTV)
			if !utils.Displayable(item.Title) {
				continue
			}
			valid = append(valid, item)
		}

		cursor++
		if cursor > lastTotalPages {
			// Upstream catalog exhausted
			break
		}
	}

	if len(valid) > c.pageSize {
		valid = valid[:c.pageSize]
	}

	c.logger.WithFields(logrus.Fields{
		"page":          opts.Page,
		"pages_scanned": cursor - opts.Page,
		"results":       len(valid),
	}).Debug("Show discovery completed")

	return Page{
		Page:    opts.Page,
		Results: valid,
		HasMore: cursor <= lastTotalPages,
	}
}

// SearchMulti searches movies and shows by free text. Upstream annotates each
// result with its kind; anything that is not a movie or a show (people,
// collections) is discarded.
func (c *Client) SearchMulti(ctx context.Context, query string, page int) Page {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	var resp listResponse
	if err := c.get(ctx, "/search/multi", params, &resp); err != nil {
		c.logger.WithError(err).WithField("query", query).Error("Media search failed")
		return Page{Page: page}
	}

	results := make([]models.MediaItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		mediaType, ok := models.ParseMediaType(r.MediaType)
		if !ok {
			continue
		}
		results = append(results, r.normalize(mediaType))
	}

	return Page{
		Page:    resp.Page,
		Results: results,
		HasMore: resp.Page < resp.TotalPages,
	}
}

// detailResponse is the per-item payload; unlike list results it carries
// full genre objects instead of ids
type detailResponse struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Name         string         `json:"name"`
	Overview     string         `json:"overview"`
	PosterPath   string         `json:"poster_path"`
	BackdropPath string         `json:"backdrop_path"`
	ReleaseDate  string         `json:"release_date"`
	FirstAirDate string         `json:"first_air_date"`
	Genres       []models.Genre `json:"genres"`
}

// GetDetails fetches one item's detail record, normalized into the internal
// shape. The second return value is false when the item could not be
// fetched; callers must treat that as "exclude from results".
func (c *Client) GetDetails(ctx context.Context, id int64, mediaType models.MediaType) (*models.MediaItem, bool) {
	cacheKey := fmt.Sprintf("details:%s:%d", mediaType, id)
	if cached, found := c.cache.Get(cacheKey); found {
		item := cached.(models.MediaItem)
		return &item, true
	}

	var resp detailResponse
	endpoint := fmt.Sprintf("/%s/%d", mediaType, id)
	if err := c.get(ctx, endpoint, nil, &resp); err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"id":         id,
			"media_type": mediaType,
		}).Error("Details fetch failed")
		return nil, false
	}

	genreIDs := make([]int64, 0, len(resp.Genres))
	for _, g := range resp.Genres {
		genreIDs = append(genreIDs, g.ID)
	}

	raw := rawItem{
		ID:           resp.ID,
		Title:        resp.Title,
		Name:         resp.Name,
		Overview:     resp.Overview,
		PosterPath:   resp.PosterPath,
		BackdropPath: resp.BackdropPath,
		ReleaseDate:  resp.ReleaseDate,
		FirstAirDate: resp.FirstAirDate,
	}
	item := raw.normalize(mediaType)
	item.GenreIDs = genreIDs

	c.cache.SetDefault(cacheKey, item)
	return &item, true
}

// genreResponse wraps the genre list endpoints
type genreResponse struct {
	Genres []models.Genre `json:"genres"`
}

// GetGenres fetches the genre list for one media type. Movie and show genre
// ids live in separate namespaces. Returns an empty list on failure.
func (c *Client) GetGenres(ctx context.Context, mediaType models.MediaType) []models.Genre {
	cacheKey := "genres:" + string(mediaType)
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.([]models.Genre)
	}

	var resp genreResponse
	endpoint := fmt.Sprintf("/genre/%s/list", mediaType)
	if err := c.get(ctx, endpoint, nil, &resp); err != nil {
		c.logger.WithError(err).WithField("media_type", mediaType).Error("Genre fetch failed")
		return nil
	}

	c.cache.SetDefault(cacheKey, resp.Genres)
	return resp.Genres
}

// CombinedGenres merges the movie and show genre lists for a mixed view.
// A few ids coincidentally collide between the two namespaces; the movie
// list's naming is canonical for those.
func (c *Client) CombinedGenres(ctx context.Context) []models.Genre {
	movieGenres := c.GetGenres(ctx, models.MediaTypeMovie)
	tvGenres := c.GetGenres(ctx, models.MediaTypeTV)

	seen := make(map[int64]struct{}, len(movieGenres))
	combined := make([]models.Genre, 0, len(movieGenres)+len(tvGenres))
	for _, g := range movieGenres {
		seen[g.ID] = struct{}{}
		combined = append(combined, g)
	}
	for _, g := range tvGenres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		combined = append(combined, g)
	}

	return combined
}
