package controllers

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/jogit64/veganscope/internal/models"
	"github.com/jogit64/veganscope/internal/services/tmdb"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeCatalog struct {
	mu      sync.Mutex
	pages   map[int]tmdb.Page
	calls   []int
	entered chan struct{}
	release chan struct{}
}

func (c *fakeCatalog) FetchPage(_ context.Context, page int, _ models.Filters) tmdb.Page {
	c.mu.Lock()
	c.calls = append(c.calls, page)
	c.mu.Unlock()

	if c.entered != nil {
		c.entered <- struct{}{}
		<-c.release
	}

	p, ok := c.pages[page]
	if !ok {
		return tmdb.Page{Page: page}
	}
	return p
}

func (c *fakeCatalog) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

type fakeRatings struct {
	ratings map[models.MediaKey]models.EthicalRating
}

func (f fakeRatings) RatingFor(key models.MediaKey) models.EthicalRating {
	if r, ok := f.ratings[key]; ok {
		return r
	}
	return models.RatingUnrated
}

func item(id int64, mediaType models.MediaType, title string) models.MediaItem {
	return models.MediaItem{ID: id, Title: title, MediaType: mediaType}
}

func TestBrowserAccumulatesAndDeduplicates(t *testing.T) {
	catalog := &fakeCatalog{pages: map[int]tmdb.Page{
		1: {Page: 1, HasMore: true, Results: []models.MediaItem{
			item(1, models.MediaTypeMovie, "Okja"),
			item(2, models.MediaTypeMovie, "Babe"),
		}},
		2: {Page: 2, HasMore: true, Results: []models.MediaItem{
			item(2, models.MediaTypeMovie, "Babe"), // repeated upstream
			item(3, models.MediaTypeMovie, "Chicken Run"),
		}},
	}}
	b := NewBrowser("movies", catalog, fakeRatings{}, newTestLogger())

	if !b.NextPage(context.Background()) {
		t.Fatal("first NextPage returned false")
	}
	if !b.NextPage(context.Background()) {
		t.Fatal("second NextPage returned false")
	}

	snap := b.Snapshot()
	if len(snap.Items) != 3 {
		t.Fatalf("expected 3 accumulated items, got %d", len(snap.Items))
	}
	want := []int64{1, 2, 3}
	for i, id := range want {
		if snap.Items[i].ID != id {
			t.Errorf("item %d: expected id %d, got %d", i, id, snap.Items[i].ID)
		}
	}
	if snap.Page != 2 {
		t.Errorf("expected page 2, got %d", snap.Page)
	}
	if snap.State != BrowseAwaitingTrigger {
		t.Errorf("expected awaiting_trigger, got %s", snap.State)
	}
}

func TestBrowserKeepsSameIDAcrossMediaTypes(t *testing.T) {
	catalog := &fakeCatalog{pages: map[int]tmdb.Page{
		1: {Page: 1, HasMore: true, Results: []models.MediaItem{
			item(5, models.MediaTypeMovie, "Gunda"),
			item(5, models.MediaTypeTV, "Gunda Stories"),
		}},
	}}
	b := NewBrowser("search", catalog, fakeRatings{}, newTestLogger())

	b.NextPage(context.Background())

	snap := b.Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("movie 5 and show 5 are distinct items, got %d", len(snap.Items))
	}
}

func TestBrowserDropsUnreadableTitles(t *testing.T) {
	catalog := &fakeCatalog{pages: map[int]tmdb.Page{
		1: {Page: 1, HasMore: true, Results: []models.MediaItem{
			item(1, models.MediaTypeMovie, "Amélie"),
			item(2, models.MediaTypeMovie, "東京物語"),
		}},
	}}
	b := NewBrowser("movies", catalog, fakeRatings{}, newTestLogger())

	b.NextPage(context.Background())

	snap := b.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != 1 {
		t.Fatalf("expected only the readable title, got %+v", snap.Items)
	}
}

func TestBrowserRatingFacet(t *testing.T) {
	catalog := &fakeCatalog{pages: map[int]tmdb.Page{
		1: {Page: 1, HasMore: true, Results: []models.MediaItem{
			item(1, models.MediaTypeMovie, "Okja"),
			item(2, models.MediaTypeMovie, "Babe"),
			item(3, models.MediaTypeMovie, "Chicken Run"),
		}},
	}}
	ratings := fakeRatings{ratings: map[models.MediaKey]models.EthicalRating{
		{ID: 1, Type: models.MediaTypeMovie}: models.RatingGreen,
		{ID: 2, Type: models.MediaTypeMovie}: models.RatingRed,
	}}
	b := NewBrowser("movies", catalog, ratings, newTestLogger())

	b.SetFilters(models.Filters{Rating: models.RatingGreen})
	b.NextPage(context.Background())

	snap := b.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != 1 {
		t.Fatalf("expected only the green item, got %+v", snap.Items)
	}
	if snap.Items[0].Rating != models.RatingGreen {
		t.Errorf("expected attached rating green, got %s", snap.Items[0].Rating)
	}
}

func TestBrowserUnratedFacetMatchesItemsWithoutEvaluations(t *testing.T) {
	catalog := &fakeCatalog{pages: map[int]tmdb.Page{
		1: {Page: 1, HasMore: true, Results: []models.MediaItem{
			item(1, models.MediaTypeMovie, "Okja"),
			item(2, models.MediaTypeMovie, "Babe"),
		}},
	}}
	ratings := fakeRatings{ratings: map[models.MediaKey]models.EthicalRating{
		{ID: 1, Type: models.MediaTypeMovie}: models.RatingGreen,
	}}
	b := NewBrowser("movies", catalog, ratings, newTestLogger())

	b.SetFilters(models.Filters{Rating: models.RatingUnrated})
	b.NextPage(context.Background())

	snap := b.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != 2 {
		t.Fatalf("expected only the unrated item, got %+v", snap.Items)
	}
}

func TestBrowserFilterChangeResetsList(t *testing.T) {
	catalog := &fakeCatalog{pages: map[int]tmdb.Page{
		1: {Page: 1, HasMore: true, Results: []models.MediaItem{
			item(1, models.MediaTypeMovie, "Okja"),
			item(2, models.MediaTypeMovie, "Babe"),
		}},
	}}
	b := NewBrowser("movies", catalog, fakeRatings{}, newTestLogger())

	b.NextPage(context.Background())
	if len(b.Snapshot().Items) != 2 {
		t.Fatal("setup: expected 2 items before reset")
	}

	b.SetFilters(models.Filters{})

	snap := b.Snapshot()
	if len(snap.Items) != 0 {
		t.Errorf("expected empty list after filter change, got %d items", len(snap.Items))
	}
	if snap.Page != 0 {
		t.Errorf("expected pagination restarted, got page %d", snap.Page)
	}
	if snap.State != BrowseIdle {
		t.Errorf("expected idle state after reset, got %s", snap.State)
	}

	// The reset cleared the seen set: items from before the reset count as new
	b.NextPage(context.Background())
	if got := len(b.Snapshot().Items); got != 2 {
		t.Errorf("expected items re-accumulated after reset, got %d", got)
	}
}

func TestBrowserDiscardsStaleFetchAfterReset(t *testing.T) {
	catalog := &fakeCatalog{
		pages: map[int]tmdb.Page{
			1: {Page: 1, HasMore: true, Results: []models.MediaItem{
				item(1, models.MediaTypeMovie, "Okja"),
			}},
		},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	b := NewBrowser("movies", catalog, fakeRatings{}, newTestLogger())

	done := make(chan bool)
	go func() {
		done <- b.NextPage(context.Background())
	}()

	<-catalog.entered
	b.SetFilters(models.Filters{Year: "2020"})
	close(catalog.release)

	if applied := <-done; applied {
		t.Error("fetch completed after a reset must be discarded")
	}
	snap := b.Snapshot()
	if len(snap.Items) != 0 {
		t.Errorf("stale results leaked into the reset list: %+v", snap.Items)
	}
	if snap.State != BrowseIdle {
		t.Errorf("expected idle state, got %s", snap.State)
	}
}

func TestBrowserCoalescesConcurrentTriggers(t *testing.T) {
	catalog := &fakeCatalog{
		pages: map[int]tmdb.Page{
			1: {Page: 1, HasMore: true, Results: []models.MediaItem{
				item(1, models.MediaTypeMovie, "Okja"),
			}},
		},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	b := NewBrowser("movies", catalog, fakeRatings{}, newTestLogger())

	done := make(chan bool)
	go func() {
		done <- b.NextPage(context.Background())
	}()

	<-catalog.entered
	if b.NextPage(context.Background()) {
		t.Error("second trigger during an in-flight fetch must be dropped")
	}
	close(catalog.release)
	<-done

	if catalog.callCount() != 1 {
		t.Errorf("expected a single catalog request, got %d", catalog.callCount())
	}
}

func TestBrowserExhaustion(t *testing.T) {
	t.Run("catalog reports no more pages", func(t *testing.T) {
		catalog := &fakeCatalog{pages: map[int]tmdb.Page{
			1: {Page: 1, HasMore: false, Results: []models.MediaItem{
				item(1, models.MediaTypeMovie, "Okja"),
			}},
		}}
		b := NewBrowser("movies", catalog, fakeRatings{}, newTestLogger())

		b.NextPage(context.Background())

		snap := b.Snapshot()
		if snap.State != BrowseExhausted || snap.HasMore {
			t.Errorf("expected exhausted, got state=%s has_more=%v", snap.State, snap.HasMore)
		}
		if b.NextPage(context.Background()) {
			t.Error("NextPage on an exhausted context must be a no-op")
		}
		if catalog.callCount() != 1 {
			t.Errorf("exhausted context kept fetching: %d calls", catalog.callCount())
		}
	})

	t.Run("page yields no new items", func(t *testing.T) {
		catalog := &fakeCatalog{pages: map[int]tmdb.Page{
			1: {Page: 1, HasMore: true, Results: []models.MediaItem{
				item(1, models.MediaTypeMovie, "Okja"),
			}},
			2: {Page: 2, HasMore: true, Results: []models.MediaItem{
				item(1, models.MediaTypeMovie, "Okja"), // all duplicates
			}},
		}}
		b := NewBrowser("movies", catalog, fakeRatings{}, newTestLogger())

		b.NextPage(context.Background())
		b.NextPage(context.Background())

		if got := b.Snapshot().State; got != BrowseExhausted {
			t.Errorf("expected exhausted after a page of duplicates, got %s", got)
		}
	})

	t.Run("failed fetch exhausts the context", func(t *testing.T) {
		catalog := &fakeCatalog{} // every page comes back empty
		b := NewBrowser("movies", catalog, fakeRatings{}, newTestLogger())

		b.NextPage(context.Background())

		snap := b.Snapshot()
		if snap.State != BrowseExhausted || len(snap.Items) != 0 {
			t.Errorf("expected empty exhausted context, got state=%s items=%d", snap.State, len(snap.Items))
		}
	})
}

func TestSearchCatalogEmptyQuery(t *testing.T) {
	catalog := &SearchCatalog{}

	page := catalog.FetchPage(context.Background(), 1, models.Filters{})
	if len(page.Results) != 0 || page.HasMore {
		t.Errorf("empty query must yield an exhausted empty page, got %+v", page)
	}

	catalog.SetQuery("   ")
	page = catalog.FetchPage(context.Background(), 1, models.Filters{})
	if len(page.Results) != 0 || page.HasMore {
		t.Errorf("blank query must yield an exhausted empty page, got %+v", page)
	}
}
