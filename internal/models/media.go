package models

import "strings"

// MediaKey is the unique identity of a catalog entry. A movie and a show may
// share a numeric id upstream, so the id alone never identifies an item.
type MediaKey struct {
	ID   int64
	Type MediaType
}

// MediaItem represents one normalized catalog entry (movie or tv show)
type MediaItem struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	Overview     string        `json:"overview,omitempty"`
	PosterURL    string        `json:"poster_url,omitempty"`
	BackdropURL  string        `json:"backdrop_url,omitempty"`
	ReleaseDate  string        `json:"release_date,omitempty"`   // movies only
	FirstAirDate string        `json:"first_air_date,omitempty"` // shows only
	GenreIDs     []int64       `json:"genre_ids"`
	MediaType    MediaType     `json:"media_type"`
	Rating       EthicalRating `json:"evaluation_rating,omitempty"` // derived, attached by the pipeline
}

// Key returns the item's identity pair
func (m MediaItem) Key() MediaKey {
	return MediaKey{ID: m.ID, Type: m.MediaType}
}

// Date returns whichever of the two date fields is populated
func (m MediaItem) Date() string {
	if m.MediaType == MediaTypeMovie {
		return m.ReleaseDate
	}
	return m.FirstAirDate
}

// Genre represents a catalog genre. Movie and show genre ids live in separate
// namespaces upstream.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Filters holds the browsing criteria for one context. Zero values mean "no
// constraint". A pure value object: any change is a hard reset of the
// browsing context, never an incremental refinement.
type Filters struct {
	MediaType MediaType     `json:"media_type,omitempty"` // empty means all
	GenreID   *int64        `json:"genre_id,omitempty"`
	Year      string        `json:"year,omitempty"` // four-digit string
	Rating    EthicalRating `json:"ethical_rating,omitempty"`
}

// Matches applies the local facets to an item whose derived rating has
// already been attached. Used for facets the upstream catalog cannot filter
// on (ethical rating everywhere, genre/year on mixed search results).
func (f Filters) Matches(item MediaItem) bool {
	if f.MediaType != "" && item.MediaType != f.MediaType {
		return false
	}
	if f.GenreID != nil {
		found := false
		for _, id := range item.GenreIDs {
			if id == *f.GenreID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Year != "" {
		date := item.Date()
		if date == "" || !strings.HasPrefix(date, f.Year) {
			return false
		}
	}
	if f.Rating != "" {
		rating := item.Rating
		if rating == "" {
			rating = RatingUnrated
		}
		if rating != f.Rating {
			return false
		}
	}
	return true
}
