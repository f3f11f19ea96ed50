package models

// MediaType represents the type of media (movie or tv show)
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Valid reports whether the value is one of the two supported media types
func (t MediaType) Valid() bool {
	return t == MediaTypeMovie || t == MediaTypeTV
}

// ParseMediaType validates a media type string coming from the API surface
func ParseMediaType(s string) (MediaType, bool) {
	switch MediaType(s) {
	case MediaTypeMovie, MediaTypeTV:
		return MediaType(s), true
	}
	return "", false
}

// EthicalRating represents the crowd-sourced ethical verdict on a media item.
// Only green, yellow and red are ever stored; unrated is derived ("no
// evaluations exist") and unknown marks a remote value outside the expected
// vocabulary.
type EthicalRating string

const (
	RatingGreen   EthicalRating = "green"
	RatingYellow  EthicalRating = "yellow"
	RatingRed     EthicalRating = "red"
	RatingUnrated EthicalRating = "unrated"
	RatingUnknown EthicalRating = "unknown"
)

// Storable reports whether the rating is one of the three values accepted by
// the evaluation store
func (r EthicalRating) Storable() bool {
	switch r {
	case RatingGreen, RatingYellow, RatingRed:
		return true
	}
	return false
}
