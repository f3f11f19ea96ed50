package ratings

import (
	"testing"

	"github.com/jogit64/veganscope/internal/models"
)

func evalsWith(ratings ...models.EthicalRating) []models.Evaluation {
	evals := make([]models.Evaluation, 0, len(ratings))
	for _, r := range ratings {
		evals = append(evals, models.Evaluation{
			MediaID:   42,
			MediaType: models.MediaTypeMovie,
			Username:  "someone",
			Rating:    r,
		})
	}
	return evals
}

func TestAggregateEmpty(t *testing.T) {
	if got := Aggregate(nil); got != models.RatingUnrated {
		t.Errorf("Aggregate(nil) = %v, want unrated", got)
	}
	if got := Aggregate([]models.Evaluation{}); got != models.RatingUnrated {
		t.Errorf("Aggregate(empty) = %v, want unrated", got)
	}
}

func TestAggregateStrictPlurality(t *testing.T) {
	tests := []struct {
		name    string
		ratings []models.EthicalRating
		want    models.EthicalRating
	}{
		{
			name:    "green plurality beats one red",
			ratings: []models.EthicalRating{models.RatingRed, models.RatingGreen, models.RatingGreen},
			want:    models.RatingGreen,
		},
		{
			name:    "yellow plurality",
			ratings: []models.EthicalRating{models.RatingYellow, models.RatingYellow, models.RatingGreen},
			want:    models.RatingYellow,
		},
		{
			name:    "single evaluation wins outright",
			ratings: []models.EthicalRating{models.RatingGreen},
			want:    models.RatingGreen,
		},
		{
			name:    "red plurality",
			ratings: []models.EthicalRating{models.RatingRed, models.RatingRed, models.RatingYellow, models.RatingGreen},
			want:    models.RatingRed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Aggregate(evalsWith(tt.ratings...)); got != tt.want {
				t.Errorf("Aggregate(%v) = %v, want %v", tt.ratings, got, tt.want)
			}
		})
	}
}

func TestAggregateTieSeverity(t *testing.T) {
	tests := []struct {
		name    string
		ratings []models.EthicalRating
		want    models.EthicalRating
	}{
		{
			name:    "red and yellow tied resolves to red",
			ratings: []models.EthicalRating{models.RatingRed, models.RatingYellow},
			want:    models.RatingRed,
		},
		{
			name:    "three-way tie resolves to red",
			ratings: []models.EthicalRating{models.RatingRed, models.RatingYellow, models.RatingGreen},
			want:    models.RatingRed,
		},
		{
			name:    "yellow and green tied without red resolves to yellow",
			ratings: []models.EthicalRating{models.RatingYellow, models.RatingGreen},
			want:    models.RatingYellow,
		},
		{
			name:    "two-two tie red wins over green",
			ratings: []models.EthicalRating{models.RatingGreen, models.RatingRed, models.RatingGreen, models.RatingRed},
			want:    models.RatingRed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Aggregate(evalsWith(tt.ratings...)); got != tt.want {
				t.Errorf("Aggregate(%v) = %v, want %v", tt.ratings, got, tt.want)
			}
		})
	}
}

func TestAggregateUnknownExcluded(t *testing.T) {
	// Unknown sentinels never contribute to the counts
	evals := evalsWith(models.RatingUnknown, models.RatingGreen)
	if got := Aggregate(evals); got != models.RatingGreen {
		t.Errorf("Aggregate with unknown = %v, want green", got)
	}

	// A collection holding only unknowns behaves like an empty one
	if got := Aggregate(evalsWith(models.RatingUnknown, models.RatingUnknown)); got != models.RatingUnrated {
		t.Errorf("Aggregate(all unknown) = %v, want unrated", got)
	}
}

func TestAggregateNeverUnratedForStoredRatings(t *testing.T) {
	stored := []models.EthicalRating{models.RatingGreen, models.RatingYellow, models.RatingRed}
	for _, a := range stored {
		for _, b := range stored {
			got := Aggregate(evalsWith(a, b))
			if !got.Storable() {
				t.Errorf("Aggregate(%v, %v) = %v, want one of green/yellow/red", a, b, got)
			}
		}
	}
}
