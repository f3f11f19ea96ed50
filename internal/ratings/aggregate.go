// Package ratings reduces per-user ethical evaluations into a single
// consensus rating per media item.
package ratings

import "github.com/jogit64/veganscope/internal/models"

// Aggregate computes the consensus rating for one media item from all of its
// evaluations. Rules, in order:
//
//  1. No evaluations (or only evaluations carrying an unknown remote value,
//     which are excluded from the counts): unrated.
//  2. Exactly one rating holds the highest count: that rating wins.
//  3. Tie at the highest count: severity decides, red over yellow over green.
//
// Ties are detected by exact count equality at the maximum, not by branch
// fallthrough. Pure function, no side effects.
func Aggregate(evals []models.Evaluation) models.EthicalRating {
	if len(evals) == 0 {
		return models.RatingUnrated
	}

	counts := map[models.EthicalRating]int{}
	for _, e := range evals {
		if !e.Rating.Storable() {
			// Unknown sentinel from the store adapter: treat as absent
			continue
		}
		counts[e.Rating]++
	}

	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	if max == 0 {
		return models.RatingUnrated
	}

	var winner models.EthicalRating
	winners := 0
	for r, n := range counts {
		if n == max {
			winner = r
			winners++
		}
	}
	if winners == 1 {
		return winner
	}

	// Severity fallback on ties
	if counts[models.RatingRed] == max {
		return models.RatingRed
	}
	if counts[models.RatingYellow] == max {
		return models.RatingYellow
	}
	return models.RatingGreen
}
