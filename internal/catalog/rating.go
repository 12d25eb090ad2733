package catalog

import "math"

// AggregateRatings computes the review count and average rating for one
// product. The average is rounded to the nearest 0.5 so the UI can map
// it onto half stars, then re-rounded to one decimal for display. Both
// roundings are part of the visible contract; do not collapse them.
func AggregateRatings(reviews []Review) RatingSummary {
	if len(reviews) == 0 {
		return RatingSummary{Total: 0, Rating: 0}
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}

	avg := float64(sum) / float64(len(reviews))
	halfStar := math.Round(avg*2) / 2

	return RatingSummary{
		Total:  len(reviews),
		Rating: math.Round(halfStar*10) / 10,
	}
}
