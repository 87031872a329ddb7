package checkout

import "github.com/SreekarSamrudh/e-shop-central/internal/models"

// AverageRating returns the arithmetic mean of the reviews' ratings, or 0
// for an empty set. Used for single-product pages and once per product in
// catalog listings.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
