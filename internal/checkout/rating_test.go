package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

func TestAverageRatingEmptyIsZero(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 0.0, AverageRating([]models.Review{}))
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"single review", []int{5}, 5.0},
		{"whole mean", []int{4, 5, 3}, 4.0},
		{"fractional mean", []int{4, 5}, 4.5},
		{"all minimum", []int{1, 1, 1}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := make([]models.Review, 0, len(tt.ratings))
			for _, r := range tt.ratings {
				reviews = append(reviews, models.Review{Rating: r})
			}
			assert.InDelta(t, tt.want, AverageRating(reviews), 1e-9)
		})
	}
}
