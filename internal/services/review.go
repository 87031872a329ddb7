package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/SreekarSamrudh/e-shop-central/internal/cache"
	"github.com/SreekarSamrudh/e-shop-central/internal/db"
	"github.com/SreekarSamrudh/e-shop-central/internal/metrics"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

// ErrInvalidRating rejects ratings outside 1..5.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// ReviewService handles product review reads and writes.
type ReviewService struct {
	db      *db.DB
	metrics *metrics.AppMetrics
	ratings *cache.RatingCache
}

// NewReviewService creates a new review service
func NewReviewService(db *db.DB, metrics *metrics.AppMetrics, ratings *cache.RatingCache) *ReviewService {
	return &ReviewService{
		db:      db,
		metrics: metrics,
		ratings: ratings,
	}
}

// ListReviews returns all reviews for a product, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, productID int64) ([]models.Review, error) {
	start := time.Now()
	query := "SELECT id, product_id, user_id, rating, COALESCE(comment, ''), created_at FROM reviews WHERE product_id = ? ORDER BY created_at DESC"
	rows, err := s.db.QueryContext(ctx, query, productID)
	s.metrics.RecordDBQuery(ctx, "SELECT", "reviews", query, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// CreateReview records a user's rating for a product, replacing any
// earlier review by the same user. The product's cached rating summary is
// dropped so the next read recomputes the mean.
func (s *ReviewService) CreateReview(ctx context.Context, userID, productID int64, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	start := time.Now()
	existsQuery := "SELECT EXISTS(SELECT 1 FROM products WHERE id = ?)"
	var exists bool
	err := s.db.QueryRowContext(ctx, existsQuery, productID).Scan(&exists)
	s.metrics.RecordDBQuery(ctx, "SELECT", "products", existsQuery, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to verify product: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	start = time.Now()
	query := `
		INSERT INTO reviews (product_id, user_id, rating, comment) VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE rating = VALUES(rating), comment = VALUES(comment)
	`
	result, err := s.db.ExecContext(ctx, query, productID, userID, rating, comment)
	s.metrics.RecordDBQuery(ctx, "UPSERT", "reviews", query, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get review ID: %w", err)
	}

	s.ratings.Invalidate(ctx, productID)

	s.metrics.ReviewsSubmitted.Add(ctx, 1, metric.WithAttributes(s.metrics.WithServiceName([]attribute.KeyValue{
		attribute.Int64("product_id", productID),
		attribute.Int("rating", rating),
	})...))

	return &models.Review{
		ID:        id,
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}, nil
}
