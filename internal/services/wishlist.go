package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SreekarSamrudh/e-shop-central/internal/db"
	"github.com/SreekarSamrudh/e-shop-central/internal/metrics"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

// WishlistService handles the per-user wishlist.
type WishlistService struct {
	db      *db.DB
	metrics *metrics.AppMetrics
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(db *db.DB, metrics *metrics.AppMetrics) *WishlistService {
	return &WishlistService{
		db:      db,
		metrics: metrics,
	}
}

// ListWishlist returns the user's wishlisted products with catalog data.
func (s *WishlistService) ListWishlist(ctx context.Context, userID int64) ([]models.WishlistItem, error) {
	start := time.Now()
	query := `
		SELECT w.product_id, p.name, p.price, p.image_url, p.stock, w.created_at
		FROM wishlists w
		JOIN products p ON w.product_id = p.id
		WHERE w.user_id = ?
		ORDER BY w.created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	s.metrics.RecordDBQuery(ctx, "SELECT", "wishlists", query, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}
	defer rows.Close()

	var items []models.WishlistItem
	for rows.Next() {
		var item models.WishlistItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.ImageURL, &item.Stock, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddToWishlist adds a product to the user's wishlist. Adding a product
// that is already wishlisted is idempotent: the duplicate key is
// swallowed, not surfaced.
func (s *WishlistService) AddToWishlist(ctx context.Context, userID, productID int64) error {
	start := time.Now()
	existsQuery := "SELECT EXISTS(SELECT 1 FROM products WHERE id = ?)"
	var exists bool
	err := s.db.QueryRowContext(ctx, existsQuery, productID).Scan(&exists)
	s.metrics.RecordDBQuery(ctx, "SELECT", "products", existsQuery, start, err == nil)
	if err != nil {
		return fmt.Errorf("failed to verify product: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	start = time.Now()
	query := "INSERT INTO wishlists (user_id, product_id) VALUES (?, ?)"
	_, err = s.db.ExecContext(ctx, query, userID, productID)
	if isDuplicateEntry(err) {
		s.metrics.RecordDBQuery(ctx, "INSERT", "wishlists", query, start, true)
		return nil
	}
	s.metrics.RecordDBQuery(ctx, "INSERT", "wishlists", query, start, err == nil)
	if err != nil {
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return nil
}

// RemoveFromWishlist drops one product from the user's wishlist.
func (s *WishlistService) RemoveFromWishlist(ctx context.Context, userID, productID int64) error {
	start := time.Now()
	query := "DELETE FROM wishlists WHERE user_id = ? AND product_id = ?"
	_, err := s.db.ExecContext(ctx, query, userID, productID)
	s.metrics.RecordDBQuery(ctx, "DELETE", "wishlists", query, start, err == nil)
	if err != nil {
		return fmt.Errorf("failed to remove from wishlist: %w", err)
	}
	return nil
}
