package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/SreekarSamrudh/e-shop-central/internal/cache"
	"github.com/SreekarSamrudh/e-shop-central/internal/checkout"
	"github.com/SreekarSamrudh/e-shop-central/internal/db"
	"github.com/SreekarSamrudh/e-shop-central/internal/metrics"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

// ProductService handles catalog reads and the derived rating summary.
type ProductService struct {
	db      *db.DB
	metrics *metrics.AppMetrics
	ratings *cache.RatingCache
}

// NewProductService creates a new product service
func NewProductService(db *db.DB, metrics *metrics.AppMetrics, ratings *cache.RatingCache) *ProductService {
	return &ProductService{
		db:      db,
		metrics: metrics,
		ratings: ratings,
	}
}

const productColumns = "id, COALESCE(vendor_id, 0), name, description, price, stock, category, image_url, created_at, updated_at"

func scanProduct(row interface{ Scan(...any) error }, p *models.Product) error {
	return row.Scan(&p.ID, &p.VendorID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
}

// ListProducts returns a paginated catalog page, each product carrying its
// derived rating summary. Category is an optional equality filter.
func (s *ProductService) ListProducts(ctx context.Context, category string, limit, offset int) ([]models.ProductListing, error) {
	start := time.Now()

	query := "SELECT " + productColumns + " FROM products LIMIT ? OFFSET ?"
	args := []any{limit, offset}
	if category != "" {
		query = "SELECT " + productColumns + " FROM products WHERE category = ? LIMIT ? OFFSET ?"
		args = []any{category, limit, offset}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	s.metrics.RecordDBQuery(ctx, "SELECT", "products", query, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var listings []models.ProductListing
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		listings = append(listings, models.ProductListing{Product: p})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// One rating summary per listed product, cache-first.
	for i := range listings {
		summary, err := s.RatingSummary(ctx, listings[i].ID)
		if err != nil {
			return nil, err
		}
		listings[i].AvgRating = summary.Avg
		listings[i].ReviewCount = summary.Count
	}

	return listings, nil
}

// GetProduct returns a product by ID with its rating summary, recording a
// product view.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.ProductListing, error) {
	start := time.Now()

	query := "SELECT " + productColumns + " FROM products WHERE id = ?"
	var p models.Product
	err := scanProduct(s.db.QueryRowContext(ctx, query, id), &p)
	s.metrics.RecordDBQuery(ctx, "SELECT", "products", query, start, err == nil || err == sql.ErrNoRows)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	summary, err := s.RatingSummary(ctx, id)
	if err != nil {
		return nil, err
	}

	viewAttrs := s.metrics.WithServiceName([]attribute.KeyValue{
		attribute.Int64("product_id", id),
		attribute.String("product_category", p.Category),
	})
	s.metrics.ProductsViewed.Add(ctx, 1, metric.WithAttributes(viewAttrs...))

	return &models.ProductListing{Product: p, AvgRating: summary.Avg, ReviewCount: summary.Count}, nil
}

// RatingSummary returns a product's aggregate rating, redis-cached. On a
// miss the product's reviews are loaded and reduced with the pure
// calculator, then cached for the TTL.
func (s *ProductService) RatingSummary(ctx context.Context, productID int64) (cache.RatingSummary, error) {
	if summary, ok := s.ratings.Get(ctx, productID); ok {
		return summary, nil
	}

	start := time.Now()
	query := "SELECT rating FROM reviews WHERE product_id = ?"
	rows, err := s.db.QueryContext(ctx, query, productID)
	s.metrics.RecordDBQuery(ctx, "SELECT", "reviews", query, start, err == nil)
	if err != nil {
		return cache.RatingSummary{}, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.Rating); err != nil {
			return cache.RatingSummary{}, fmt.Errorf("failed to scan rating: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return cache.RatingSummary{}, err
	}

	summary := cache.RatingSummary{
		Avg:   checkout.AverageRating(reviews),
		Count: len(reviews),
	}
	s.ratings.Set(ctx, productID, summary)
	return summary, nil
}

// GetProductInventory returns inventory level for a product in one warehouse.
func (s *ProductService) GetProductInventory(ctx context.Context, productID int64, warehouseID string) (*models.Inventory, error) {
	start := time.Now()
	query := "SELECT id, product_id, warehouse_id, quantity, created_at, updated_at FROM inventory WHERE product_id = ? AND warehouse_id = ?"
	var inv models.Inventory
	err := s.db.QueryRowContext(ctx, query, productID, warehouseID).Scan(
		&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.CreatedAt, &inv.UpdatedAt,
	)
	s.metrics.RecordDBQuery(ctx, "SELECT", "inventory", query, start, err == nil || err == sql.ErrNoRows)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	invAttrs := s.metrics.WithServiceName([]attribute.KeyValue{
		attribute.Int64("product_id", productID),
		attribute.String("warehouse_id", warehouseID),
	})
	s.metrics.InventoryLevel.Record(ctx, int64(inv.Quantity), metric.WithAttributes(invAttrs...))

	return &inv, nil
}
