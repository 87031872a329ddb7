package services

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/SreekarSamrudh/e-shop-central/internal/db"
	"github.com/SreekarSamrudh/e-shop-central/internal/metrics"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
	"github.com/SreekarSamrudh/e-shop-central/pkg/logger"
)

// DefaultWarehouse receives stock mirrored from vendor edits when no
// warehouse is named.
const DefaultWarehouse = "WH-001"

// InventoryService is the vendor inventory screen: listing owned products
// and setting stock directly. Checkout decrements happen in OrderService;
// the two writers share the same stock field.
type InventoryService struct {
	db      *db.DB
	metrics *metrics.AppMetrics
}

// NewInventoryService creates a new inventory service
func NewInventoryService(db *db.DB, metrics *metrics.AppMetrics) *InventoryService {
	return &InventoryService{
		db:      db,
		metrics: metrics,
	}
}

// ListVendorProducts returns the products owned by a vendor.
func (s *InventoryService) ListVendorProducts(ctx context.Context, vendorID int64) ([]models.Product, error) {
	start := time.Now()
	query := "SELECT " + productColumns + " FROM products WHERE vendor_id = ? ORDER BY id"
	rows, err := s.db.QueryContext(ctx, query, vendorID)
	s.metrics.RecordDBQuery(ctx, "SELECT", "products", query, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// SetStock sets a vendor-owned product's stock to an absolute value and
// mirrors it into the warehouse inventory record. Products the vendor does
// not own are reported as not found.
func (s *InventoryService) SetStock(ctx context.Context, vendorID, productID int64, stock int, warehouseID string) error {
	if stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	if warehouseID == "" {
		warehouseID = DefaultWarehouse
	}

	start := time.Now()
	query := "UPDATE products SET stock = ?, updated_at = NOW() WHERE id = ? AND vendor_id = ?"
	result, err := s.db.ExecContext(ctx, query, stock, productID, vendorID)
	s.metrics.RecordDBQuery(ctx, "UPDATE", "products", query, start, err == nil)
	if err != nil {
		return fmt.Errorf("failed to set stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	start = time.Now()
	invQuery := `
		INSERT INTO inventory (product_id, warehouse_id, quantity) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = VALUES(quantity), updated_at = NOW()
	`
	_, err = s.db.ExecContext(ctx, invQuery, productID, warehouseID, stock)
	s.metrics.RecordDBQuery(ctx, "UPSERT", "inventory", invQuery, start, err == nil)
	if err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}

	s.metrics.InventoryLevel.Record(ctx, int64(stock), metric.WithAttributes(s.metrics.WithServiceName([]attribute.KeyValue{
		attribute.Int64("product_id", productID),
		attribute.String("warehouse_id", warehouseID),
	})...))

	logger.FromCtx(ctx).Info("vendor stock set",
		"vendor_id", vendorID, "product_id", productID, "stock", stock, "warehouse_id", warehouseID)

	return nil
}
