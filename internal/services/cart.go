package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/SreekarSamrudh/e-shop-central/internal/checkout"
	"github.com/SreekarSamrudh/e-shop-central/internal/db"
	"github.com/SreekarSamrudh/e-shop-central/internal/metrics"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

// CartService handles cart-related operations
type CartService struct {
	db      *db.DB
	metrics *metrics.AppMetrics
}

// NewCartService creates a new cart service
func NewCartService(db *db.DB, metrics *metrics.AppMetrics) *CartService {
	cs := &CartService{
		db:      db,
		metrics: metrics,
	}
	// Periodic active-carts gauge
	go cs.monitorActiveCarts()
	return cs
}

// monitorActiveCarts periodically updates active carts count
func (s *CartService) monitorActiveCarts() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx := context.Background()
		query := "SELECT COUNT(DISTINCT c.id) FROM carts c INNER JOIN cart_items ci ON c.id = ci.cart_id"
		start := time.Now()
		var count int
		err := s.db.QueryRowContext(ctx, query).Scan(&count)
		s.metrics.RecordDBQuery(ctx, "SELECT", "carts", query, start, err == nil)
		if err == nil {
			s.metrics.ActiveCartsCount.Record(ctx, int64(count), metric.WithAttributes(s.metrics.WithServiceName([]attribute.KeyValue{})...))
		}
	}
}

// GetOrCreateCart gets or creates a cart for a user. Carts are created
// lazily on first touch.
func (s *CartService) GetOrCreateCart(ctx context.Context, userID int64) (*models.Cart, error) {
	start := time.Now()

	query := "SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = ? LIMIT 1"
	var cart models.Cart
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt,
	)
	s.metrics.RecordDBQuery(ctx, "SELECT", "carts", query, start, err == nil || err == sql.ErrNoRows)

	if err == sql.ErrNoRows {
		start = time.Now()
		insertQuery := "INSERT INTO carts (user_id) VALUES (?)"
		result, err := s.db.ExecContext(ctx, insertQuery, userID)
		s.metrics.RecordDBQuery(ctx, "INSERT", "carts", insertQuery, start, err == nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get cart ID: %w", err)
		}

		cart.ID = id
		cart.UserID = userID
		cart.CreatedAt = time.Now()
		cart.UpdatedAt = time.Now()
	} else if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

// loadItems returns the cart's lines joined with current product data, in
// insertion order.
func (s *CartService) loadItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	start := time.Now()

	query := `
		SELECT ci.product_id, p.name, p.price, p.image_url, ci.quantity
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = ?
		ORDER BY ci.id
	`
	rows, err := s.db.QueryContext(ctx, query, cartID)
	s.metrics.RecordDBQuery(ctx, "SELECT", "cart_items", query, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.ImageURL, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetCart returns the cart with all items and the full-precision total.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*models.CartResponse, error) {
	cart, err := s.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	s.updateCartItemsCount(ctx, cart.ID, userID, len(items))

	return &models.CartResponse{
		Cart:  cart,
		Items: items,
		Total: checkout.Summarize(items).Total,
	}, nil
}

// AddToCart adds one unit of a product to the user's cart. The add is
// rejected while the product is out of stock; that policy lives here, the
// merger never checks stock. Persistence is an atomic upsert so two
// concurrent adds both land.
func (s *CartService) AddToCart(ctx context.Context, userID, productID int64) (*models.CartResponse, error) {
	start := time.Now()
	productQuery := "SELECT " + productColumns + " FROM products WHERE id = ?"
	var product models.Product
	err := scanProduct(s.db.QueryRowContext(ctx, productQuery, productID), &product)
	s.metrics.RecordDBQuery(ctx, "SELECT", "products", productQuery, start, err == nil || err == sql.ErrNoRows)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product.Stock <= 0 {
		return nil, ErrOutOfStock
	}

	cart, err := s.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	// Increment happens at the store, not read-modify-write in process, so
	// concurrent adds for the same product never drop an increment.
	start = time.Now()
	upsertQuery := `
		INSERT INTO cart_items (cart_id, product_id, quantity) VALUES (?, ?, 1)
		ON DUPLICATE KEY UPDATE quantity = quantity + 1, updated_at = NOW()
	`
	_, err = s.db.ExecContext(ctx, upsertQuery, cart.ID, productID)
	s.metrics.RecordDBQuery(ctx, "UPSERT", "cart_items", upsertQuery, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}

	merged := checkout.MergeItem(items, product)
	s.updateCartItemsCount(ctx, cart.ID, userID, len(merged))

	return &models.CartResponse{
		Cart:  cart,
		Items: merged,
		Total: checkout.Summarize(merged).Total,
	}, nil
}

// SetQuantity replaces one line's quantity. Quantities below 1 are
// rejected with checkout.ErrQuantityTooLow; removal is explicit via
// RemoveFromCart.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID int64, quantity int) (*models.CartResponse, error) {
	cart, err := s.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	updated, err := checkout.SetQuantity(items, productID, quantity)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	query := "UPDATE cart_items SET quantity = ?, updated_at = NOW() WHERE cart_id = ? AND product_id = ?"
	_, err = s.db.ExecContext(ctx, query, quantity, cart.ID, productID)
	s.metrics.RecordDBQuery(ctx, "UPDATE", "cart_items", query, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return &models.CartResponse{
		Cart:  cart,
		Items: updated,
		Total: checkout.Summarize(updated).Total,
	}, nil
}

// RemoveFromCart drops one line from the user's cart.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID int64) (*models.CartResponse, error) {
	cart, err := s.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	query := "DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?"
	_, err = s.db.ExecContext(ctx, query, cart.ID, productID)
	s.metrics.RecordDBQuery(ctx, "DELETE", "cart_items", query, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to remove item from cart: %w", err)
	}

	remaining := checkout.RemoveItem(items, productID)
	s.updateCartItemsCount(ctx, cart.ID, userID, len(remaining))

	return &models.CartResponse{
		Cart:  cart,
		Items: remaining,
		Total: checkout.Summarize(remaining).Total,
	}, nil
}

// updateCartItemsCount updates the cart items count gauge metric
func (s *CartService) updateCartItemsCount(ctx context.Context, cartID, userID int64, count int) {
	cartAttrs := s.metrics.WithServiceName([]attribute.KeyValue{
		attribute.Int64("user_id", userID),
		attribute.Int64("cart_id", cartID),
	})
	s.metrics.CartItemsCount.Record(ctx, int64(count), metric.WithAttributes(cartAttrs...))
}
