package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/SreekarSamrudh/e-shop-central/internal/checkout"
	"github.com/SreekarSamrudh/e-shop-central/internal/db"
	"github.com/SreekarSamrudh/e-shop-central/internal/metrics"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
	"github.com/SreekarSamrudh/e-shop-central/pkg/logger"
)

// statusTransitions is the order status machine: pending → processing →
// shipped → delivered, with cancellation possible until shipping.
var statusTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderService finalizes carts into orders and serves order reads.
type OrderService struct {
	db      *db.DB
	metrics *metrics.AppMetrics
}

// NewOrderService creates a new order service
func NewOrderService(db *db.DB, metrics *metrics.AppMetrics) *OrderService {
	return &OrderService{
		db:      db,
		metrics: metrics,
	}
}

// Checkout finalizes the user's cart: it creates a pending order with a
// value snapshot of the cart lines, credits loyalty points (one per whole
// currency unit, truncated), decrements product stock and the parallel
// inventory record (clamped at zero, never failing on thin stock), and
// clears the cart. All writes run in one transaction so readers never see
// a partially applied checkout. An Idempotency-Key already attached to an
// order short-circuits to that order.
func (s *OrderService) Checkout(ctx context.Context, userID int64, idempotencyKey string) (*models.CheckoutResponse, error) {
	if idempotencyKey != "" {
		if existing, err := s.getOrderByIdempotencyKey(ctx, idempotencyKey); err == nil {
			return existingCheckoutResponse(existing), nil
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	start := time.Now()
	cartQuery := `
		SELECT ci.product_id, p.name, p.price, p.image_url, ci.quantity
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		JOIN carts c ON ci.cart_id = c.id
		WHERE c.user_id = ?
		ORDER BY ci.id
	`
	rows, err := s.db.QueryContext(ctx, cartQuery, userID)
	s.metrics.RecordDBQuery(ctx, "SELECT", "cart_items", cartQuery, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.ImageURL, &item.Quantity); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	summary := checkout.Summarize(items)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Profile must exist before the points increment; created lazily with
	// defaults, never an error.
	start = time.Now()
	profileQuery := "INSERT IGNORE INTO profiles (user_id) VALUES (?)"
	_, err = tx.ExecContext(ctx, profileQuery, userID)
	s.metrics.RecordDBQuery(ctx, "INSERT", "profiles", profileQuery, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure profile: %w", err)
	}

	start = time.Now()
	orderQuery := "INSERT INTO orders (user_id, status, total_amount, idempotency_key) VALUES (?, 'pending', ?, ?)"
	key := sql.NullString{String: idempotencyKey, Valid: idempotencyKey != ""}
	result, err := tx.ExecContext(ctx, orderQuery, userID, summary.Total, key)
	s.metrics.RecordDBQuery(ctx, "INSERT", "orders", orderQuery, start, err == nil)
	if err != nil {
		// A concurrent retry with the same key won the race; serve its order.
		if isDuplicateEntry(err) && idempotencyKey != "" {
			existing, lookupErr := s.getOrderByIdempotencyKey(ctx, idempotencyKey)
			if lookupErr != nil {
				return nil, lookupErr
			}
			return existingCheckoutResponse(existing), nil
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get order ID: %w", err)
	}

	start = time.Now()
	itemQuery := "INSERT INTO order_items (order_id, product_id, name, price, quantity) VALUES (?, ?, ?, ?, ?)"
	for i := range summary.Lines {
		summary.Lines[i].OrderID = orderID
		line := summary.Lines[i]
		_, err = tx.ExecContext(ctx, itemQuery, orderID, line.ProductID, line.Name, line.Price, line.Quantity)
		s.metrics.RecordDBQuery(ctx, "INSERT", "order_items", itemQuery, start, err == nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	start = time.Now()
	pointsQuery := "UPDATE profiles SET loyalty_points = loyalty_points + ? WHERE user_id = ?"
	_, err = tx.ExecContext(ctx, pointsQuery, summary.PointsEarned, userID)
	s.metrics.RecordDBQuery(ctx, "UPDATE", "profiles", pointsQuery, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to credit loyalty points: %w", err)
	}

	// Stock decrements, clamped at zero. The row is locked for the read so
	// the clamp math is race-free inside the transaction.
	stockAfter := make(map[int64]int, len(items))
	for _, item := range items {
		start = time.Now()
		selectQuery := "SELECT stock FROM products WHERE id = ? FOR UPDATE"
		var stock int
		err = tx.QueryRowContext(ctx, selectQuery, item.ProductID).Scan(&stock)
		s.metrics.RecordDBQuery(ctx, "SELECT", "products", selectQuery, start, err == nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read stock: %w", err)
		}

		newStock := checkout.ClampStock(stock, item.Quantity)
		stockAfter[item.ProductID] = newStock

		start = time.Now()
		stockQuery := "UPDATE products SET stock = ?, updated_at = NOW() WHERE id = ?"
		_, err = tx.ExecContext(ctx, stockQuery, newStock, item.ProductID)
		s.metrics.RecordDBQuery(ctx, "UPDATE", "products", stockQuery, start, err == nil)
		if err != nil {
			return nil, fmt.Errorf("failed to update stock: %w", err)
		}

		start = time.Now()
		invQuery := "UPDATE inventory SET quantity = IF(quantity > ?, quantity - ?, 0), updated_at = NOW() WHERE product_id = ?"
		_, err = tx.ExecContext(ctx, invQuery, item.Quantity, item.Quantity, item.ProductID)
		s.metrics.RecordDBQuery(ctx, "UPDATE", "inventory", invQuery, start, err == nil)
		if err != nil {
			return nil, fmt.Errorf("failed to update inventory: %w", err)
		}
	}

	start = time.Now()
	clearQuery := "DELETE FROM cart_items WHERE cart_id = (SELECT id FROM carts WHERE user_id = ?)"
	_, err = tx.ExecContext(ctx, clearQuery, userID)
	s.metrics.RecordDBQuery(ctx, "DELETE", "cart_items", clearQuery, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	now := time.Now()
	order := &models.Order{
		ID:          orderID,
		UserID:      userID,
		Status:      models.OrderStatusPending,
		TotalAmount: summary.Total,
		Items:       summary.Lines,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	orderAttrs := s.metrics.WithServiceName([]attribute.KeyValue{
		attribute.String("order_status", order.Status),
	})
	s.metrics.OrdersCreated.Add(ctx, 1, metric.WithAttributes(orderAttrs...))
	s.metrics.RevenueTotal.Add(ctx, summary.Total, metric.WithAttributes(orderAttrs...))
	s.metrics.LoyaltyPointsAwarded.Add(ctx, summary.PointsEarned, metric.WithAttributes(s.metrics.WithServiceName([]attribute.KeyValue{
		attribute.Int64("user_id", userID),
	})...))

	logger.FromCtx(ctx).Info("order finalized",
		"order_id", orderID,
		"user_id", userID,
		"total", summary.Total,
		"points_earned", summary.PointsEarned,
		"lines", len(summary.Lines),
	)

	return &models.CheckoutResponse{
		Order:        order,
		PointsEarned: summary.PointsEarned,
		StockAfter:   stockAfter,
	}, nil
}

// existingCheckoutResponse rebuilds the response for an already-finalized
// idempotency key. Points are re-derived from the stored total; stock has
// moved on since, so no per-line stock is reported.
func existingCheckoutResponse(order *models.Order) *models.CheckoutResponse {
	summary := checkout.Summarize(cartLinesFromOrder(order))
	return &models.CheckoutResponse{
		Order:        order,
		PointsEarned: summary.PointsEarned,
	}
}

func cartLinesFromOrder(order *models.Order) []models.CartItem {
	items := make([]models.CartItem, 0, len(order.Items))
	for _, line := range order.Items {
		items = append(items, models.CartItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return items
}

// GetOrder returns an order with its item snapshot.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	start := time.Now()

	query := "SELECT id, user_id, status, total_amount, created_at, updated_at FROM orders WHERE id = ?"
	var order models.Order
	err := s.db.QueryRowContext(ctx, query, orderID).Scan(
		&order.ID, &order.UserID, &order.Status, &order.TotalAmount, &order.CreatedAt, &order.UpdatedAt,
	)
	s.metrics.RecordDBQuery(ctx, "SELECT", "orders", query, start, err == nil || err == sql.ErrNoRows)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order.Items, err = s.loadOrderItems(ctx, orderID); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) getOrderByIdempotencyKey(ctx context.Context, key string) (*models.Order, error) {
	start := time.Now()

	query := "SELECT id, user_id, status, total_amount, created_at, updated_at FROM orders WHERE idempotency_key = ?"
	var order models.Order
	err := s.db.QueryRowContext(ctx, query, key).Scan(
		&order.ID, &order.UserID, &order.Status, &order.TotalAmount, &order.CreatedAt, &order.UpdatedAt,
	)
	s.metrics.RecordDBQuery(ctx, "SELECT", "orders", query, start, err == nil || err == sql.ErrNoRows)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order.Items, err = s.loadOrderItems(ctx, order.ID); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) loadOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	start := time.Now()

	query := "SELECT id, order_id, product_id, name, price, quantity FROM order_items WHERE order_id = ? ORDER BY id"
	rows, err := s.db.QueryContext(ctx, query, orderID)
	s.metrics.RecordDBQuery(ctx, "SELECT", "order_items", query, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListUserOrders returns all orders for a user, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	start := time.Now()
	query := "SELECT id, user_id, status, total_amount, created_at, updated_at FROM orders WHERE user_id = ? ORDER BY created_at DESC"
	rows, err := s.db.QueryContext(ctx, query, userID)
	s.metrics.RecordDBQuery(ctx, "SELECT", "orders", query, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(
			&order.ID, &order.UserID, &order.Status, &order.TotalAmount, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// UpdateOrderStatus moves an order through the status machine. Only the
// legal transitions are accepted; everything else is ErrInvalidTransition.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	start := time.Now()

	currentQuery := "SELECT status FROM orders WHERE id = ?"
	var current string
	err := s.db.QueryRowContext(ctx, currentQuery, orderID).Scan(&current)
	s.metrics.RecordDBQuery(ctx, "SELECT", "orders", currentQuery, start, err == nil || err == sql.ErrNoRows)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get order status: %w", err)
	}

	if !CanTransition(current, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
	}

	start = time.Now()
	query := "UPDATE orders SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?"
	result, err := s.db.ExecContext(ctx, query, status, orderID, current)
	s.metrics.RecordDBQuery(ctx, "UPDATE", "orders", query, start, err == nil)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Lost a race with another transition; report it as illegal.
		return ErrInvalidTransition
	}

	logger.FromCtx(ctx).Info("order status updated", "order_id", orderID, "from", current, "to", status)
	return nil
}

// isDuplicateEntry reports MySQL error 1062 (duplicate key).
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
