package checkout

import (
	"math"

	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

// Summary is the pure computation behind order finalization: the order
// total, the loyalty points it earns, and the line snapshots to persist.
type Summary struct {
	// Total is sum(price * quantity) at full float precision. Rounding to
	// currency precision happens at the presentation edge only.
	Total float64

	// PointsEarned is one point per whole currency unit of Total,
	// truncated. 19.99 earns 19 points, never 20.
	PointsEarned int64

	// Lines are value copies of the cart items (name and price frozen) for
	// the order_items snapshot.
	Lines []models.OrderItem
}

// Summarize computes the order total, earned loyalty points, and the
// immutable line snapshot for a cart's items.
func Summarize(items []models.CartItem) Summary {
	s := Summary{Lines: make([]models.OrderItem, 0, len(items))}
	for _, it := range items {
		s.Total += it.Price * float64(it.Quantity)
		s.Lines = append(s.Lines, models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	s.PointsEarned = loyaltyPoints(s.Total)
	return s
}

// loyaltyPoints floors the total to whole currency units. The total is
// snapped to cents first so float accumulation error cannot turn an exact
// 20.00 into 19 points.
func loyaltyPoints(total float64) int64 {
	cents := int64(math.Round(total * 100))
	if cents < 0 {
		return 0
	}
	return cents / 100
}

// ClampStock applies a checkout decrement to one product's stock, floored
// at zero. Finalization never fails on thin stock; overselling past zero is
// accepted storefront policy.
func ClampStock(stock, quantity int) int {
	next := stock - quantity
	if next < 0 {
		return 0
	}
	return next
}
