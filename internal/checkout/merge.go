// Package checkout holds the cart/order reconciliation core: pure
// transformations over in-memory cart lines and review records. Nothing in
// this package touches the record store; callers validate preconditions
// (authentication, stock policy, non-empty cart) and persist the results.
package checkout

import (
	"errors"

	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

// ErrQuantityTooLow is returned when a quantity update asks for less than
// one unit. Removal is explicit via RemoveItem, never implied by a zero.
var ErrQuantityTooLow = errors.New("checkout: quantity must be at least 1")

// MergeItem returns a copy of items with one unit of product added. A line
// with the same product ID gets its quantity incremented in place;
// otherwise a new line is appended. Relative order of existing lines is
// preserved. The caller owns stock policy and persistence.
func MergeItem(items []models.CartItem, product models.Product) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)

	for i := range out {
		if out[i].ProductID == product.ID {
			out[i].Quantity++
			return out
		}
	}

	return append(out, models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Quantity:  1,
	})
}

// SetQuantity returns a copy of items with the matching line's quantity
// replaced. Quantities below 1 are rejected with ErrQuantityTooLow and the
// input is returned unchanged. A missing product ID is a no-op.
func SetQuantity(items []models.CartItem, productID int64, quantity int) ([]models.CartItem, error) {
	if quantity < 1 {
		return items, ErrQuantityTooLow
	}

	out := make([]models.CartItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Quantity = quantity
			break
		}
	}
	return out, nil
}

// RemoveItem returns items without the line matching productID.
func RemoveItem(items []models.CartItem, productID int64) []models.CartItem {
	out := make([]models.CartItem, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}
