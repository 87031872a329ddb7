package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

func TestSummarizeTotalsAndSnapshot(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, Name: "Mechanical Keyboard", Price: 10.00, Quantity: 2},
		{ProductID: 2, Name: "Desk Mat", Price: 4.50, Quantity: 1},
	}

	s := Summarize(items)

	assert.InDelta(t, 24.50, s.Total, 1e-9)
	assert.Equal(t, int64(24), s.PointsEarned)

	require.Len(t, s.Lines, 2)
	assert.Equal(t, "Mechanical Keyboard", s.Lines[0].Name)
	assert.Equal(t, 10.00, s.Lines[0].Price)
	assert.Equal(t, 2, s.Lines[0].Quantity)

	// Snapshot lines are value copies: mutating the cart afterwards must
	// not reach into the summary.
	items[0].Price = 999
	assert.Equal(t, 10.00, s.Lines[0].Price)
}

func TestLoyaltyPointsTruncateNeverRoundUp(t *testing.T) {
	tests := []struct {
		name   string
		items  []models.CartItem
		points int64
	}{
		{"just under a unit boundary", []models.CartItem{{Price: 19.99, Quantity: 1}}, 19},
		{"exact unit total", []models.CartItem{{Price: 10.00, Quantity: 2}}, 20},
		{"sub-unit total", []models.CartItem{{Price: 0.99, Quantity: 1}}, 0},
		{"float accumulation stays exact at cents", []models.CartItem{{Price: 0.10, Quantity: 30}}, 3},
		{"empty cart", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.points, Summarize(tt.items).PointsEarned)
		})
	}
}

func TestClampStockFloorsAtZero(t *testing.T) {
	assert.Equal(t, 0, ClampStock(3, 5), "oversell clamps to zero, never negative")
	assert.Equal(t, 0, ClampStock(5, 5))
	assert.Equal(t, 2, ClampStock(5, 3))
	assert.Equal(t, 0, ClampStock(0, 1))
}

// Mirrors the storefront happy path: add the same product twice, finalize,
// and check every derived value the client renders afterwards.
func TestCheckoutEndToEnd(t *testing.T) {
	prod := models.Product{ID: 1, Name: "Mechanical Keyboard", Price: 10.00, Stock: 5}

	items := MergeItem(nil, prod)
	items = MergeItem(items, prod)

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	s := Summarize(items)
	assert.InDelta(t, 20.00, s.Total, 1e-9)
	assert.Equal(t, int64(20), s.PointsEarned)

	newStock := ClampStock(prod.Stock, items[0].Quantity)
	assert.Equal(t, 3, newStock)

	cleared := RemoveItem(items, prod.ID)
	assert.Empty(t, cleared)

	var points int64
	points += s.PointsEarned
	assert.Equal(t, int64(20), points)
}
