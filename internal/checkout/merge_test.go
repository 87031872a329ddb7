package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

func productA() models.Product {
	return models.Product{ID: 1, Name: "Mechanical Keyboard", Price: 10.00, Stock: 5, Category: "electronics"}
}

func productB() models.Product {
	return models.Product{ID: 2, Name: "Desk Mat", Price: 4.50, Stock: 9}
}

func TestMergeItemAppendsToEmptyCart(t *testing.T) {
	items := MergeItem(nil, productA())

	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, "Mechanical Keyboard", items[0].Name)
	assert.Equal(t, 10.00, items[0].Price)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestMergeItemCollapsesDuplicates(t *testing.T) {
	items := MergeItem(nil, productA())
	items = MergeItem(items, productA())

	require.Len(t, items, 1, "same product twice must collapse into one line")
	assert.Equal(t, 2, items[0].Quantity)
}

func TestMergeItemPreservesOrderAndAppendsLast(t *testing.T) {
	items := MergeItem(nil, productA())
	items = MergeItem(items, productB())
	items = MergeItem(items, productA())

	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ProductID, "existing lines keep their position")
	assert.Equal(t, int64(2), items[1].ProductID, "new lines append at the end")
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestMergeItemDoesNotMutateInput(t *testing.T) {
	orig := []models.CartItem{{ProductID: 1, Name: "Mechanical Keyboard", Price: 10.00, Quantity: 1}}
	_ = MergeItem(orig, productA())

	assert.Equal(t, 1, orig[0].Quantity, "merge must be a pure transformation")
}

func TestSetQuantityReplacesMatchingLine(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}

	out, err := SetQuantity(items, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, out[0].Quantity)
	assert.Equal(t, 7, out[1].Quantity)
	assert.Equal(t, 1, items[1].Quantity, "input untouched")
}

func TestSetQuantityRejectsBelowOne(t *testing.T) {
	items := []models.CartItem{{ProductID: 1, Quantity: 3}}

	for _, q := range []int{0, -1, -100} {
		out, err := SetQuantity(items, 1, q)
		assert.ErrorIs(t, err, ErrQuantityTooLow)
		assert.Equal(t, items, out, "rejected update must not change the sequence")
	}
}

func TestSetQuantityUnknownProductIsNoop(t *testing.T) {
	items := []models.CartItem{{ProductID: 1, Quantity: 3}}

	out, err := SetQuantity(items, 99, 5)
	require.NoError(t, err)
	assert.Equal(t, items, out)
}

func TestRemoveItemStrictlyFilters(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
		{ProductID: 3, Quantity: 4},
	}

	out := RemoveItem(items, 2)
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].ProductID)
	assert.Equal(t, int64(3), out[1].ProductID)

	assert.Equal(t, items, RemoveItem(items, 42), "removing an absent product changes nothing")
}
