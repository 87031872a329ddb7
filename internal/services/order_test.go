package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{models.OrderStatusPending, models.OrderStatusProcessing},
		{models.OrderStatusPending, models.OrderStatusCancelled},
		{models.OrderStatusProcessing, models.OrderStatusShipped},
		{models.OrderStatusProcessing, models.OrderStatusCancelled},
		{models.OrderStatusShipped, models.OrderStatusDelivered},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s should be legal", tr.from, tr.to)
	}

	denied := []struct{ from, to string }{
		{models.OrderStatusPending, models.OrderStatusShipped},
		{models.OrderStatusPending, models.OrderStatusDelivered},
		{models.OrderStatusShipped, models.OrderStatusCancelled},
		{models.OrderStatusDelivered, models.OrderStatusPending},
		{models.OrderStatusCancelled, models.OrderStatusProcessing},
		{models.OrderStatusPending, models.OrderStatusPending},
		{"bogus", models.OrderStatusPending},
	}
	for _, tr := range denied {
		assert.False(t, CanTransition(tr.from, tr.to), "%s -> %s should be illegal", tr.from, tr.to)
	}
}
