package api

import (
	"net/http"
	"strings"

	"github.com/SreekarSamrudh/e-shop-central/internal/middleware"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

const idempotencyHeader = "Idempotency-Key"

// CheckoutHandler handles POST /api/v1/orders: it finalizes the
// authenticated user's cart into a pending order. A repeated request with
// the same Idempotency-Key returns the already-created order.
func (a *App) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.Header.Get(idempotencyHeader))

	result, err := a.orderService.Checkout(r.Context(), middleware.UserIDFrom(r.Context()), key)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// ListOrdersHandler handles GET /api/v1/orders
func (a *App) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := a.orderService.ListUserOrders(r.Context(), middleware.UserIDFrom(r.Context()))
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// GetOrderHandler handles GET /api/v1/orders/{id}. Owner-checked: other
// users' orders read as not found.
func (a *App) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := a.orderService.GetOrder(r.Context(), id)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	if order.UserID != middleware.UserIDFrom(r.Context()) {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// UpdateOrderStatusHandler handles PUT /api/v1/orders/{id}/status. The
// administrative surface of the status machine; checkout itself only ever
// creates pending orders.
func (a *App) UpdateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil || req.Status == "" {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.orderService.UpdateOrderStatus(r.Context(), id, req.Status); err != nil {
		a.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
