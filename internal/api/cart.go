package api

import (
	"net/http"

	"github.com/SreekarSamrudh/e-shop-central/internal/middleware"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

// GetCartHandler handles GET /api/v1/cart
func (a *App) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	cart, err := a.cartService.GetCart(r.Context(), middleware.UserIDFrom(r.Context()))
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// AddToCartHandler handles POST /api/v1/cart/add. One unit per call.
func (a *App) AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AddToCartRequest
	if err := decodeJSON(r, &req); err != nil || req.ProductID == 0 {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := a.cartService.AddToCart(r.Context(), middleware.UserIDFrom(r.Context()), req.ProductID)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// SetQuantityHandler handles POST /api/v1/cart/quantity. Quantities below
// one are rejected outright; removal has its own endpoint.
func (a *App) SetQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SetQuantityRequest
	if err := decodeJSON(r, &req); err != nil || req.ProductID == 0 {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := a.cartService.SetQuantity(r.Context(), middleware.UserIDFrom(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// RemoveFromCartHandler handles POST /api/v1/cart/remove
func (a *App) RemoveFromCartHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RemoveFromCartRequest
	if err := decodeJSON(r, &req); err != nil || req.ProductID == 0 {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := a.cartService.RemoveFromCart(r.Context(), middleware.UserIDFrom(r.Context()), req.ProductID)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}
