package api

import (
	"net/http"

	"github.com/SreekarSamrudh/e-shop-central/internal/middleware"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

// GetWishlistHandler handles GET /api/v1/wishlist
func (a *App) GetWishlistHandler(w http.ResponseWriter, r *http.Request) {
	items, err := a.wishlistService.ListWishlist(r.Context(), middleware.UserIDFrom(r.Context()))
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []models.WishlistItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

// AddToWishlistHandler handles POST /api/v1/wishlist/add. Re-adding an
// already-wishlisted product succeeds quietly.
func (a *App) AddToWishlistHandler(w http.ResponseWriter, r *http.Request) {
	var req models.WishlistRequest
	if err := decodeJSON(r, &req); err != nil || req.ProductID == 0 {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.wishlistService.AddToWishlist(r.Context(), middleware.UserIDFrom(r.Context()), req.ProductID); err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

// RemoveFromWishlistHandler handles POST /api/v1/wishlist/remove
func (a *App) RemoveFromWishlistHandler(w http.ResponseWriter, r *http.Request) {
	var req models.WishlistRequest
	if err := decodeJSON(r, &req); err != nil || req.ProductID == 0 {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.wishlistService.RemoveFromWishlist(r.Context(), middleware.UserIDFrom(r.Context()), req.ProductID); err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
