package api

import (
	"net/http"

	"github.com/SreekarSamrudh/e-shop-central/internal/middleware"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

// ListVendorProductsHandler handles GET /api/v1/vendor/products
func (a *App) ListVendorProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := a.inventoryService.ListVendorProducts(r.Context(), middleware.UserIDFrom(r.Context()))
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

// SetStockHandler handles PUT /api/v1/vendor/products/{id}/stock: a direct
// stock set for a product the vendor owns, mirrored into inventory.
func (a *App) SetStockHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req models.SetStockRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Stock < 0 {
		respondError(w, http.StatusBadRequest, "stock must not be negative")
		return
	}

	vendorID := middleware.UserIDFrom(r.Context())
	if err := a.inventoryService.SetStock(r.Context(), vendorID, id, req.Stock, req.WarehouseID); err != nil {
		a.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"product_id": id, "stock": req.Stock})
}
