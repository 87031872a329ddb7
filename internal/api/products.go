package api

import (
	"net/http"
	"strconv"

	"github.com/SreekarSamrudh/e-shop-central/internal/models"
	"github.com/SreekarSamrudh/e-shop-central/internal/services"
)

// ListProductsHandler handles GET /api/v1/products
func (a *App) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	products, err := a.productService.ListProducts(r.Context(), r.URL.Query().Get("category"), limit, offset)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	if products == nil {
		products = []models.ProductListing{}
	}

	respondJSON(w, http.StatusOK, products)
}

// GetProductHandler handles GET /api/v1/products/{id}
func (a *App) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := a.productService.GetProduct(r.Context(), id)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// GetProductInventoryHandler handles GET /api/v1/products/{id}/inventory
func (a *App) GetProductInventoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	warehouseID := r.URL.Query().Get("warehouse_id")
	if warehouseID == "" {
		warehouseID = services.DefaultWarehouse
	}

	inventory, err := a.productService.GetProductInventory(r.Context(), id, warehouseID)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, inventory)
}
