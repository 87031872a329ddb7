package api

import (
	"net/http"

	"github.com/SreekarSamrudh/e-shop-central/internal/middleware"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

// ListReviewsHandler handles GET /api/v1/products/{id}/reviews
func (a *App) ListReviewsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	reviews, err := a.reviewService.ListReviews(r.Context(), id)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	respondJSON(w, http.StatusOK, reviews)
}

// CreateReviewHandler handles POST /api/v1/products/{id}/reviews
func (a *App) CreateReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req models.CreateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := a.reviewService.CreateReview(r.Context(), middleware.UserIDFrom(r.Context()), id, req.Rating, req.Comment)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}
