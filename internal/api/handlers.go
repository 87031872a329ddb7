package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/SreekarSamrudh/e-shop-central/internal/auth"
	"github.com/SreekarSamrudh/e-shop-central/internal/checkout"
	"github.com/SreekarSamrudh/e-shop-central/internal/db"
	"github.com/SreekarSamrudh/e-shop-central/internal/metrics"
	"github.com/SreekarSamrudh/e-shop-central/internal/middleware"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
	"github.com/SreekarSamrudh/e-shop-central/internal/services"
	"github.com/SreekarSamrudh/e-shop-central/pkg/config"
	"github.com/SreekarSamrudh/e-shop-central/pkg/logger"
)

// App holds application dependencies
type App struct {
	config           *config.Config
	db               *db.DB
	metrics          *metrics.AppMetrics
	authManager      *auth.Manager
	productService   *services.ProductService
	cartService      *services.CartService
	orderService     *services.OrderService
	reviewService    *services.ReviewService
	wishlistService  *services.WishlistService
	profileService   *services.ProfileService
	userService      *services.UserService
	inventoryService *services.InventoryService
}

// NewApp creates a new application instance
func NewApp(
	cfg *config.Config,
	database *db.DB,
	m *metrics.AppMetrics,
	am *auth.Manager,
	ps *services.ProductService,
	cs *services.CartService,
	os *services.OrderService,
	rs *services.ReviewService,
	ws *services.WishlistService,
	prs *services.ProfileService,
	us *services.UserService,
	is *services.InventoryService,
) *App {
	return &App{
		config:           cfg,
		db:               database,
		metrics:          m,
		authManager:      am,
		productService:   ps,
		cartService:      cs,
		orderService:     os,
		reviewService:    rs,
		wishlistService:  ws,
		profileService:   prs,
		userService:      us,
		inventoryService: is,
	}
}

// SetupRoutes configures the HTTP routes
func (a *App) SetupRoutes(r *mux.Router) {
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.RecoverMiddleware)
	r.Use(middleware.MetricsMiddleware(a.metrics))

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public catalog
	api.HandleFunc("/products", a.ListProductsHandler).Methods("GET")
	api.HandleFunc("/products/{id}", a.GetProductHandler).Methods("GET")
	api.HandleFunc("/products/{id}/inventory", a.GetProductInventoryHandler).Methods("GET")
	api.HandleFunc("/products/{id}/reviews", a.ListReviewsHandler).Methods("GET")

	// Identity
	api.HandleFunc("/auth/signup", a.SignUpHandler).Methods("POST")
	api.HandleFunc("/auth/signin", a.SignInHandler).Methods("POST")

	// Authenticated storefront
	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.AuthMiddleware(a.authManager))

	authed.HandleFunc("/auth/me", a.MeHandler).Methods("GET")

	authed.HandleFunc("/products/{id}/reviews", a.CreateReviewHandler).Methods("POST")

	authed.HandleFunc("/cart", a.GetCartHandler).Methods("GET")
	authed.HandleFunc("/cart/add", a.AddToCartHandler).Methods("POST")
	authed.HandleFunc("/cart/quantity", a.SetQuantityHandler).Methods("POST")
	authed.HandleFunc("/cart/remove", a.RemoveFromCartHandler).Methods("POST")

	authed.HandleFunc("/orders", a.CheckoutHandler).Methods("POST")
	authed.HandleFunc("/orders", a.ListOrdersHandler).Methods("GET")
	authed.HandleFunc("/orders/{id}", a.GetOrderHandler).Methods("GET")
	authed.HandleFunc("/orders/{id}/status", a.UpdateOrderStatusHandler).Methods("PUT")

	authed.HandleFunc("/wishlist", a.GetWishlistHandler).Methods("GET")
	authed.HandleFunc("/wishlist/add", a.AddToWishlistHandler).Methods("POST")
	authed.HandleFunc("/wishlist/remove", a.RemoveFromWishlistHandler).Methods("POST")

	// Vendor inventory screen
	vendor := authed.PathPrefix("/vendor").Subrouter()
	vendor.Use(middleware.RequireRole(models.RoleVendor))
	vendor.HandleFunc("/products", a.ListVendorProductsHandler).Methods("GET")
	vendor.HandleFunc("/products/{id}/stock", a.SetStockHandler).Methods("PUT")

	// Health
	r.HandleFunc("/health", a.HealthHandler).Methods("GET")
}

// HealthHandler handles health check requests
func (a *App) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service failures onto HTTP statuses per the
// error taxonomy; anything unrecognized is logged and surfaced as a
// generic 500.
func (a *App) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrEmptyCart):
		respondError(w, http.StatusConflict, "cart is empty")
	case errors.Is(err, services.ErrOutOfStock):
		respondError(w, http.StatusConflict, "product is out of stock")
	case errors.Is(err, services.ErrEmailTaken):
		respondError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, services.ErrBadCredentials):
		respondError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, services.ErrInvalidTransition):
		respondError(w, http.StatusBadRequest, "invalid order status transition")
	case errors.Is(err, services.ErrInvalidRating):
		respondError(w, http.StatusBadRequest, "rating must be between 1 and 5")
	case errors.Is(err, checkout.ErrQuantityTooLow):
		respondError(w, http.StatusBadRequest, "quantity must be at least 1")
	default:
		logger.FromCtx(r.Context()).Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "something went wrong")
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
