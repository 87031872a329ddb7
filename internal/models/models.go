package models

import "time"

// Order status values. Orders are created as pending; the remaining
// transitions belong to administrative tooling.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Profile roles.
const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
)

// Product represents a product in the catalog
type Product struct {
	ID          int64     `json:"id" db:"id"`
	VendorID    int64     `json:"vendor_id,omitempty" db:"vendor_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Stock       int       `json:"stock" db:"stock"`
	Category    string    `json:"category" db:"category"`
	ImageURL    string    `json:"image_url,omitempty" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProductListing is a catalog entry: the product plus its derived
// rating summary. The rating is computed from reviews, never stored.
type ProductListing struct {
	Product
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
}

// User represents an account held by the identity layer.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Profile carries per-user storefront state. Loyalty points only ever
// grow, and only through checkout.
type Profile struct {
	UserID        int64     `json:"user_id" db:"user_id"`
	Role          string    `json:"role" db:"role"`
	LoyaltyPoints int64     `json:"loyalty_points" db:"loyalty_points"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Cart represents a shopping cart. One per user, created lazily.
type Cart struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CartItem is one cart line as rendered to the client: the stored
// (product_id, quantity) pair joined with current product data.
// Invariant: Quantity >= 1; a zero-quantity line is removed, never kept.
type CartItem struct {
	ProductID int64   `json:"product_id" db:"product_id"`
	Name      string  `json:"name" db:"name"`
	Price     float64 `json:"price" db:"price"`
	ImageURL  string  `json:"image_url,omitempty" db:"image_url"`
	Quantity  int     `json:"quantity" db:"quantity"`
}

// Order represents a finalized purchase. Immutable apart from status.
type Order struct {
	ID          int64       `json:"id" db:"id"`
	UserID      int64       `json:"user_id" db:"user_id"`
	Status      string      `json:"status" db:"status"`
	TotalAmount float64     `json:"total_amount" db:"total_amount"`
	Items       []OrderItem `json:"items,omitempty"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderItem is a value snapshot of a cart line at checkout time. Name and
// price are copied so later product edits never alter historical orders.
type OrderItem struct {
	ID        int64   `json:"id" db:"id"`
	OrderID   int64   `json:"order_id" db:"order_id"`
	ProductID int64   `json:"product_id" db:"product_id"`
	Name      string  `json:"name" db:"name"`
	Price     float64 `json:"price" db:"price"`
	Quantity  int     `json:"quantity" db:"quantity"`
}

// Review is a customer rating for a product, 1..5.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// WishlistItem is a wishlisted product joined with its catalog data.
type WishlistItem struct {
	ProductID int64     `json:"product_id" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	ImageURL  string    `json:"image_url,omitempty" db:"image_url"`
	Stock     int       `json:"stock" db:"stock"`
	AddedAt   time.Time `json:"added_at" db:"created_at"`
}

// Inventory represents product inventory in one warehouse. Tracked in
// parallel with Product.Stock; checkout decrements both.
type Inventory struct {
	ID          int64     `json:"id" db:"id"`
	ProductID   int64     `json:"product_id" db:"product_id"`
	WarehouseID string    `json:"warehouse_id" db:"warehouse_id"`
	Quantity    int       `json:"quantity" db:"quantity"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CartResponse represents a cart with its items
type CartResponse struct {
	Cart  *Cart      `json:"cart"`
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// CheckoutResponse carries everything the client needs to refresh its
// state after finalization without re-fetching.
type CheckoutResponse struct {
	Order        *Order        `json:"order"`
	PointsEarned int64         `json:"points_earned"`
	StockAfter   map[int64]int `json:"stock_after"`
}

// AddToCartRequest represents a request to add a product to the cart.
// The quantity delta is implicitly 1.
type AddToCartRequest struct {
	ProductID int64 `json:"product_id"`
}

// SetQuantityRequest replaces one cart line's quantity. Quantities below
// 1 are rejected, not treated as removal.
type SetQuantityRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// RemoveFromCartRequest represents a request to drop one cart line.
type RemoveFromCartRequest struct {
	ProductID int64 `json:"product_id"`
}

// CreateReviewRequest represents a review submission.
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// WishlistRequest adds or removes one wishlist entry.
type WishlistRequest struct {
	ProductID int64 `json:"product_id"`
}

// SetStockRequest is the vendor inventory edit: a direct stock set.
type SetStockRequest struct {
	Stock       int    `json:"stock"`
	WarehouseID string `json:"warehouse_id"`
}

// SignUpRequest creates an account.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
}

// SignInRequest authenticates an existing account.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse returns the signed token plus the account it identifies.
type AuthResponse struct {
	Token   string   `json:"token"`
	User    *User    `json:"user"`
	Profile *Profile `json:"profile"`
}

// UpdateOrderStatusRequest moves an order through the status machine.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
