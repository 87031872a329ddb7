package services

import "errors"

// Sentinel errors the API layer maps onto HTTP statuses. Store-level
// failures are wrapped with context and surface as generic 500s.
var (
	ErrNotFound          = errors.New("record not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrEmailTaken        = errors.New("email already registered")
	ErrBadCredentials    = errors.New("invalid email or password")
	ErrInvalidTransition = errors.New("invalid order status transition")
)
