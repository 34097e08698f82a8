package marketerrors

import "errors"

// Storage and data-service errors
var (
	ErrRowNotFound     = errors.New("row not found")
	ErrTableNotFound   = errors.New("table not found")
	ErrProductNotFound = errors.New("product not found")
	ErrAuctionNotFound = errors.New("auction not found")
)

// Cart errors
var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrEmptyCart        = errors.New("cart is empty")
)

// Bidding errors
var (
	ErrInvalidBid      = errors.New("invalid bid")
	ErrBidBelowMinimum = errors.New("bid below minimum")
	ErrAuctionClosed   = errors.New("auction closed")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUnauthenticated    = errors.New("not signed in")
)

// Generic validation error for malformed inputs
var ErrInvalidInput = errors.New("invalid input")
