package helpers

import (
	"time"

	"marketgo/internal/models"
)

// Request DTOs

type SignUpRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateProductRequest struct {
	Title    string  `json:"title" binding:"required"`
	Price    float64 `json:"price" binding:"gte=0"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
}

type CreateAuctionRequest struct {
	Title         string    `json:"title" binding:"required"`
	StartingPrice float64   `json:"starting_price" binding:"gte=0"`
	MinIncrement  float64   `json:"min_increment" binding:"required,gt=0"`
	EndTime       time.Time `json:"end_time" binding:"required"`
}

// PlaceBidRequest carries the amount as free-form text; the bidding
// engine owns parsing and rejection of non-numeric input
type PlaceBidRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// SetQuantityRequest deliberately has no binding on Quantity: values
// below 1 must reach the engine, whose contract is to treat them as a
// guarded no-op rather than a transport error
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" binding:"required"`
	Body        string `json:"body" binding:"required"`
}

// Response DTOs

type AuthResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	AuctionID string  `json:"auction_id"`
	BidderID  string  `json:"bidder_id"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

type CartResponse struct {
	Items  []models.CartItem `json:"items"`
	Totals models.CartTotals `json:"totals"`
}

// NewBidResponse formats a bid for the wire with an RFC 3339 timestamp
func NewBidResponse(bid models.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		AuctionID: bid.AuctionID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}
