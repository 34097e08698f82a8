package models

import "time"

// Profile represents a marketplace user
type Profile struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Product represents a fixed-price listing
type Product struct {
	ProductID string    `json:"product_id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	Seller    string    `json:"seller"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// CartItem represents one product line in a user's cart
type CartItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Seller   string  `json:"seller"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// CartTotals holds the derived totals for a cart; never stored,
// recomputed from the item collection on every read
type CartTotals struct {
	Count      int     `json:"count"`
	Subtotal   float64 `json:"subtotal"`
	ServiceFee float64 `json:"service_fee"`
	Total      float64 `json:"total"`
}

// Bid represents an accepted bid on an auction
type Bid struct {
	BidID     string    `json:"bid_id"`
	AuctionID string    `json:"auction_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// AuctionState represents the live state of a single auction listing.
// CurrentPrice always equals the amount of the newest bid, or the
// starting price while no bids have been placed.
type AuctionState struct {
	AuctionID     string    `json:"auction_id"`
	Title         string    `json:"title"`
	Seller        string    `json:"seller"`
	StartingPrice float64   `json:"starting_price"`
	CurrentPrice  float64   `json:"current_price"`
	MinIncrement  float64   `json:"min_increment"`
	BidCount      int       `json:"bid_count"`
	EndTime       time.Time `json:"end_time"`
	Completed     bool      `json:"completed"`
}

// Order represents a completed checkout
type Order struct {
	OrderID    string    `json:"order_id"`
	BuyerID    string    `json:"buyer_id"`
	Subtotal   float64   `json:"subtotal"`
	ServiceFee float64   `json:"service_fee"`
	Total      float64   `json:"total"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderItem represents one purchased product line within an order
type OrderItem struct {
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Seller    string  `json:"seller"`
	Quantity  int     `json:"quantity"`
}

// Message represents a user-to-user message
type Message struct {
	MessageID   string    `json:"message_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notification represents an in-app notification for a user
type Notification struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Message        string    `json:"message"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}
