package handler

import (
	"context"

	"marketgo/internal/cart"
	"marketgo/internal/checkout"
	"marketgo/internal/models"

	"github.com/gin-gonic/gin"
)

// Service interfaces consumed by the HTTP layer. Handlers depend on
// these, not on the concrete services, so tests can substitute mocks.

type AuthServiceInterface interface {
	SignUp(ctx context.Context, username, password string) (models.Profile, string, error)
	SignIn(ctx context.Context, username, password string) (models.Profile, string, error)
	SignOut(token string)
	CurrentUser(token string) (models.Profile, bool)
}

type ListingServiceInterface interface {
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	GetProduct(ctx context.Context, productID string) (models.Product, error)
	Browse(ctx context.Context, category, seller string) ([]models.Product, error)
	Search(ctx context.Context, term string) ([]models.Product, error)
}

type AuctionServiceInterface interface {
	CreateAuction(ctx context.Context, state models.AuctionState) (models.AuctionState, error)
	GetAuction(ctx context.Context, auctionID string) (models.AuctionState, error)
	ListAuctions(ctx context.Context) ([]models.AuctionState, error)
	PlaceBid(ctx context.Context, auctionID, rawAmount, bidderID string) (models.Bid, error)
	MinimumNextBid(ctx context.Context, auctionID string) (float64, error)
	History(ctx context.Context, auctionID string) ([]models.Bid, error)
}

type CheckoutServiceInterface interface {
	Checkout(ctx context.Context, buyerID string, engine *cart.Engine) (models.Order, error)
	OrdersForBuyer(ctx context.Context, buyerID string) ([]models.Order, error)
	OrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error)
	DashboardSummary(ctx context.Context, buyerID, sellerName string) (checkout.Summary, error)
}

type MessagingServiceInterface interface {
	SendMessage(ctx context.Context, senderID, recipientID, body string) (models.Message, error)
	Conversation(ctx context.Context, userID, otherUserID string) ([]models.Message, error)
	Notifications(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) (bool, error)
}

// MarketHandler wires all marketplace routes to their services
type MarketHandler struct {
	auth      AuthServiceInterface
	listings  ListingServiceInterface
	auctions  AuctionServiceInterface
	carts     *cart.Manager
	checkouts CheckoutServiceInterface
	messaging MessagingServiceInterface
}

func NewMarketHandler(
	auth AuthServiceInterface,
	listings ListingServiceInterface,
	auctions AuctionServiceInterface,
	carts *cart.Manager,
	checkouts CheckoutServiceInterface,
	messaging MessagingServiceInterface,
) *MarketHandler {
	return &MarketHandler{
		auth:      auth,
		listings:  listings,
		auctions:  auctions,
		carts:     carts,
		checkouts: checkouts,
		messaging: messaging,
	}
}

// Auth returns the auth service backing this handler, for middleware wiring
func (h *MarketHandler) Auth() AuthServiceInterface {
	return h.auth
}

// currentUser reads the profile placed in the context by the auth middleware
func currentUser(c *gin.Context) (models.Profile, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		return models.Profile{}, false
	}
	return models.Profile{UserID: userID, Username: c.GetString("username")}, true
}
