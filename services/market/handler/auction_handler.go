package handler

import (
	"net/http"

	"marketgo/internal/marketerrors"
	"marketgo/internal/models"
	"marketgo/services/market/helpers"
	"marketgo/utils"

	"github.com/gin-gonic/gin"
)

// CreateAuctionHandler handles POST /auctions
func (h *MarketHandler) CreateAuctionHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "CreateAuctionHandler", marketerrors.ErrUnauthenticated)
		return
	}

	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	state, err := h.auctions.CreateAuction(c.Request.Context(), models.AuctionState{
		Title:         req.Title,
		Seller:        user.Username,
		StartingPrice: req.StartingPrice,
		MinIncrement:  req.MinIncrement,
		EndTime:       req.EndTime,
	})
	if err != nil {
		helpers.RespondError(c, "CreateAuctionHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, state, "auction created")
	helpers.LogSuccess("CreateAuctionHandler", "auction created", map[string]any{
		"auction_id": state.AuctionID,
		"seller":     state.Seller,
	})
}

// ListAuctionsHandler handles GET /auctions
func (h *MarketHandler) ListAuctionsHandler(c *gin.Context) {
	auctions, err := h.auctions.ListAuctions(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "ListAuctionsHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
}

// GetAuctionHandler handles GET /auctions/:auction_id, returning the
// state together with the bid history, newest first
func (h *MarketHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	state, err := h.auctions.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		helpers.RespondError(c, "GetAuctionHandler", err)
		return
	}

	history, err := h.auctions.History(c.Request.Context(), auctionID)
	if err != nil {
		helpers.RespondError(c, "GetAuctionHandler", err)
		return
	}
	if history == nil {
		history = []models.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"auction": state, "bid_history": history},
		"auction retrieved successfully")
}

// MinimumNextBidHandler handles GET /auctions/:auction_id/minimum; used
// by clients to pre-populate the bid input
func (h *MarketHandler) MinimumNextBidHandler(c *gin.Context) {
	minimum, err := h.auctions.MinimumNextBid(c.Request.Context(), c.Param("auction_id"))
	if err != nil {
		helpers.RespondError(c, "MinimumNextBidHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"minimum_next_bid": minimum}, "minimum bid retrieved successfully")
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *MarketHandler) PlaceBidHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "PlaceBidHandler", marketerrors.ErrUnauthenticated)
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	auctionID := c.Param("auction_id")
	bid, err := h.auctions.PlaceBid(c.Request.Context(), auctionID, req.Amount, user.UserID)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": bid.AuctionID,
		"bidder_id":  bid.BidderID,
		"amount":     bid.Amount,
	})
}
