package handler

import (
	"net/http"

	"marketgo/internal/marketerrors"
	"marketgo/internal/models"
	"marketgo/services/market/helpers"
	"marketgo/utils"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles POST /checkout
func (h *MarketHandler) CheckoutHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "CheckoutHandler", marketerrors.ErrUnauthenticated)
		return
	}

	engine := h.carts.Engine(c.Request.Context(), user.UserID)
	order, err := h.checkouts.Checkout(c.Request.Context(), user.UserID, engine)
	if err != nil {
		helpers.RespondError(c, "CheckoutHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, order, "order placed successfully")
	helpers.LogSuccess("CheckoutHandler", "order placed successfully", map[string]any{
		"order_id": order.OrderID,
		"buyer_id": order.BuyerID,
		"total":    order.Total,
	})
}

// ListOrdersHandler handles GET /orders
func (h *MarketHandler) ListOrdersHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "ListOrdersHandler", marketerrors.ErrUnauthenticated)
		return
	}

	orders, err := h.checkouts.OrdersForBuyer(c.Request.Context(), user.UserID)
	if err != nil {
		helpers.RespondError(c, "ListOrdersHandler", err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	utils.JSONResponse(c, http.StatusOK, orders, "orders retrieved successfully")
}

// DashboardHandler handles GET /dashboard
func (h *MarketHandler) DashboardHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "DashboardHandler", marketerrors.ErrUnauthenticated)
		return
	}

	summary, err := h.checkouts.DashboardSummary(c.Request.Context(), user.UserID, user.Username)
	if err != nil {
		helpers.RespondError(c, "DashboardHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, summary, "dashboard retrieved successfully")
}
