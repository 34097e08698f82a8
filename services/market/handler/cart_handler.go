package handler

import (
	"net/http"

	"marketgo/internal/marketerrors"
	"marketgo/internal/models"
	"marketgo/services/market/helpers"
	"marketgo/utils"

	"github.com/gin-gonic/gin"
)

// GetCartHandler handles GET /cart
func (h *MarketHandler) GetCartHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "GetCartHandler", marketerrors.ErrUnauthenticated)
		return
	}

	engine := h.carts.Engine(c.Request.Context(), user.UserID)
	items := engine.Items()
	if items == nil {
		items = []models.CartItem{}
	}

	resp := helpers.CartResponse{Items: items, Totals: engine.Totals()}
	utils.JSONResponse(c, http.StatusOK, resp, "cart retrieved successfully")
}

// AddCartItemHandler handles POST /cart/items. The product is resolved
// through the listing service so the cart entry carries the listing's
// title, price and seller.
func (h *MarketHandler) AddCartItemHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "AddCartItemHandler", marketerrors.ErrUnauthenticated)
		return
	}

	var req helpers.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddCartItemHandler", err)
		return
	}

	product, err := h.listings.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		helpers.RespondError(c, "AddCartItemHandler", err)
		return
	}

	engine := h.carts.Engine(c.Request.Context(), user.UserID)
	entry, added := engine.AddItem(c.Request.Context(), models.CartItem{
		ID:       product.ProductID,
		Title:    product.Title,
		Price:    product.Price,
		Seller:   product.Seller,
		Image:    product.Image,
		Quantity: req.Quantity,
	})

	message := "item updated in cart"
	if added {
		message = "item added to cart"
	}
	utils.JSONResponse(c, http.StatusOK, entry, message)
	helpers.LogSuccess("AddCartItemHandler", message, map[string]any{
		"user_id":    user.UserID,
		"product_id": entry.ID,
		"quantity":   entry.Quantity,
	})
}

// SetCartQuantityHandler handles PUT /cart/items/:product_id
func (h *MarketHandler) SetCartQuantityHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "SetCartQuantityHandler", marketerrors.ErrUnauthenticated)
		return
	}

	var req helpers.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SetCartQuantityHandler", err)
		return
	}

	productID := c.Param("product_id")
	engine := h.carts.Engine(c.Request.Context(), user.UserID)
	updated := engine.SetQuantity(c.Request.Context(), productID, req.Quantity)

	// Quantities below 1 are a guarded no-op, not an error
	message := "quantity unchanged"
	if updated {
		message = "quantity updated"
	}
	resp := helpers.CartResponse{Items: engine.Items(), Totals: engine.Totals()}
	utils.JSONResponse(c, http.StatusOK, resp, message)
}

// RemoveCartItemHandler handles DELETE /cart/items/:product_id
func (h *MarketHandler) RemoveCartItemHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "RemoveCartItemHandler", marketerrors.ErrUnauthenticated)
		return
	}

	productID := c.Param("product_id")
	engine := h.carts.Engine(c.Request.Context(), user.UserID)
	removed, found := engine.RemoveItem(c.Request.Context(), productID)
	if !found {
		helpers.RespondError(c, "RemoveCartItemHandler", marketerrors.ErrCartItemNotFound)
		return
	}

	utils.JSONResponse(c, http.StatusOK, removed, "item removed from cart")
	helpers.LogSuccess("RemoveCartItemHandler", "item removed from cart", map[string]any{
		"user_id":    user.UserID,
		"product_id": productID,
	})
}

// ClearCartHandler handles DELETE /cart
func (h *MarketHandler) ClearCartHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "ClearCartHandler", marketerrors.ErrUnauthenticated)
		return
	}

	engine := h.carts.Engine(c.Request.Context(), user.UserID)
	engine.Clear(c.Request.Context())

	utils.JSONResponse(c, http.StatusOK, nil, "cart cleared")
}
