package handler

import (
	"net/http"

	"marketgo/internal/marketerrors"
	"marketgo/internal/models"
	"marketgo/services/market/helpers"
	"marketgo/utils"

	"github.com/gin-gonic/gin"
)

// CreateProductHandler handles POST /products
func (h *MarketHandler) CreateProductHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "CreateProductHandler", marketerrors.ErrUnauthenticated)
		return
	}

	var req helpers.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateProductHandler", err)
		return
	}

	product, err := h.listings.CreateProduct(c.Request.Context(), models.Product{
		Title:    req.Title,
		Price:    req.Price,
		Category: req.Category,
		Seller:   user.Username,
		Image:    req.Image,
	})
	if err != nil {
		helpers.RespondError(c, "CreateProductHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, product, "listing created")
	helpers.LogSuccess("CreateProductHandler", "listing created", map[string]any{
		"product_id": product.ProductID,
		"seller":     product.Seller,
	})
}

// BrowseProductsHandler handles GET /products with optional category,
// seller and search query parameters
func (h *MarketHandler) BrowseProductsHandler(c *gin.Context) {
	var (
		products []models.Product
		err      error
	)
	if term := c.Query("search"); term != "" {
		products, err = h.listings.Search(c.Request.Context(), term)
	} else {
		products, err = h.listings.Browse(c.Request.Context(), c.Query("category"), c.Query("seller"))
	}
	if err != nil {
		helpers.RespondError(c, "BrowseProductsHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, products, "products retrieved successfully")
}

// GetProductHandler handles GET /products/:product_id
func (h *MarketHandler) GetProductHandler(c *gin.Context) {
	product, err := h.listings.GetProduct(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		helpers.RespondError(c, "GetProductHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, product, "product retrieved successfully")
}
