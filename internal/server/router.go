package server

import (
	"marketgo/services/market/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(marketHandler *handler.MarketHandler) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	authRequired := AuthRequiredMiddleware(marketHandler.Auth())

	auth := router.Group("/auth")
	{
		auth.POST("/signup", marketHandler.SignUpHandler)
		auth.POST("/signin", marketHandler.SignInHandler)
		auth.POST("/signout", marketHandler.SignOutHandler)
	}

	products := router.Group("/products")
	{
		products.GET("", marketHandler.BrowseProductsHandler)
		products.GET("/:product_id", marketHandler.GetProductHandler)
		products.POST("", authRequired, marketHandler.CreateProductHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.GET("", marketHandler.ListAuctionsHandler)
		auctions.GET("/:auction_id", marketHandler.GetAuctionHandler)
		auctions.GET("/:auction_id/minimum", marketHandler.MinimumNextBidHandler)
		auctions.POST("", authRequired, marketHandler.CreateAuctionHandler)
		auctions.POST("/:auction_id/bids", authRequired, marketHandler.PlaceBidHandler)
	}

	cart := router.Group("/cart", authRequired)
	{
		cart.GET("", marketHandler.GetCartHandler)
		cart.POST("/items", marketHandler.AddCartItemHandler)
		cart.PUT("/items/:product_id", marketHandler.SetCartQuantityHandler)
		cart.DELETE("/items/:product_id", marketHandler.RemoveCartItemHandler)
		cart.DELETE("", marketHandler.ClearCartHandler)
	}

	orders := router.Group("", authRequired)
	{
		orders.POST("/checkout", marketHandler.CheckoutHandler)
		orders.GET("/orders", marketHandler.ListOrdersHandler)
		orders.GET("/dashboard", marketHandler.DashboardHandler)
	}

	messaging := router.Group("", authRequired)
	{
		messaging.POST("/messages", marketHandler.SendMessageHandler)
		messaging.GET("/messages/:other_user_id", marketHandler.ConversationHandler)
		messaging.GET("/notifications", marketHandler.ListNotificationsHandler)
		messaging.POST("/notifications/:notification_id/read", marketHandler.MarkNotificationReadHandler)
	}

	return router
}
