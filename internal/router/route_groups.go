package router

import (
	"burger_pos_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes sets up the order routes.
func SetupOrderRoutes(apiGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := apiGroup.Group("/orders")
	{
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/pending", orderHandler.GetPendingOrders)
		orderRoutes.GET("/today/summary", orderHandler.GetDailySummary)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.PUT("/:id/status", orderHandler.UpdateOrderStatus)
		orderRoutes.PATCH("/:id", orderHandler.UpdateOrder)
	}
}

// SetupProductRoutes sets up the product catalog routes.
func SetupProductRoutes(apiGroup *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	productRoutes := apiGroup.Group("/products")
	{
		productRoutes.GET("", productHandler.GetProducts)
		productRoutes.GET("/:type", productHandler.GetProductsByType)
	}
}

// SetupSeedRoutes sets up the catalog seeding route.
func SetupSeedRoutes(apiGroup *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	apiGroup.POST("/seed", productHandler.SeedProducts)
}
