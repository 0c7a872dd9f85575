package router

import (
	"database/sql"
	"time"

	"burger_pos_backend/internal/cache"
	"burger_pos_backend/internal/handlers"
	"burger_pos_backend/internal/repositories"
	"burger_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, store cache.Store, businessLoc *time.Location, cacheTTL time.Duration) {
	// Initialize Repositories
	orderRepo := repositories.NewOrderRepository(db)
	productRepo := repositories.NewProductRepository(db)

	// Initialize Services
	dateKeys := services.NewDateKeyResolver(businessLoc)
	orderService := services.NewOrderService(orderRepo, productRepo, dateKeys)
	productService := services.NewProductService(productRepo, store, cacheTTL)

	// Initialize Handlers
	orderHandler := handlers.NewOrderHandler(orderService)
	productHandler := handlers.NewProductHandler(productService)

	apiV1 := engine.Group("/api/v1")
	{
		SetupOrderRoutes(apiV1, orderHandler)
		SetupProductRoutes(apiV1, productHandler)
		SetupSeedRoutes(apiV1, productHandler)
	}
}
