package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"burger_pos_backend/internal/cache"
	"burger_pos_backend/internal/database"
	"burger_pos_backend/internal/middleware"
	"burger_pos_backend/internal/router"
	"burger_pos_backend/internal/services"
	"burger_pos_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	utils.InitLogger()

	// Load database configuration from environment variables
	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "burger_pos_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "burger_pos_password")
	dbName := utils.Getenv("DB_NAME", "burger_pos_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	// Business time zone: cash closings bucket orders by this zone's calendar
	// days, independent of where the server runs.
	businessLoc, err := services.LoadBusinessLocation(os.Getenv("BUSINESS_TIMEZONE"))
	if err != nil {
		log.Fatalf("Invalid BUSINESS_TIMEZONE: %v", err)
	}
	utils.LogInfo("Business time zone configured", map[string]interface{}{"zone": businessLoc.String()})

	// Catalog cache (redis or noop)
	cacheTTL, err := time.ParseDuration(utils.Getenv("CACHE_TTL", "5m"))
	if err != nil {
		log.Fatalf("Invalid CACHE_TTL: %v", err)
	}
	redisDB, err := strconv.Atoi(utils.Getenv("REDIS_DB", "0"))
	if err != nil {
		log.Fatalf("Invalid REDIS_DB: %v", err)
	}
	store, err := cache.NewStore(cache.Config{
		Driver:     utils.Getenv("CACHE_DRIVER", "noop"),
		Addr:       utils.Getenv("REDIS_ADDR", "localhost:6379"),
		Password:   os.Getenv("REDIS_PASSWORD"),
		DB:         redisDB,
		DefaultTTL: cacheTTL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	engine := gin.Default()

	engine.Use(utils.GinLogger())
	engine.Use(middleware.RequestID())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"} // Default origins
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	router.Setup(engine, database.GetDB(), store, businessLoc, cacheTTL)

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
