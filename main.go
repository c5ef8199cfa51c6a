package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"devmood-server/config"
	"devmood-server/database"
	"devmood-server/jobs"
	"devmood-server/middleware"
	"devmood-server/routes"
	"devmood-server/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()
	utils.InitLogger()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Optional facet cache
	if err := database.InitializeRedis(); err != nil {
		log.Fatal("Failed to initialize redis:", err)
	}

	// Demo data for local development
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(); err != nil {
			log.Fatal("Failed to seed demo data:", err)
		}
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())
	middleware.StartRateLimiterCleanup()

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "devmood server is running",
			"time":    time.Now().UTC(),
		})
	})

	// API routes
	api := router.Group("")
	{
		routes.RegisterMoodRoutes(api)
		routes.RegisterDashboardRoutes(api)
		routes.RegisterUserRoutes(api)
	}

	// Keep the technology facet cache warm
	facetWarmJob := jobs.NewFacetWarmJob()
	facetWarmJob.Start()
	defer facetWarmJob.Stop()

	port := config.AppConfig.Server.Port

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
