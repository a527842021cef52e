package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tracker-backend/internal/auth"
	"tracker-backend/internal/config"
	"tracker-backend/internal/database"
	"tracker-backend/internal/handlers"
	"tracker-backend/internal/services"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	// 2. Database Connection
	db := database.Connect(cfg.DatabaseURL)

	// 3. Initialize Core Services (Dependencies)
	applicationService := services.NewApplicationService(db)
	profileService := services.NewProfileService(db)
	analyticsService := services.NewAnalyticsService(db)

	// 4. Initialize Handlers
	applicationHandler := handlers.NewApplicationHandler(applicationService, profileService)
	profileHandler := handlers.NewProfileHandler(profileService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, profileService)

	// 5. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	if cfg.CORSOrigin != "" {
		corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	} else {
		corsConfig.AllowAllOrigins = true // For development only
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 6. Define Routes
	r.GET("/health", handlers.HealthCheck)

	requireAuth := auth.RequireAuth(cfg.JWTSecret)

	board := r.Group("/board", requireAuth)
	{
		board.GET("/view", applicationHandler.BoardView)
		board.GET("/applications", applicationHandler.List)
		board.POST("/applications", applicationHandler.Create)
		board.GET("/applications/statuses", applicationHandler.Statuses)
		board.GET("/applications/status/:status", applicationHandler.ListByStatus)
		board.GET("/applications/:id", applicationHandler.Get)
		board.PUT("/applications/:id", applicationHandler.Update)
		board.PATCH("/applications/:id", applicationHandler.PatchStatus)
		board.DELETE("/applications/:id", applicationHandler.Delete)
	}

	api := r.Group("/api", requireAuth)
	{
		api.GET("/user/profile", profileHandler.Get)
		api.PUT("/user/profile", profileHandler.Update)
		api.GET("/analytics/dashboard", analyticsHandler.Dashboard)
	}

	log.Println("🚀 Server starting on port " + cfg.HTTPPort + "...")
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
