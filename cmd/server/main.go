package main

import (
	"fmt"
	"log"

	"pocket/internal/auth"
	"pocket/internal/config"
	"pocket/internal/database"
	"pocket/internal/handlers"
	"pocket/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env in development; in production the environment is already set
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.Load()

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Initialize Gin router
	router := gin.Default()

	// Configure trusted proxies
	router.SetTrustedProxies([]string{"127.0.0.1"})

	if len(cfg.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-App-Token")
		router.Use(cors.New(corsConfig))
	}

	// Basic routes
	router.GET("/", handlers.HomeHandler)
	router.GET("/health", handlers.HealthHandler)

	// Sweep trigger, gated by its own secret rather than the app token
	db := database.GetDB()
	sweeper := services.NewSweepService(
		database.NewOccurrenceStore(db),
		database.NewDeviceStore(db),
		services.NewPushService(cfg),
		cfg.ReminderLinkURL,
	)
	router.POST("/cron/due", handlers.RunDueSweep(cfg, sweeper))

	// Client API routes (app token required)
	api := router.Group("")
	api.Use(auth.AppToken(cfg))
	{
		api.POST("/devices", handlers.RegisterDevice)

		api.GET("/reminders", handlers.GetReminders)
		api.POST("/reminders", handlers.CreateReminder)
		api.DELETE("/reminders/:id", handlers.DeleteReminder)

		api.GET("/tasks", handlers.GetTasks)
		api.POST("/tasks", handlers.CreateTask)
		api.PATCH("/tasks", handlers.UpdateTask)
		api.DELETE("/tasks", handlers.DeleteTask)
	}

	// Start the server
	fmt.Printf("Server starting on port %s...\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
