package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/minazuki/interview-tracker-api/internal/config"
	"github.com/minazuki/interview-tracker-api/internal/constants"
	"github.com/minazuki/interview-tracker-api/internal/database"
	"github.com/minazuki/interview-tracker-api/internal/handlers"
	"github.com/minazuki/interview-tracker-api/internal/middleware"
	"github.com/minazuki/interview-tracker-api/internal/repository"
	"github.com/minazuki/interview-tracker-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	interviewService := services.NewInterviewService(interviewRepo, catalogRepo)
	calendarService := services.NewCalendarService(userRepo, interviewRepo, cfg.AppBaseURL)
	guestService := services.NewGuestService(interviewService)

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	interviewHandler := handlers.NewInterviewHandler(interviewService, aiService)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	guestHandler := handlers.NewGuestHandler(guestService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Interview Tracker API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Calendar feed (public by design: the token is the credential)
		api.GET("/calendar/:token", calendarHandler.GetFeed)

		// Calendar settings (protected)
		api.GET("/calendar-settings", middleware.RequireAuth(), calendarHandler.GetSettings)
		api.POST("/calendar-settings", middleware.RequireAuth(), calendarHandler.RegenerateToken)

		// Catalog lookups (protected)
		api.GET("/companies", middleware.RequireAuth(), catalogHandler.ListCompanies)
		api.GET("/stages", middleware.RequireAuth(), catalogHandler.ListStages)
		api.GET("/stage-methods", middleware.RequireAuth(), catalogHandler.ListStageMethods)

		// Interview routes (protected)
		interviews := api.Group("/interviews")
		interviews.Use(middleware.RequireAuth())
		{
			interviews.GET("", interviewHandler.ListInterviews)
			interviews.POST("", interviewHandler.CreateInterview)
			interviews.GET("/stats", interviewHandler.GetStats)
			interviews.POST("/parse", interviewHandler.ParsePosting)
			interviews.POST("/:id/progress", middleware.RequireInterviewAccess(), interviewHandler.ProgressInterview)
		}

		interview := api.Group("/interview")
		interview.Use(middleware.RequireAuth())
		{
			// Historical create variant; same path logic as POST /interviews
			interview.POST("", interviewHandler.CreateInterview)
			interview.GET("/:id", middleware.RequireInterviewAccess(), interviewHandler.GetInterview)
			interview.PUT("/:id", middleware.RequireInterviewAccess(), interviewHandler.UpdateInterview)
			interview.PATCH("/:id", middleware.RequireInterviewAccess(), interviewHandler.UpdateOutcome)
		}

		// Guest migration (protected; runs once after first sign-in)
		api.POST("/guest-import", middleware.RequireAuth(), guestHandler.Import)
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
