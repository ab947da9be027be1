package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/av1ctor/metamob-sub003/internal/auth"
	"github.com/av1ctor/metamob-sub003/internal/config"
	"github.com/av1ctor/metamob-sub003/internal/database"
	"github.com/av1ctor/metamob-sub003/internal/handlers"
	"github.com/av1ctor/metamob-sub003/internal/jobs"
	"github.com/av1ctor/metamob-sub003/internal/models"
	"github.com/av1ctor/metamob-sub003/internal/repository"
	"github.com/av1ctor/metamob-sub003/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize repository
	repo := repository.NewRepository(db)

	// Initialize services
	authService := services.NewAuthService(db)
	userService := services.NewUserService(db)
	entityService := services.NewEntityService(db)
	auditService := services.NewAuditService(db)
	rewardService := services.NewRewardService(db, cfg.App.RewardAmount)
	reportService := services.NewReportService(repo)
	moderationService := services.NewModerationService(db, repo, rewardService, auditService)
	challengeService := services.NewChallengeService(db, repo, rewardService, auditService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService, rewardService)
	entityHandler := handlers.NewEntityHandler(entityService)
	campaignHandler := handlers.NewCampaignHandler(db)
	contentHandler := handlers.NewContentHandler(db)
	placeHandler := handlers.NewPlaceHandler(db)
	reportHandler := handlers.NewReportHandler(reportService)
	moderationHandler := handlers.NewModerationHandler(moderationService)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	adminHandler := handlers.NewAdminHandler(userService, auditService)

	// Start judge assigner job
	assigner := jobs.NewJudgeAssigner(challengeService, cfg.Jobs.JudgeAssignInterval)
	go assigner.Start()

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if cfg.App.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.App.FrontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.Me)
	}

	// Public routes
	router.GET("/api/entities", entityHandler.Kinds)
	router.GET("/api/entities/:type/:pubId", entityHandler.Preview)
	router.GET("/api/campaigns", campaignHandler.ListCampaigns)
	router.GET("/api/campaigns/:pubId", campaignHandler.GetCampaign)
	router.GET("/api/campaigns/:pubId/signatures", contentHandler.ListChildren(models.EntityTypeSignatures))
	router.GET("/api/campaigns/:pubId/votes", contentHandler.ListChildren(models.EntityTypeVotes))
	router.GET("/api/campaigns/:pubId/donations", contentHandler.ListChildren(models.EntityTypeDonations))
	router.GET("/api/campaigns/:pubId/fundings", contentHandler.ListChildren(models.EntityTypeFundings))
	router.GET("/api/campaigns/:pubId/updates", contentHandler.ListChildren(models.EntityTypeUpdates))
	router.GET("/api/campaigns/:pubId/poaps", contentHandler.ListChildren(models.EntityTypePoaps))
	router.GET("/api/places", placeHandler.ListPlaces)
	router.GET("/api/places/:pubId", placeHandler.GetPlace)
	router.GET("/api/moderations/:pubId", moderationHandler.GetModeration)
	router.GET("/api/moderations/entity/:type/:id", moderationHandler.ListByEntity)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// Campaign endpoints
		api.POST("/campaigns", campaignHandler.CreateCampaign)
		api.PUT("/campaigns/:pubId", campaignHandler.UpdateCampaign)
		api.POST("/campaigns/:pubId/publish", campaignHandler.PublishCampaign)
		api.POST("/campaigns/:pubId/signatures", contentHandler.CreateSignature)
		api.POST("/campaigns/:pubId/votes", contentHandler.CreateVote)
		api.POST("/campaigns/:pubId/donations", contentHandler.CreateDonation)
		api.POST("/campaigns/:pubId/fundings", contentHandler.CreateFunding)
		api.POST("/campaigns/:pubId/updates", contentHandler.CreateUpdate)
		api.POST("/campaigns/:pubId/poaps", contentHandler.CreatePoap)

		// Place endpoints
		api.POST("/places", placeHandler.CreatePlace)

		// Report endpoints
		api.POST("/reports", reportHandler.CreateReport)
		api.GET("/reports/:pubId", reportHandler.GetReport)

		// Challenge endpoints
		api.POST("/challenges", challengeHandler.CreateChallenge)
		api.GET("/challenges/mine", challengeHandler.ListMine)
		api.GET("/challenges/:pubId", challengeHandler.GetChallenge)
		api.GET("/challenges/:pubId/votes", challengeHandler.ListVotes)

		// Reward endpoints
		api.GET("/users/rewards", userHandler.ListRewards)
		api.GET("/users/rewards/balance", userHandler.GetRewardBalance)
	}

	// Moderation routes (protected + moderator only)
	moderation := router.Group("/api/moderation")
	moderation.Use(auth.AuthMiddleware())
	moderation.Use(auth.RequireModerator())
	{
		moderation.GET("/reports", reportHandler.ListReports)
		moderation.GET("/reports/entity/:type/:id", reportHandler.ListReportsByEntity)
		moderation.POST("/reports/:id/ignore", moderationHandler.IgnoreReport)
		moderation.GET("/reports/:id/moderation", moderationHandler.GetByReport)
		moderation.POST("/moderations", moderationHandler.Moderate)
	}

	// Judge routes (protected + judge only)
	judge := router.Group("/api/judge")
	judge.Use(auth.AuthMiddleware())
	judge.Use(auth.RequireJudge())
	{
		judge.GET("/challenges", challengeHandler.ListAssigned)
		judge.POST("/challenges/:pubId/vote", challengeHandler.Vote)
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(auth.RequireAdmin())
	{
		admin.PUT("/users/:id/role", adminHandler.SetUserRole)
		admin.GET("/audit", adminHandler.ListAuditLogs)
		admin.POST("/challenges/:id/judge", challengeHandler.AssignJudge)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	assigner.Stop()

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
