package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/api/handlers"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/api/middleware"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/authclient"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/config"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/services"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/storage"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/tasks"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/video"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	uploader storage.Uploader,
	videoPlatform video.Platform,
	taskClient tasks.IClient,
) *gin.Engine {
	// Initialize services needed by API handlers here.
	authClient := authclient.New(cfg, rdb)
	enrichmentService := services.NewEnrichmentService(authClient)
	profileService := services.NewProfileService(db, cfg, enrichmentService, uploader)
	referralService := services.NewReferralService(db, cfg, enrichmentService)
	verificationService := services.NewVerificationService(db, cfg, uploader, authClient)
	propertyService := services.NewPropertyService(db, cfg, enrichmentService, uploader, videoPlatform, taskClient)

	r := gin.Default()

	// Apply global middleware first (order matters)
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)
	r.Use(middleware.CORSMiddleware())
	r.Use(rateLimiter.Limit())

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(profileService, referralService)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	verificationHandler := handlers.NewVerificationHandler(verificationService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	authRequired := middleware.AuthMiddleware(cfg.JwtSecret)

	profile := r.Group("/agents/profile")
	{
		// Public and internal routes
		profile.GET("/all", profileHandler.GetAllAgents)
		profile.POST("/batch", profileHandler.GetAgentsBatch)
		profile.POST("/track", profileHandler.TrackReferral)

		// Authenticated routes
		profile.GET("/me", authRequired, profileHandler.GetMyProfile)
		profile.PUT("/me", authRequired, profileHandler.UpdateMyProfile)
		profile.GET("/overview", authRequired, profileHandler.GetDashboardOverview)
		profile.GET("/code", authRequired, profileHandler.GetReferralCode)
		profile.GET("/referraldata", authRequired, profileHandler.GetReferralData)

		// Wildcard last so static segments win
		profile.GET("/:agentId", profileHandler.GetAgentByID)
	}

	properties := r.Group("/agents/properties")
	{
		// Public routes
		properties.GET("/all", propertyHandler.GetAllProperties)
		properties.GET("/filter", propertyHandler.FilterProperties)
		properties.GET("/single/:propertyId", propertyHandler.GetSingleProperty)
		properties.GET("/public/:agentId", propertyHandler.GetPublicAgentWithProperties)

		// Authenticated routes
		properties.POST("", authRequired, propertyHandler.AddProperty)
		properties.PUT("/:id", authRequired, propertyHandler.UpdateProperty)
		properties.DELETE("/:id", authRequired, propertyHandler.DeleteProperty)
		properties.GET("/mine", authRequired, propertyHandler.GetMyProperties)
		properties.POST("/images/delete", authRequired, propertyHandler.DeleteImages)
		properties.POST("/videos/delete", authRequired, propertyHandler.DeleteVideos)
		properties.POST("/youtube/delete", authRequired, propertyHandler.DeleteYouTubeLinks)
	}

	verification := r.Group("/agents/verification")
	verification.Use(authRequired)
	{
		verification.POST("/submit", verificationHandler.Submit)
		verification.PUT("/resubmit", verificationHandler.Resubmit)
		verification.GET("/me", verificationHandler.GetMyVerification)
		verification.GET("/receipt", verificationHandler.GetReceipt)
	}

	return r
}
