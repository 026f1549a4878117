package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devranvijay/PropertyPro/internal/api/handlers"
	"github.com/devranvijay/PropertyPro/internal/api/middleware"
	"github.com/devranvijay/PropertyPro/internal/config"
	"github.com/devranvijay/PropertyPro/internal/policy"
	"github.com/devranvijay/PropertyPro/internal/services"
	"github.com/devranvijay/PropertyPro/internal/storage"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, db *mongo.Database, taskClient handlers.IAsynqClient) *gin.Engine {
	// Initialize services needed by API handlers
	userService := services.NewUserService(db)
	propertyService := services.NewPropertyService(db)
	offerService := services.NewOfferService(db, userService, propertyService)
	visitService := services.NewVisitService(db, userService, propertyService)
	inquiryService := services.NewInquiryService(db, userService, propertyService)
	contactService := services.NewContactService(db, userService, propertyService, cfg.NotifyFallbackTo)
	activityService := services.NewActivityService(db)

	localStorage, err := storage.NewLocalStorage(cfg)
	if err != nil {
		log.Fatalf("CRITICAL: Failed to initialize upload storage: %v", err)
	}

	r := gin.Default()

	// Global middleware (order matters)
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)
	r.Use(middleware.CORSMiddleware())
	r.Use(rateLimiter.Limit())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, cfg)
	propertyHandler := handlers.NewPropertyHandler(propertyService, localStorage, taskClient)
	uploadHandler := handlers.NewUploadHandler(localStorage, taskClient)
	offerHandler := handlers.NewOfferHandler(offerService)
	visitHandler := handlers.NewVisitHandler(visitService)
	inquiryHandler := handlers.NewInquiryHandler(inquiryService)
	contactHandler := handlers.NewContactHandler(contactService, taskClient)
	activityHandler := handlers.NewActivityHandler(activityService)
	userHandler := handlers.NewUserHandler(userService)

	authRequired := middleware.AuthMiddleware(cfg.JwtSecret, userService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Static(cfg.UploadBaseURL, cfg.UploadDir)

	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/properties", propertyHandler.List)
		api.GET("/properties/my", authRequired,
			middleware.RequireAction(policy.ActionListOwn), propertyHandler.My)
		api.GET("/properties/:id", propertyHandler.GetByID)
		api.PUT("/properties/:id/view", propertyHandler.TrackView)
		api.POST("/properties", authRequired,
			middleware.RequireAction(policy.ActionCreateProperty), propertyHandler.Create)

		api.POST("/upload", uploadHandler.Upload)

		api.POST("/offers", authRequired,
			middleware.RequireAction(policy.ActionMakeOffer), offerHandler.Create)
		api.GET("/offers/my", authRequired, offerHandler.My)
		api.GET("/offers/received", authRequired,
			middleware.RequireAction(policy.ActionViewReceived), offerHandler.Received)
		api.PUT("/offers/:id/status", authRequired, offerHandler.UpdateStatus)
		api.GET("/offers/admin/all", authRequired,
			middleware.RequireAction(policy.ActionAdminOversight), offerHandler.All)

		api.POST("/visits", authRequired,
			middleware.RequireAction(policy.ActionScheduleVisit), visitHandler.Create)
		api.GET("/visits/my", authRequired, visitHandler.My)
		api.GET("/visits/incoming", authRequired,
			middleware.RequireAction(policy.ActionViewReceived), visitHandler.Incoming)
		api.PUT("/visits/:id/status", authRequired, visitHandler.UpdateStatus)
		api.GET("/visits/admin/all", authRequired,
			middleware.RequireAction(policy.ActionAdminOversight), visitHandler.All)

		api.POST("/inquiries", authRequired,
			middleware.RequireAction(policy.ActionSendInquiry), inquiryHandler.Create)
		api.GET("/inquiries/sent", authRequired, inquiryHandler.Sent)
		api.GET("/inquiries/received", authRequired,
			middleware.RequireAction(policy.ActionViewReceived), inquiryHandler.Received)
		api.PUT("/inquiries/:id/read", authRequired, inquiryHandler.MarkRead)
		api.PUT("/inquiries/:id/reply", authRequired, inquiryHandler.Reply)
		api.GET("/inquiries/admin/all", authRequired,
			middleware.RequireAction(policy.ActionAdminOversight), inquiryHandler.All)

		api.POST("/contact", contactHandler.Submit)
		api.GET("/contact/my", authRequired, contactHandler.My)

		api.POST("/activity/log", authRequired,
			middleware.RequireAction(policy.ActionTrackActivity), activityHandler.Log)
		api.GET("/activity/admin/tracking", authRequired,
			middleware.RequireAction(policy.ActionAdminOversight), activityHandler.Tracking)

		api.POST("/users/toggle-save", authRequired,
			middleware.RequireAction(policy.ActionToggleFavorite), userHandler.ToggleSave)
		api.GET("/users/saved", authRequired, userHandler.Saved)
		api.GET("/users/all", authRequired,
			middleware.RequireAction(policy.ActionAdminUsers), userHandler.All)
		api.DELETE("/users/:id", authRequired,
			middleware.RequireAction(policy.ActionAdminUsers), userHandler.Delete)
		api.PUT("/users/:id/role", authRequired,
			middleware.RequireAction(policy.ActionAdminUsers), userHandler.UpdateRole)
	}

	return r
}
