package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carnivalxperience/internal/container"
	"github.com/joshua-takyi/carnivalxperience/internal/handlers"
	"github.com/joshua-takyi/carnivalxperience/internal/middleware"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	cfg := container.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.CodedErrorResponse("route not found", "NOT_FOUND"))
	})

	auth := middleware.Auth(container.Verifier, container.ProfileService, container.Logger)
	optionalAuth := middleware.OptionalAuth(container.Verifier, container.ProfileService, container.Logger)
	limited := middleware.RateLimit(cfg.RateLimit, container.Redis, container.Logger)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "carnivalxperience-api",
				"backend": cfg.DataBackend,
			})
		})

		api.GET("/events", handlers.ListEvents(container.EventService))
		api.GET("/events/:id", handlers.GetEvent(container.EventService))
		api.GET("/hotels", handlers.ListHotels(container.HotelService))
		api.GET("/hotels/:id", handlers.GetHotel(container.HotelService))
		api.GET("/bands", handlers.ListBands(container.VoteService))
		api.GET("/live-updates", handlers.ListLiveUpdates(container.LiveUpdateService))

		api.GET("/payments/verify", handlers.VerifyPaymentRedirect(container.PaymentService, cfg.FrontendURL))
		api.POST("/payments/verify", handlers.PaymentWebhook(container.PaymentService))

		api.GET("/i18n/languages", handlers.ListLanguages())
		api.GET("/i18n/:lang", handlers.GetTranslations())

		api.GET("/geo/search", handlers.SearchPlaces(container.GeoService))
		api.GET("/geo/reverse", handlers.ReversePlace(container.GeoService))
		api.GET("/geo/distance", handlers.EstimateDistance(container.GeoService))

		api.GET("/safety/location-share/code/:code", handlers.GetSharedLocation(container.SafetyService))

		// signed-in callers get their own bucket
		api.POST("/chat", optionalAuth, limited, handlers.Chat(container.ConciergeService))
	}

	protected := api.Group("/")
	protected.Use(auth)

	protected.POST("/bands/:id/vote", handlers.VoteForBand(container.VoteService))
	protected.POST("/live-updates", middleware.RequireAdmin(), handlers.PostLiveUpdate(container.LiveUpdateService))

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.GET("", handlers.ListBookings(container.BookingService))
		bookingRoutes.POST("", handlers.CreateBooking(container.BookingService))
		bookingRoutes.GET("/:id", handlers.GetBooking(container.BookingService))
	}

	safetyRoutes := protected.Group("/safety")
	{
		safetyRoutes.POST("/emergency", handlers.RaiseEmergency(container.SafetyService))
		safetyRoutes.GET("/incidents", handlers.ListIncidents(container.SafetyService))
		safetyRoutes.POST("/incidents", handlers.ReportIncident(container.SafetyService))

		safetyRoutes.GET("/family", handlers.ListFamilyGroups(container.SafetyService))
		safetyRoutes.POST("/family", handlers.CreateFamilyGroup(container.SafetyService))
		safetyRoutes.POST("/family/:id/members", handlers.AddFamilyMember(container.SafetyService))
		safetyRoutes.PATCH("/family/:id/members/:memberId", handlers.UpdateFamilyMember(container.SafetyService))

		safetyRoutes.GET("/location-share", handlers.ListLocationShares(container.SafetyService))
		safetyRoutes.POST("/location-share", handlers.CreateLocationShare(container.SafetyService))
		safetyRoutes.PATCH("/location-share/:id", handlers.UpdateLocationShare(container.SafetyService))
		safetyRoutes.DELETE("/location-share/:id", handlers.StopLocationShare(container.SafetyService))
	}

	profileRoutes := protected.Group("/profile")
	{
		profileRoutes.GET("/:userId", handlers.GetProfile(container.ProfileService))
		profileRoutes.PATCH("/:userId", handlers.UpdateProfile(container.ProfileService))
		profileRoutes.GET("/:userId/language", handlers.GetLanguage(container.ProfileService))
		profileRoutes.PUT("/:userId/language", handlers.SetLanguage(container.ProfileService))
	}

	conciergeRoutes := protected.Group("/concierge/sessions")
	{
		conciergeRoutes.GET("", handlers.ListSessions(container.ConciergeService))
		conciergeRoutes.POST("", handlers.CreateSession(container.ConciergeService))
		conciergeRoutes.GET("/:id", handlers.GetSession(container.ConciergeService))
		conciergeRoutes.PATCH("/:id", handlers.UpdateSession(container.ConciergeService))
		conciergeRoutes.GET("/:id/messages", handlers.ListMessages(container.ConciergeService))
		conciergeRoutes.POST("/:id/messages", limited, handlers.AddMessage(container.ConciergeService))
	}

	favouriteRoutes := protected.Group("/favourites")
	{
		favouriteRoutes.GET("", handlers.GetUserFavourites(container.FavouritesService))
		favouriteRoutes.POST("/:id", handlers.AddToFavourites(container.FavouritesService))
		favouriteRoutes.DELETE("/:id", handlers.RemoveFromFavourite(container.FavouritesService))
	}

	return r
}
