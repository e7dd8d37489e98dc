package routes

import (
	"net/http"
	"time"

	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers provider profile and availability
// management endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Public endpoints: registration, profile, and slot browsing.
		api.POST("/register", hb.RegisterProviderHandler)
		api.GET("/:id", hb.GetProviderHandler)
		api.GET("/:id/slots", hb.GetSlotsHandler)
		api.GET("/:id/rules", hb.ListRulesHandler)
		api.GET("/:id/exceptions", hb.ListExceptionsHandler)

		// Endpoints that modify provider data require authentication.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.PATCH("/:id", hb.UpdateProviderHandler)
		protected.POST("/:id/rules", hb.AddRuleHandler)
		protected.DELETE("/:id/rules/:ruleId", hb.DeleteRuleHandler)
		protected.POST("/:id/exceptions", hb.AddExceptionHandler)
		protected.DELETE("/:id/exceptions/:exceptionId", hb.DeleteExceptionHandler)
		protected.GET("/:id/bookings", hb.ListProviderBookingsHandler)
		protected.POST("/:id/portfolio", hb.UploadPortfolioImageHandler)
		protected.DELETE("/:id/portfolio", hb.DeletePortfolioImageHandler)
	}
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.GET("/mine", hb.ListMyBookingsHandler)
		bookingGroup.GET("/:id", hb.GetBookingHandler)
		bookingGroup.POST("/:id/confirm", hb.ConfirmBookingHandler)
		bookingGroup.POST("/:id/reject", hb.RejectBookingHandler)
		bookingGroup.POST("/:id/cancel", hb.CancelBookingHandler)
	}
}

// RegisterWebhookRoutes registers payment processor callbacks. These carry
// their own signature-based authentication.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/webhooks/stripe", hb.StripeWebhookHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterHealthRoute(r)
}
