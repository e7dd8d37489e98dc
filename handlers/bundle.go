package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Provider endpoints
	RegisterProviderHandler gin.HandlerFunc
	GetProviderHandler      gin.HandlerFunc
	UpdateProviderHandler   gin.HandlerFunc

	// Availability endpoints
	GetSlotsHandler         gin.HandlerFunc
	AddRuleHandler          gin.HandlerFunc
	DeleteRuleHandler       gin.HandlerFunc
	ListRulesHandler        gin.HandlerFunc
	AddExceptionHandler     gin.HandlerFunc
	DeleteExceptionHandler  gin.HandlerFunc
	ListExceptionsHandler   gin.HandlerFunc

	// Booking endpoints
	ConfirmBookingHandler       gin.HandlerFunc
	RejectBookingHandler        gin.HandlerFunc
	CancelBookingHandler        gin.HandlerFunc
	GetBookingHandler           gin.HandlerFunc
	ListProviderBookingsHandler gin.HandlerFunc
	ListMyBookingsHandler       gin.HandlerFunc

	// Portfolio endpoints
	UploadPortfolioImageHandler gin.HandlerFunc
	DeletePortfolioImageHandler gin.HandlerFunc

	// Webhook endpoints
	StripeWebhookHandler gin.HandlerFunc
}
