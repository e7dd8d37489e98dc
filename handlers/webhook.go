package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"slotwise/config"
	"slotwise/services/booking"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// maxWebhookBodyBytes caps the webhook request body.
const maxWebhookBodyBytes = 1 << 20

// StripeWebhookHandler turns successful payment captures into pending
// bookings. No JWT auth; the signature verification is the auth.
type StripeWebhookHandler struct {
	Svc booking.BookingService
}

// NewStripeWebhookHandler creates a new StripeWebhookHandler instance.
func NewStripeWebhookHandler(svc booking.BookingService) *StripeWebhookHandler {
	return &StripeWebhookHandler{Svc: svc}
}

// HandleWebhook processes Stripe events. POST /api/webhooks/stripe
func (h *StripeWebhookHandler) HandleWebhook(c *gin.Context) {
	logger := utils.GetLogger()

	secret := config.AppConfig.StripeWebhookSecret
	if secret == "" {
		utils.JSONError(c, http.StatusServiceUnavailable, "stripe webhook not configured", "")
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	if sigHeader == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing Stripe-Signature header", "")
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read request body", err.Error())
		return
	}

	event, err := webhook.ConstructEvent(body, sigHeader, secret)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid signature", err.Error())
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid payment intent payload", err.Error())
			return
		}
		h.handlePaymentCaptured(c, pi)
	default:
		logger.Debug("ignoring stripe event", zap.String("type", string(event.Type)))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

// handlePaymentCaptured creates the pending booking a capture paid for. The
// slot identity travels in the payment intent's metadata, set by the checkout
// flow before the capture.
func (h *StripeWebhookHandler) handlePaymentCaptured(c *gin.Context, pi stripe.PaymentIntent) {
	logger := utils.GetLogger()

	startUTC, err := time.Parse(time.RFC3339, pi.Metadata["startUtc"])
	if err != nil {
		logger.Error("stripe capture missing slot start",
			zap.String("paymentIntent", pi.ID), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "ignored", "reason": "missing or invalid startUtc metadata"})
		return
	}
	sessionMinutes, err := strconv.Atoi(pi.Metadata["sessionMinutes"])
	if err != nil {
		logger.Error("stripe capture missing session duration",
			zap.String("paymentIntent", pi.ID), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "ignored", "reason": "missing or invalid sessionMinutes metadata"})
		return
	}

	in := booking.CreateBookingInput{
		ProviderID:      pi.Metadata["providerId"],
		BookerID:        pi.Metadata["bookerId"],
		BookerEmail:     pi.Metadata["bookerEmail"],
		BookerName:      pi.Metadata["bookerName"],
		StartUTC:        startUTC,
		SessionMinutes:  sessionMinutes,
		Price:           float64(pi.Amount) / 100,
		Currency:        string(pi.Currency),
		PaymentIntentID: pi.ID,
		Notes:           pi.Metadata["notes"],
	}

	b, err := h.Svc.CreateFromPayment(c.Request.Context(), in)
	if err != nil {
		// The capture was refunded; acknowledge so Stripe stops retrying.
		if booking.HasCode(err, booking.CodeSlotUnavailable) {
			c.JSON(http.StatusOK, gin.H{"status": "refunded", "reason": err.Error()})
			return
		}
		logger.Error("failed to create booking from capture",
			zap.String("paymentIntent", pi.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking", err.Error())
		return
	}

	invalidateSlotsCache(c.Request.Context(), b.ProviderID)
	c.JSON(http.StatusOK, gin.H{"status": "created", "bookingId": b.ID})
}
