package handlers

import (
	"net/http"
	"time"

	bookingRepo "slotwise/database/repository/booking"
	"slotwise/middleware"
	"slotwise/models"
	"slotwise/services/booking"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle transitions and listings.
type BookingHandler struct {
	Svc  booking.BookingService
	Repo bookingRepo.BookingRepository
}

// NewBookingHandler creates a new BookingHandler instance.
func NewBookingHandler(svc booking.BookingService, repo bookingRepo.BookingRepository) *BookingHandler {
	return &BookingHandler{Svc: svc, Repo: repo}
}

// statusForBookingError maps service error codes to HTTP statuses.
func statusForBookingError(err error) int {
	switch {
	case booking.HasCode(err, booking.CodeNotFound):
		return http.StatusNotFound
	case booking.HasCode(err, booking.CodeUnauthorized):
		return http.StatusForbidden
	case booking.HasCode(err, booking.CodeInvalidTransition),
		booking.HasCode(err, booking.CodeAlreadyRefunded),
		booking.HasCode(err, booking.CodeCancellationWindowClosed),
		booking.HasCode(err, booking.CodeSlotUnavailable):
		return http.StatusConflict
	case booking.HasCode(err, booking.CodeRefundFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ConfirmBookingHandler confirms a pending booking. Provider only.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	b, err := h.Svc.Confirm(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		utils.JSONError(c, statusForBookingError(err), "failed to confirm booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, b)
}

// RejectBookingHandler rejects a pending booking with a full refund.
// Provider only.
func (h *BookingHandler) RejectBookingHandler(c *gin.Context) {
	b, err := h.Svc.Reject(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		utils.JSONError(c, statusForBookingError(err), "failed to reject booking", err.Error())
		return
	}
	// The window is free again; drop stale slot listings.
	invalidateSlotsCache(c.Request.Context(), b.ProviderID)
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler cancels a confirmed booking with a partial refund.
// Booker only.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	b, err := h.Svc.Cancel(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		utils.JSONError(c, statusForBookingError(err), "failed to cancel booking", err.Error())
		return
	}
	invalidateSlotsCache(c.Request.Context(), b.ProviderID)
	c.JSON(http.StatusOK, b)
}

// bookingView is the API shape of a booking: the stored status is replaced
// with the effective one, so stale pending bookings read as expired.
type bookingView struct {
	models.Booking
	Status string `json:"status"`
}

func viewOf(b models.Booking, now time.Time) bookingView {
	return bookingView{Booking: b, Status: b.EffectiveStatus(now)}
}

// GetBookingHandler returns a single booking. Only its parties may read it.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found", err.Error())
		return
	}
	caller := middleware.CallerID(c)
	if caller != b.ProviderID && caller != b.BookerID {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "only the booking's parties may view it")
		return
	}
	c.JSON(http.StatusOK, viewOf(*b, time.Now().UTC()))
}

// ListProviderBookingsHandler returns the caller's bookings as a provider.
func (h *BookingHandler) ListProviderBookingsHandler(c *gin.Context) {
	providerID := c.Param("id")
	if middleware.CallerID(c) != providerID {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "providers may only list their own bookings")
		return
	}

	bookings, err := h.Repo.ListByProvider(providerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}

	now := time.Now().UTC()
	views := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, viewOf(b, now))
	}
	c.JSON(http.StatusOK, views)
}

// ListMyBookingsHandler returns the caller's bookings as a booker.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	bookings, err := h.Repo.ListByBooker(middleware.CallerID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}

	now := time.Now().UTC()
	views := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, viewOf(b, now))
	}
	c.JSON(http.StatusOK, views)
}
