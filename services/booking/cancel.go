package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"slotwise/models"
	"slotwise/services/notification"
	"slotwise/services/payment"
	"slotwise/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// CancellationCutoff is how long before the session start a booker can still
// cancel. Requests inside the window are refused.
const CancellationCutoff = time.Hour

// Cancel moves a confirmed booking to cancelled, booker-initiated. The
// refund is partial — the provider transfer is reversed but the platform
// keeps its application fee — and it happens BEFORE the status write.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID, callerID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, WrapBookingError(CodeNotFound, err, "booking %s not found", bookingID)
	}
	if b.BookerID != callerID {
		return nil, NewBookingError(CodeUnauthorized, "only the booking's booker may cancel")
	}
	if b.RefundID != "" {
		return nil, NewBookingError(CodeAlreadyRefunded, "booking %s was already refunded (%s)", b.ID, b.RefundID)
	}
	if b.Status != models.BookingStatusConfirmed {
		return nil, NewBookingError(CodeInvalidTransition, "cannot cancel a booking in status %q", b.Status)
	}
	now := s.Clock.Now()
	if !now.Before(b.StartUTC.Add(-CancellationCutoff)) {
		return nil, NewBookingError(CodeCancellationWindowClosed,
			"cancellation is only allowed until one hour before start (starts %s)", b.StartUTC.Format(time.RFC3339))
	}

	refund, err := s.Refunder.Refund(ctx, b.PaymentIntentID, payment.PartialRefund())
	if err != nil {
		return nil, WrapBookingError(CodeRefundFailed, err, "partial refund for booking %s failed", b.ID)
	}

	if err := s.Bookings.UpdateSetDocument(b.ID, bson.M{
		"status":       models.BookingStatusCancelled,
		"cancelledBy":  models.CancelledByBooker,
		"refundId":     refund.ID,
		"refundStatus": refund.Status,
	}); err != nil {
		logger.Error("status write failed after refund",
			zap.String("bookingID", b.ID), zap.String("refundID", refund.ID), zap.Error(err))
		return nil, err
	}
	b.Status = models.BookingStatusCancelled
	b.CancelledBy = models.CancelledByBooker
	b.RefundID = refund.ID
	b.RefundStatus = refund.Status

	provider, booker, err := s.loadParties(b)
	if err == nil && provider.EmailOptIn {
		bookerName := b.BookerID
		if booker != nil {
			bookerName = booker.Name
		}
		s.notify(ctx, models.NotifyBookingCancelled,
			notification.Recipient{Email: provider.Email, Name: provider.Name, FCMToken: provider.FCMToken},
			s.notificationData(provider, bookerName, b))
	}

	logger.Info("booking cancelled",
		zap.String("bookingID", b.ID), zap.String("refundID", refund.ID))
	return b, nil
}
