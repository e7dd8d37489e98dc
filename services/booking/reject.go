package booking

import (
	"context"

	"go.uber.org/zap"

	"slotwise/models"
	"slotwise/services/notification"
	"slotwise/services/payment"
	"slotwise/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// Reject moves a pending booking to rejected. Only the booking's provider may
// reject. The booker is made whole: the refund reverses both the platform fee
// and the provider transfer, and it happens BEFORE the status write — a
// rejection without a successful refund is not applied.
func (s *DefaultBookingService) Reject(ctx context.Context, bookingID, callerID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, WrapBookingError(CodeNotFound, err, "booking %s not found", bookingID)
	}
	if b.ProviderID != callerID {
		return nil, NewBookingError(CodeUnauthorized, "only the booking's provider may reject")
	}
	// Refund guard runs before anything else that could touch money: a
	// booking carrying a refund id must never be refunded again.
	if b.RefundID != "" {
		return nil, NewBookingError(CodeAlreadyRefunded, "booking %s was already refunded (%s)", b.ID, b.RefundID)
	}
	if b.Status != models.BookingStatusPending {
		return nil, NewBookingError(CodeInvalidTransition, "cannot reject a booking in status %q", b.Status)
	}

	refund, err := s.Refunder.Refund(ctx, b.PaymentIntentID, payment.FullRefund())
	if err != nil {
		return nil, WrapBookingError(CodeRefundFailed, err, "full refund for booking %s failed", b.ID)
	}

	if err := s.Bookings.UpdateSetDocument(b.ID, bson.M{
		"status":       models.BookingStatusRejected,
		"refundId":     refund.ID,
		"refundStatus": refund.Status,
	}); err != nil {
		// Refund went through but the write failed; the refund id in the logs
		// is the recovery handle.
		logger.Error("status write failed after refund",
			zap.String("bookingID", b.ID), zap.String("refundID", refund.ID), zap.Error(err))
		return nil, err
	}
	b.Status = models.BookingStatusRejected
	b.RefundID = refund.ID
	b.RefundStatus = refund.Status

	provider, booker, err := s.loadParties(b)
	if err == nil && booker != nil && booker.EmailOptIn {
		s.notify(ctx, models.NotifyBookingRejected,
			notification.Recipient{Email: booker.Email, Name: booker.Name, FCMToken: booker.FCMToken},
			s.notificationData(provider, booker.Name, b))
	}

	logger.Info("booking rejected",
		zap.String("bookingID", b.ID), zap.String("refundID", refund.ID))
	return b, nil
}
