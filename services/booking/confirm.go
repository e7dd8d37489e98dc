package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"slotwise/models"
	"slotwise/services/notification"
	"slotwise/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// Confirm moves a pending booking to confirmed. Only the booking's provider
// may confirm. Ordering: meeting link assignment, status write, lazy
// conversation creation, booker notification, reminder scheduling.
func (s *DefaultBookingService) Confirm(ctx context.Context, bookingID, callerID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, WrapBookingError(CodeNotFound, err, "booking %s not found", bookingID)
	}
	if b.ProviderID != callerID {
		return nil, NewBookingError(CodeUnauthorized, "only the booking's provider may confirm")
	}
	if b.Status != models.BookingStatusPending {
		return nil, NewBookingError(CodeInvalidTransition, "cannot confirm a booking in status %q", b.Status)
	}
	now := s.Clock.Now()
	if !b.StartUTC.After(now) {
		return nil, NewBookingError(CodeInvalidTransition, "cannot confirm an expired booking")
	}

	if b.MeetingLink == "" {
		b.MeetingLink = fmt.Sprintf("https://meet.slotwise.app/%s", b.ID)
	}

	if err := s.Bookings.UpdateSetDocument(b.ID, bson.M{
		"status":      models.BookingStatusConfirmed,
		"meetingLink": b.MeetingLink,
	}); err != nil {
		return nil, err
	}
	b.Status = models.BookingStatusConfirmed

	// One conversation per booking; reuse when a retry already created it.
	conv, err := s.Conversations.GetByBookingID(b.ID)
	if err != nil {
		logger.Warn("conversation lookup failed", zap.String("bookingID", b.ID), zap.Error(err))
	}
	if conv == nil && err == nil {
		conv = &models.Conversation{
			ID:         uuid.New().String(),
			BookingID:  b.ID,
			ProviderID: b.ProviderID,
			BookerID:   b.BookerID,
		}
		if err := s.Conversations.Create(conv); err != nil {
			logger.Warn("conversation creation failed", zap.String("bookingID", b.ID), zap.Error(err))
		}
	}

	provider, booker, err := s.loadParties(b)
	if err != nil {
		return b, nil
	}
	if booker != nil && booker.EmailOptIn {
		s.notify(ctx, models.NotifyBookingConfirmed,
			notification.Recipient{Email: booker.Email, Name: booker.Name, FCMToken: booker.FCMToken},
			s.notificationData(provider, booker.Name, b))
	}

	if s.Reminders != nil {
		fireAt := b.StartUTC.Add(-time.Hour)
		if fireAt.After(now) {
			if err := s.Reminders.ScheduleReminder(b.ID, fireAt); err != nil {
				logger.Warn("reminder scheduling failed", zap.String("bookingID", b.ID), zap.Error(err))
			}
		}
	}

	logger.Info("booking confirmed", zap.String("bookingID", b.ID), zap.String("providerID", b.ProviderID))
	return b, nil
}
