package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"slotwise/models"
	"slotwise/services/notification"
	"slotwise/utils"
)

// notificationData renders the booking's date and time in the provider's
// timezone for outbound messages.
func (s *DefaultBookingService) notificationData(provider *models.Provider, bookerName string, b *models.Booking) models.NotificationData {
	data := models.NotificationData{
		ProviderName: provider.Name,
		BookerName:   bookerName,
		MeetingLink:  b.MeetingLink,
		Message:      b.Notes,
	}

	local := b.StartUTC
	if loc, err := time.LoadLocation(provider.Timezone); err == nil {
		local = b.StartUTC.In(loc)
	}
	data.Date = local.Format("2006-01-02")
	data.Time = local.Format("15:04")
	return data
}

// notify delivers best-effort: the money movement and the status write are
// the contract, not the email. Failures are logged and swallowed.
func (s *DefaultBookingService) notify(ctx context.Context, kind string, rcpt notification.Recipient, data models.NotificationData) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(ctx, kind, rcpt, data); err != nil {
		utils.GetLogger().Warn("notification delivery failed",
			zap.String("kind", kind), zap.String("recipient", rcpt.Email), zap.Error(err))
	}
}

// loadParties fetches the provider and booker of a booking. A missing booker
// record only disables notification, it never blocks a transition.
func (s *DefaultBookingService) loadParties(b *models.Booking) (*models.Provider, *models.User, error) {
	provider, err := s.Providers.GetByID(b.ProviderID)
	if err != nil {
		return nil, nil, WrapBookingError(CodeNotFound, err, "provider %s not found", b.ProviderID)
	}
	booker, err := s.Users.GetByID(b.BookerID)
	if err != nil {
		utils.GetLogger().Warn("booker record missing",
			zap.String("bookingID", b.ID), zap.String("bookerID", b.BookerID), zap.Error(err))
		booker = nil
	}
	return provider, booker, nil
}
