package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "slotwise/database/repository/booking"
	"slotwise/models"
	"slotwise/services/notification"
	"slotwise/services/payment"
	"slotwise/services/scheduling"
	"slotwise/utils"
)

// CreateFromPayment is invoked from the payment webhook once a capture
// succeeded. The slot was validated client-side before payment, so this is
// the last line of defense: the chosen window is re-checked against the
// provider's availability and, atomically with the insert, against existing
// bookings. Losing the race means the money is already captured, so the
// booker is refunded in full before the error is surfaced.
func (s *DefaultBookingService) CreateFromPayment(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	if in.ProviderID == "" || in.BookerID == "" || in.PaymentIntentID == "" {
		return nil, NewBookingError(CodeSlotUnavailable, "missing provider, booker or payment reference")
	}
	if in.SessionMinutes <= 0 {
		return nil, NewBookingError(CodeSlotUnavailable, "session duration must be positive")
	}

	provider, err := s.Providers.GetByID(in.ProviderID)
	if err != nil {
		return nil, WrapBookingError(CodeNotFound, err, "provider %s not found", in.ProviderID)
	}

	now := s.Clock.Now()
	window := models.SlotWindow{
		StartUTC: in.StartUTC.UTC(),
		EndUTC:   in.StartUTC.UTC().Add(time.Duration(in.SessionMinutes) * time.Minute),
	}

	if err := s.validateSlotLegitimate(provider, window, now); err != nil {
		s.refundLostSlot(ctx, in.PaymentIntentID)
		return nil, err
	}

	// Keep the booker record current; identity itself lives elsewhere.
	booker := &models.User{
		ID:         in.BookerID,
		Email:      in.BookerEmail,
		Name:       in.BookerName,
		EmailOptIn: true,
	}
	if existing, err := s.Users.GetByEmail(in.BookerEmail); err == nil && existing != nil {
		booker.EmailOptIn = existing.EmailOptIn
		booker.FCMToken = existing.FCMToken
	}
	if err := s.Users.Upsert(booker); err != nil {
		logger.Warn("booker upsert failed", zap.String("bookerID", in.BookerID), zap.Error(err))
	}

	b := &models.Booking{
		ID:              uuid.New().String(),
		ProviderID:      in.ProviderID,
		BookerID:        in.BookerID,
		StartUTC:        window.StartUTC,
		EndUTC:          window.EndUTC,
		Status:          models.BookingStatusPending,
		SessionMinutes:  in.SessionMinutes,
		PriceAtBooking:  in.Price,
		Currency:        in.Currency,
		Notes:           in.Notes,
		PaymentIntentID: in.PaymentIntentID,
	}

	if err := s.Bookings.CreateIfSlotFree(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			logger.Info("slot race lost, refunding capture",
				zap.String("providerID", in.ProviderID),
				zap.Time("startUTC", window.StartUTC))
			s.refundLostSlot(ctx, in.PaymentIntentID)
			return nil, NewBookingError(CodeSlotUnavailable, "slot is no longer available")
		}
		return nil, err
	}

	if provider.EmailOptIn {
		s.notify(ctx, models.NotifyBookingCreated,
			notification.Recipient{Email: provider.Email, Name: provider.Name, FCMToken: provider.FCMToken},
			s.notificationData(provider, booker.Name, b))
	}

	logger.Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("providerID", b.ProviderID),
		zap.String("bookerID", b.BookerID))
	return b, nil
}

// validateSlotLegitimate checks the requested window is a future slot the
// provider actually offers: it must equal one of the candidate windows tiled
// from the recurring rules for that date.
func (s *DefaultBookingService) validateSlotLegitimate(provider *models.Provider, window models.SlotWindow, now time.Time) error {
	if !window.StartUTC.After(now) {
		return NewBookingError(CodeSlotUnavailable, "slot start is in the past")
	}

	loc, err := time.LoadLocation(provider.Timezone)
	if err != nil {
		return WrapBookingError(CodeSlotUnavailable, err, "provider has invalid timezone %q", provider.Timezone)
	}

	rules, err := s.Availability.ListRules(provider.ID)
	if err != nil {
		return err
	}
	exceptions, err := s.Availability.ListExceptions(provider.ID)
	if err != nil {
		return err
	}

	date := window.StartUTC.In(loc).Format("2006-01-02")
	candidates, err := scheduling.CandidateSlots(rules, exceptions, date, provider.SessionMinutes, provider.BufferMinutes, loc)
	if err != nil {
		return err
	}
	for _, cand := range candidates {
		if cand.StartUTC.Equal(window.StartUTC) && cand.EndUTC.Equal(window.EndUTC) {
			return nil
		}
	}
	return NewBookingError(CodeSlotUnavailable, "slot does not match the provider's availability")
}

// refundLostSlot refunds a capture whose slot could not be honored. The
// booking was never persisted, so there is nothing to mark; failure here is
// logged loudly and left to processor-side reconciliation.
func (s *DefaultBookingService) refundLostSlot(ctx context.Context, paymentIntentID string) {
	if _, err := s.Refunder.Refund(ctx, paymentIntentID, payment.FullRefund()); err != nil {
		utils.GetLogger().Error("failed to refund unbookable capture",
			zap.String("paymentIntent", paymentIntentID), zap.Error(err))
	}
}
