package booking

import (
	"context"
	"time"

	availabilityRepo "slotwise/database/repository/availability"
	bookingRepo "slotwise/database/repository/booking"
	conversationRepo "slotwise/database/repository/conversation"
	providerRepo "slotwise/database/repository/provider"
	userRepo "slotwise/database/repository/user"
	"slotwise/models"
	"slotwise/services/notification"
	"slotwise/services/payment"
)

// CreateBookingInput is everything the payment webhook knows about a booking:
// the parties, the exact slot the booker selected, and the captured payment.
type CreateBookingInput struct {
	ProviderID      string
	BookerID        string
	BookerEmail     string
	BookerName      string
	StartUTC        time.Time
	SessionMinutes  int
	Price           float64
	Currency        string
	PaymentIntentID string
	Notes           string
}

// ReminderScheduler enqueues a session reminder to fire at the given instant.
type ReminderScheduler interface {
	ScheduleReminder(bookingID string, fireAt time.Time) error
}

// BookingService is the booking lifecycle state machine:
// pending -> confirmed | rejected, confirmed -> cancelled. Each transition
// enforces its authorization guard, the refund idempotency guard, and the
// refund-before-status-write ordering.
type BookingService interface {
	// CreateFromPayment persists a pending booking after a successful payment
	// capture, re-validating the chosen slot atomically with the write. A
	// lost race refunds the capture in full and fails with SlotUnavailable.
	CreateFromPayment(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	// Confirm moves a pending booking to confirmed. Provider only.
	Confirm(ctx context.Context, bookingID, callerID string) (*models.Booking, error)
	// Reject moves a pending booking to rejected after a full refund.
	// Provider only.
	Reject(ctx context.Context, bookingID, callerID string) (*models.Booking, error)
	// Cancel moves a confirmed booking to cancelled after a partial refund,
	// allowed only up to one hour before start. Booker only.
	Cancel(ctx context.Context, bookingID, callerID string) (*models.Booking, error)
	// AvailableSlots returns the conflict-free future slots for a provider on
	// one calendar date.
	AvailableSlots(ctx context.Context, providerID, date string) ([]models.SlotWindow, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings      bookingRepo.BookingRepository
	Providers     providerRepo.ProviderRepository
	Users         userRepo.UserRepository
	Conversations conversationRepo.ConversationRepository
	Availability  availabilityRepo.AvailabilityRepository
	Refunder      payment.Refunder
	Notifier      notification.NotificationService
	Reminders     ReminderScheduler
	Clock         Clock
}
