package bookingRepo

import (
	"context"
	"errors"
	"time"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrSlotTaken is returned by CreateIfSlotFree when an overlapping pending or
// confirmed booking already exists for the provider.
var ErrSlotTaken = errors.New("slot already taken by another booking")

// BookingRepository defines booking data access. The create path is
// transactional: the overlap check and the insert happen in one Mongo
// session so two bookers racing for the same slot cannot both win.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// CreateIfSlotFree inserts the booking only if no pending or confirmed
	// booking of the same provider overlaps its window. Returns ErrSlotTaken
	// when the window is no longer free.
	CreateIfSlotFree(ctx context.Context, booking *models.Booking) error
	// UpdateSetDocument applies a partial $set update to a booking record.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// FindBlocking returns the provider's pending and confirmed bookings
	// intersecting [from, to).
	FindBlocking(providerID string, from, to time.Time) ([]models.Booking, error)
	// ListByProvider retrieves all bookings for a provider, newest first.
	ListByProvider(providerID string) ([]models.Booking, error)
	// ListByBooker retrieves all bookings made by a booker, newest first.
	ListByBooker(bookerID string) ([]models.Booking, error)
}
