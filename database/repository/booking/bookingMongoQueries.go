package bookingRepo

import (
	"fmt"
	"time"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// blockingFilter matches the provider's pending and confirmed bookings
// intersecting the half-open window [from, to).
func blockingFilter(providerID string, from, to time.Time) bson.M {
	return bson.M{
		"providerId": providerID,
		"status":     bson.M{"$in": []string{models.BookingStatusPending, models.BookingStatusConfirmed}},
		"startUtc":   bson.M{"$lt": to},
		"endUtc":     bson.M{"$gt": from},
	}
}

// FindBlocking returns the provider's pending and confirmed bookings
// intersecting [from, to).
func (r *MongoBookingRepo) FindBlocking(providerID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, blockingFilter(providerID, from, to))
	if err != nil {
		return nil, fmt.Errorf("failed to query blocking bookings for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// ListByProvider retrieves all bookings for a provider, newest first.
func (r *MongoBookingRepo) ListByProvider(providerID string) ([]models.Booking, error) {
	return r.list(bson.M{"providerId": providerID})
}

// ListByBooker retrieves all bookings made by a booker, newest first.
func (r *MongoBookingRepo) ListByBooker(bookerID string) ([]models.Booking, error) {
	return r.list(bson.M{"bookerId": bookerID})
}

func (r *MongoBookingRepo) list(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startUtc", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
