package models

import "time"

// Booking statuses. "expired" is never stored; it is derived at read time for
// pending bookings whose start has passed (see EffectiveStatus).
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusRejected  = "rejected"
	BookingStatusCancelled = "cancelled"
	BookingStatusExpired   = "expired"
)

// Parties that can cancel a booking.
const (
	CancelledByBooker = "booker"
)

// Booking is the single source of truth for payment linkage and refund state.
// The payment processor is never queried for authoritative status; once the
// refund fields are set here, they are final.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	ProviderID      string    `bson:"providerId" json:"providerId"`
	BookerID        string    `bson:"bookerId" json:"bookerId"`
	StartUTC        time.Time `bson:"startUtc" json:"startUtc"`
	EndUTC          time.Time `bson:"endUtc" json:"endUtc"`
	Status          string    `bson:"status" json:"status"`
	SessionMinutes  int       `bson:"sessionMinutes" json:"sessionMinutes"`
	PriceAtBooking  float64   `bson:"priceAtBooking" json:"priceAtBooking"`
	Currency        string    `bson:"currency" json:"currency"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	PaymentIntentID string    `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	MeetingLink     string    `bson:"meetingLink,omitempty" json:"meetingLink,omitempty"`
	RefundID        string    `bson:"refundId,omitempty" json:"refundId,omitempty"`
	RefundStatus    string    `bson:"refundStatus,omitempty" json:"refundStatus,omitempty"`
	CancelledBy     string    `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// EffectiveStatus returns the status clients should display. A pending
// booking whose start time has passed reads as expired without any stored
// status change.
func (b Booking) EffectiveStatus(now time.Time) string {
	if b.Status == BookingStatusPending && b.StartUTC.Before(now) {
		return BookingStatusExpired
	}
	return b.Status
}

// Blocks reports whether this booking holds its time window. Only pending and
// confirmed bookings block a slot; rejected and cancelled release their time
// immediately.
func (b Booking) Blocks() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// Window returns the booking's half-open UTC interval.
func (b Booking) Window() SlotWindow {
	return SlotWindow{StartUTC: b.StartUTC, EndUTC: b.EndUTC}
}
