package models

import "time"

// Conversation links the two parties of a confirmed booking. Exactly one per
// booking, created lazily on first confirmation; lookup by BookingID is
// authoritative.
type Conversation struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"bookingId" json:"bookingId"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	BookerID   string    `bson:"bookerId" json:"bookerId"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
