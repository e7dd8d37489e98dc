package models

import "time"

// User represents a booker. Identity (id + email) is issued by the external
// identity service; this record only carries what the booking flow needs.
type User struct {
	ID         string    `bson:"id" json:"id"`
	Email      string    `bson:"email" json:"email"`
	Name       string    `bson:"name" json:"name"`
	EmailOptIn bool      `bson:"emailOptIn" json:"emailOptIn"`
	FCMToken   string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}
