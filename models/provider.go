package models

import "time"

// Provider represents a service provider who publishes recurring availability.
// A provider has exactly one IANA timezone; all availability rules are
// interpreted against it.
type Provider struct {
	ID              string    `bson:"id" json:"id"`
	Email           string    `bson:"email" json:"email"`
	Name            string    `bson:"name" json:"name"`
	Timezone        string    `bson:"timezone" json:"timezone"`                // IANA, e.g. "America/New_York"
	SessionMinutes  int       `bson:"sessionMinutes" json:"sessionMinutes"`    // default session duration
	BufferMinutes   int       `bson:"bufferMinutes" json:"bufferMinutes"`      // gap inserted between consecutive slots
	SessionPrice    float64   `bson:"sessionPrice" json:"sessionPrice"`        // price per session
	Currency        string    `bson:"currency" json:"currency"`
	EmailOptIn      bool      `bson:"emailOptIn" json:"emailOptIn"`            // booking notifications by email
	FCMToken        string    `bson:"fcmToken,omitempty" json:"-"`             // optional push channel
	PortfolioImages []string  `bson:"portfolioImages,omitempty" json:"portfolioImages,omitempty"` // hosted image public IDs
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProviderProfileUpdate carries the mutable profile fields.
type ProviderProfileUpdate struct {
	Name           *string  `json:"name,omitempty"`
	Timezone       *string  `json:"timezone,omitempty"`
	SessionMinutes *int     `json:"sessionMinutes,omitempty"`
	BufferMinutes  *int     `json:"bufferMinutes,omitempty"`
	SessionPrice   *float64 `json:"sessionPrice,omitempty"`
	EmailOptIn     *bool    `json:"emailOptIn,omitempty"`
	FCMToken       *string  `json:"fcmToken,omitempty"`
}
