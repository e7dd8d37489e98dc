package notification

import (
	"context"

	"slotwise/models"
)

// Recipient is the delivery target for one notification. Email is the
// primary channel; a push is additionally sent when a device token is
// registered.
type Recipient struct {
	Email    string
	Name     string
	FCMToken string
}

// NotificationService delivers booking lifecycle notifications. Deliveries
// are fire-and-forget from the booking engine's perspective: failures are
// reported but never roll back a committed transition.
type NotificationService interface {
	Notify(ctx context.Context, kind string, rcpt Recipient, data models.NotificationData) error
}
