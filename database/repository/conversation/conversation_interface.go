package conversationRepo

import "slotwise/models"

// ConversationRepository defines conversation data access. Lookup by
// bookingId is authoritative: a booking gets at most one conversation.
type ConversationRepository interface {
	// GetByBookingID retrieves the conversation for a booking, nil if none.
	GetByBookingID(bookingID string) (*models.Conversation, error)
	// Create inserts a new conversation record.
	Create(conv *models.Conversation) error
}
