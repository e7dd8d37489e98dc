package models

// Notification template kinds.
const (
	NotifyBookingCreated   = "booking_created"
	NotifyBookingConfirmed = "booking_confirmed"
	NotifyBookingRejected  = "booking_rejected"
	NotifyBookingCancelled = "booking_cancelled"
	NotifySessionReminder  = "session_reminder"
)

// NotificationData carries the template fields for an outbound notification.
type NotificationData struct {
	ProviderName string `json:"providerName"`
	BookerName   string `json:"bookerName"`
	Date         string `json:"date"` // provider-local calendar date
	Time         string `json:"time"` // provider-local start time
	MeetingLink  string `json:"meetingLink,omitempty"`
	Message      string `json:"message,omitempty"`
}

// ReminderPayload is the asynq task payload for session reminders.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
}
