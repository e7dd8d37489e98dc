package notification

import (
	"fmt"

	"slotwise/models"
)

// renderTemplate builds the subject and body for a notification kind.
func renderTemplate(kind string, data models.NotificationData) (subject, body string, err error) {
	when := fmt.Sprintf("%s at %s", data.Date, data.Time)

	switch kind {
	case models.NotifyBookingCreated:
		subject = "New booking request"
		body = fmt.Sprintf(
			"Hi %s,\n\n%s has booked a session with you on %s.\nThe booking is awaiting your confirmation.",
			data.ProviderName, data.BookerName, when)

	case models.NotifyBookingConfirmed:
		subject = "Your session is confirmed"
		body = fmt.Sprintf(
			"Hi %s,\n\n%s confirmed your session on %s.\nMeeting link: %s",
			data.BookerName, data.ProviderName, when, data.MeetingLink)

	case models.NotifyBookingRejected:
		subject = "Your booking was declined"
		body = fmt.Sprintf(
			"Hi %s,\n\n%s was unable to accept your session on %s.\nYour payment has been refunded in full.",
			data.BookerName, data.ProviderName, when)

	case models.NotifyBookingCancelled:
		subject = "A session was cancelled"
		body = fmt.Sprintf(
			"Hi %s,\n\n%s cancelled the session on %s.",
			data.ProviderName, data.BookerName, when)

	case models.NotifySessionReminder:
		subject = "Upcoming session reminder"
		body = fmt.Sprintf(
			"Your session between %s and %s starts on %s.",
			data.ProviderName, data.BookerName, when)

	default:
		return "", "", fmt.Errorf("unknown notification kind %q", kind)
	}

	if data.Message != "" {
		body += "\n\n" + data.Message
	}
	return subject, body, nil
}
