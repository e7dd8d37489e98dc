package notification

import (
	"strings"
	"testing"

	"slotwise/models"
)

func TestRenderTemplate(t *testing.T) {
	data := models.NotificationData{
		ProviderName: "Dana",
		BookerName:   "Kim",
		Date:         "2024-06-03",
		Time:         "10:00",
		MeetingLink:  "https://meet.example.com/abc",
	}

	tests := []struct {
		kind     string
		wantBody []string
	}{
		{models.NotifyBookingCreated, []string{"Dana", "Kim", "2024-06-03 at 10:00"}},
		{models.NotifyBookingConfirmed, []string{"Kim", "https://meet.example.com/abc"}},
		{models.NotifyBookingRejected, []string{"refunded in full"}},
		{models.NotifyBookingCancelled, []string{"cancelled"}},
		{models.NotifySessionReminder, []string{"2024-06-03 at 10:00"}},
	}
	for _, tc := range tests {
		t.Run(tc.kind, func(t *testing.T) {
			subject, body, err := renderTemplate(tc.kind, data)
			if err != nil {
				t.Fatalf("renderTemplate(%s): %v", tc.kind, err)
			}
			if subject == "" {
				t.Error("empty subject")
			}
			for _, want := range tc.wantBody {
				if !strings.Contains(body, want) {
					t.Errorf("body %q does not contain %q", body, want)
				}
			}
		})
	}
}

func TestRenderTemplateUnknownKind(t *testing.T) {
	if _, _, err := renderTemplate("booking_teleported", models.NotificationData{}); err == nil {
		t.Fatal("renderTemplate accepted an unknown kind")
	}
}

func TestRenderTemplateAppendsNotes(t *testing.T) {
	data := models.NotificationData{
		ProviderName: "Dana", BookerName: "Kim",
		Date: "2024-06-03", Time: "10:00",
		Message: "Please bring the contract draft.",
	}
	_, body, err := renderTemplate(models.NotifyBookingCreated, data)
	if err != nil {
		t.Fatalf("renderTemplate: %v", err)
	}
	if !strings.HasSuffix(body, "Please bring the contract draft.") {
		t.Errorf("body %q does not end with the booker's note", body)
	}
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("no-reply@slotwise.local", "kim@example.com", "Your session is confirmed", "See you there.")
	for _, want := range []string{
		"From: no-reply@slotwise.local\r\n",
		"To: kim@example.com\r\n",
		"Subject: Your session is confirmed\r\n",
		"\r\n\r\nSee you there.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}
