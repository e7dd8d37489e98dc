package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"slotwise/models"
)

const (
	testProviderID = "prov-1"
	testBookerID   = "user-1"
)

// Monday 2024-06-03, 08:00 UTC.
var testNow = time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)

type testEnv struct {
	svc       *DefaultBookingService
	bookings  *fakeBookingRepo
	providers *fakeProviderRepo
	users     *fakeUserRepo
	convs     *fakeConversationRepo
	avail     *fakeAvailabilityRepo
	refunder  *fakeRefunder
	notifier  *fakeNotifier
	reminders *fakeReminderScheduler
}

// newTestEnv wires the service against in-memory fakes: one provider working
// Mondays 09:00-17:00 UTC in hour-long sessions, and one known booker.
func newTestEnv(seed ...*models.Booking) *testEnv {
	env := &testEnv{
		bookings: newFakeBookingRepo(seed...),
		providers: newFakeProviderRepo(&models.Provider{
			ID:             testProviderID,
			Email:          "dana@example.com",
			Name:           "Dana",
			Timezone:       "UTC",
			SessionMinutes: 60,
			BufferMinutes:  0,
			EmailOptIn:     true,
		}),
		users: newFakeUserRepo(&models.User{
			ID:         testBookerID,
			Email:      "kim@example.com",
			Name:       "Kim",
			EmailOptIn: true,
		}),
		convs: newFakeConversationRepo(),
		avail: &fakeAvailabilityRepo{
			rules: []models.AvailabilityRule{
				{ID: "rule-1", ProviderID: testProviderID, Weekday: 1, StartTime: "09:00", EndTime: "17:00"},
			},
		},
		refunder:  &fakeRefunder{},
		notifier:  &fakeNotifier{},
		reminders: &fakeReminderScheduler{},
	}
	env.svc = &DefaultBookingService{
		Bookings:      env.bookings,
		Providers:     env.providers,
		Users:         env.users,
		Conversations: env.convs,
		Availability:  env.avail,
		Refunder:      env.refunder,
		Notifier:      env.notifier,
		Reminders:     env.reminders,
		Clock:         fakeClock{now: testNow},
	}
	return env
}

func testBooking(status string, start time.Time) *models.Booking {
	return &models.Booking{
		ID:              "bk-1",
		ProviderID:      testProviderID,
		BookerID:        testBookerID,
		StartUTC:        start,
		EndUTC:          start.Add(time.Hour),
		Status:          status,
		SessionMinutes:  60,
		PriceAtBooking:  50,
		Currency:        "usd",
		PaymentIntentID: "pi_test",
	}
}

func TestConfirm(t *testing.T) {
	start := testNow.Add(4 * time.Hour)
	env := newTestEnv(testBooking(models.BookingStatusPending, start))

	b, err := env.svc.Confirm(context.Background(), "bk-1", testProviderID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if b.Status != models.BookingStatusConfirmed {
		t.Errorf("status = %q, want confirmed", b.Status)
	}
	if !strings.Contains(b.MeetingLink, b.ID) {
		t.Errorf("meeting link %q does not reference the booking", b.MeetingLink)
	}

	stored, _ := env.bookings.GetByID("bk-1")
	if stored.Status != models.BookingStatusConfirmed {
		t.Errorf("stored status = %q, want confirmed", stored.Status)
	}
	if stored.MeetingLink != b.MeetingLink {
		t.Errorf("stored meeting link = %q, want %q", stored.MeetingLink, b.MeetingLink)
	}

	if env.convs.created != 1 {
		t.Errorf("conversations created = %d, want 1", env.convs.created)
	}
	conv, _ := env.convs.GetByBookingID("bk-1")
	if conv == nil || conv.ProviderID != testProviderID || conv.BookerID != testBookerID {
		t.Errorf("conversation = %+v, want both parties", conv)
	}

	if got := env.notifier.kinds(); len(got) != 1 || got[0] != models.NotifyBookingConfirmed {
		t.Errorf("notifications = %v, want [booking_confirmed]", got)
	}
	if env.refunder.attempts != 0 {
		t.Errorf("refund attempts = %d, want 0", env.refunder.attempts)
	}
}

func TestConfirmReusesConversation(t *testing.T) {
	start := testNow.Add(4 * time.Hour)
	env := newTestEnv(testBooking(models.BookingStatusPending, start))
	env.convs.byBooking["bk-1"] = &models.Conversation{
		ID: "conv-existing", BookingID: "bk-1",
		ProviderID: testProviderID, BookerID: testBookerID,
	}

	if _, err := env.svc.Confirm(context.Background(), "bk-1", testProviderID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if env.convs.created != 0 {
		t.Errorf("conversations created = %d, want 0 when one already exists", env.convs.created)
	}
}

func TestConfirmSchedulesReminder(t *testing.T) {
	start := testNow.Add(4 * time.Hour)
	env := newTestEnv(testBooking(models.BookingStatusPending, start))

	if _, err := env.svc.Confirm(context.Background(), "bk-1", testProviderID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if len(env.reminders.scheduled) != 1 {
		t.Fatalf("reminders scheduled = %d, want 1", len(env.reminders.scheduled))
	}
	want := start.Add(-time.Hour)
	if got := env.reminders.scheduled[0]; got.bookingID != "bk-1" || !got.fireAt.Equal(want) {
		t.Errorf("reminder = %+v, want bk-1 at %v", got, want)
	}
}

func TestConfirmGuards(t *testing.T) {
	future := testNow.Add(4 * time.Hour)
	tests := []struct {
		name     string
		booking  *models.Booking
		id       string
		caller   string
		wantCode string
	}{
		{"unknown booking", testBooking(models.BookingStatusPending, future), "missing", testProviderID, CodeNotFound},
		{"booker cannot confirm", testBooking(models.BookingStatusPending, future), "bk-1", testBookerID, CodeUnauthorized},
		{"already confirmed", testBooking(models.BookingStatusConfirmed, future), "bk-1", testProviderID, CodeInvalidTransition},
		{"rejected", testBooking(models.BookingStatusRejected, future), "bk-1", testProviderID, CodeInvalidTransition},
		{"expired pending", testBooking(models.BookingStatusPending, testNow.Add(-time.Hour)), "bk-1", testProviderID, CodeInvalidTransition},
		{"starts exactly now", testBooking(models.BookingStatusPending, testNow), "bk-1", testProviderID, CodeInvalidTransition},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(tc.booking)
			_, err := env.svc.Confirm(context.Background(), tc.id, tc.caller)
			if !HasCode(err, tc.wantCode) {
				t.Fatalf("err = %v, want code %s", err, tc.wantCode)
			}
			stored, _ := env.bookings.GetByID(tc.booking.ID)
			if stored.Status != tc.booking.Status {
				t.Errorf("stored status changed to %q", stored.Status)
			}
		})
	}
}

func TestRejectRefundsInFull(t *testing.T) {
	start := testNow.Add(4 * time.Hour)
	env := newTestEnv(testBooking(models.BookingStatusPending, start))

	b, err := env.svc.Reject(context.Background(), "bk-1", testProviderID)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if b.Status != models.BookingStatusRejected {
		t.Errorf("status = %q, want rejected", b.Status)
	}
	if len(env.refunder.calls) != 1 {
		t.Fatalf("refund calls = %d, want 1", len(env.refunder.calls))
	}
	call := env.refunder.calls[0]
	if call.paymentIntentID != "pi_test" {
		t.Errorf("refunded %q, want pi_test", call.paymentIntentID)
	}
	if !call.opts.RefundApplicationFee || !call.opts.ReverseTransfer {
		t.Errorf("refund opts = %+v, want full refund", call.opts)
	}

	stored, _ := env.bookings.GetByID("bk-1")
	if stored.RefundID == "" || stored.RefundStatus != "succeeded" {
		t.Errorf("stored refund fields = %q/%q, want populated", stored.RefundID, stored.RefundStatus)
	}
	if got := env.notifier.kinds(); len(got) != 1 || got[0] != models.NotifyBookingRejected {
		t.Errorf("notifications = %v, want [booking_rejected]", got)
	}
}

func TestRejectTwiceRefundsOnce(t *testing.T) {
	start := testNow.Add(4 * time.Hour)
	env := newTestEnv(testBooking(models.BookingStatusPending, start))

	if _, err := env.svc.Reject(context.Background(), "bk-1", testProviderID); err != nil {
		t.Fatalf("first Reject: %v", err)
	}
	_, err := env.svc.Reject(context.Background(), "bk-1", testProviderID)
	if !HasCode(err, CodeAlreadyRefunded) {
		t.Fatalf("second reject err = %v, want code alreadyRefunded", err)
	}
	if env.refunder.attempts != 1 {
		t.Errorf("refund attempts = %d, want exactly 1", env.refunder.attempts)
	}
}

func TestRejectRefundFailureKeepsPending(t *testing.T) {
	start := testNow.Add(4 * time.Hour)
	env := newTestEnv(testBooking(models.BookingStatusPending, start))
	env.refunder.err = errors.New("card network unavailable")

	_, err := env.svc.Reject(context.Background(), "bk-1", testProviderID)
	if !HasCode(err, CodeRefundFailed) {
		t.Fatalf("err = %v, want code refundFailed", err)
	}
	stored, _ := env.bookings.GetByID("bk-1")
	if stored.Status != models.BookingStatusPending {
		t.Errorf("stored status = %q, want pending after failed refund", stored.Status)
	}
	if stored.RefundID != "" {
		t.Errorf("stored refund id = %q, want empty", stored.RefundID)
	}

	// The provider can retry once the processor recovers.
	env.refunder.err = nil
	if _, err := env.svc.Reject(context.Background(), "bk-1", testProviderID); err != nil {
		t.Fatalf("retry Reject: %v", err)
	}
}

func TestRejectStatusWriteFailure(t *testing.T) {
	start := testNow.Add(4 * time.Hour)
	env := newTestEnv(testBooking(models.BookingStatusPending, start))
	env.bookings.failUpdate = errors.New("primary stepped down")

	_, err := env.svc.Reject(context.Background(), "bk-1", testProviderID)
	if err == nil {
		t.Fatal("Reject succeeded despite failed status write")
	}
	if env.refunder.attempts != 1 {
		t.Errorf("refund attempts = %d, want 1", env.refunder.attempts)
	}
}

func TestRejectGuards(t *testing.T) {
	future := testNow.Add(4 * time.Hour)
	tests := []struct {
		name     string
		booking  *models.Booking
		caller   string
		wantCode string
	}{
		{"booker cannot reject", testBooking(models.BookingStatusPending, future), testBookerID, CodeUnauthorized},
		{"confirmed", testBooking(models.BookingStatusConfirmed, future), testProviderID, CodeInvalidTransition},
		{"cancelled", testBooking(models.BookingStatusCancelled, future), testProviderID, CodeInvalidTransition},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(tc.booking)
			_, err := env.svc.Reject(context.Background(), "bk-1", tc.caller)
			if !HasCode(err, tc.wantCode) {
				t.Fatalf("err = %v, want code %s", err, tc.wantCode)
			}
			if env.refunder.attempts != 0 {
				t.Errorf("refund attempts = %d, want 0", env.refunder.attempts)
			}
		})
	}
}

// Pending bookings whose start has passed can still be rejected so the booker
// gets their money back; only confirmation is closed off.
func TestRejectExpiredPending(t *testing.T) {
	env := newTestEnv(testBooking(models.BookingStatusPending, testNow.Add(-time.Hour)))

	b, err := env.svc.Reject(context.Background(), "bk-1", testProviderID)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if b.Status != models.BookingStatusRejected {
		t.Errorf("status = %q, want rejected", b.Status)
	}
	if env.refunder.attempts != 1 {
		t.Errorf("refund attempts = %d, want 1", env.refunder.attempts)
	}
}

func TestCancelPartialRefund(t *testing.T) {
	start := testNow.Add(4 * time.Hour)
	env := newTestEnv(testBooking(models.BookingStatusConfirmed, start))

	b, err := env.svc.Cancel(context.Background(), "bk-1", testBookerID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if b.Status != models.BookingStatusCancelled {
		t.Errorf("status = %q, want cancelled", b.Status)
	}
	if b.CancelledBy != models.CancelledByBooker {
		t.Errorf("cancelledBy = %q, want booker", b.CancelledBy)
	}
	if len(env.refunder.calls) != 1 {
		t.Fatalf("refund calls = %d, want 1", len(env.refunder.calls))
	}
	opts := env.refunder.calls[0].opts
	if opts.RefundApplicationFee || !opts.ReverseTransfer {
		t.Errorf("refund opts = %+v, want transfer reversed and fee kept", opts)
	}
	if got := env.notifier.kinds(); len(got) != 1 || got[0] != models.NotifyBookingCancelled {
		t.Errorf("notifications = %v, want [booking_cancelled]", got)
	}
}

func TestCancelCutoff(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		wantErr bool
	}{
		{"61 minutes out", testNow.Add(61 * time.Minute), false},
		{"exactly 60 minutes out", testNow.Add(60 * time.Minute), true},
		{"59 minutes out", testNow.Add(59 * time.Minute), true},
		{"already started", testNow.Add(-time.Minute), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(testBooking(models.BookingStatusConfirmed, tc.start))
			_, err := env.svc.Cancel(context.Background(), "bk-1", testBookerID)
			if tc.wantErr {
				if !HasCode(err, CodeCancellationWindowClosed) {
					t.Fatalf("err = %v, want code cancellationWindowClosed", err)
				}
				if env.refunder.attempts != 0 {
					t.Errorf("refund attempts = %d, want 0", env.refunder.attempts)
				}
				return
			}
			if err != nil {
				t.Fatalf("Cancel: %v", err)
			}
		})
	}
}

func TestCancelGuards(t *testing.T) {
	future := testNow.Add(4 * time.Hour)
	tests := []struct {
		name     string
		booking  *models.Booking
		caller   string
		wantCode string
	}{
		{"provider cannot cancel", testBooking(models.BookingStatusConfirmed, future), testProviderID, CodeUnauthorized},
		{"pending", testBooking(models.BookingStatusPending, future), testBookerID, CodeInvalidTransition},
		{"rejected", testBooking(models.BookingStatusRejected, future), testBookerID, CodeInvalidTransition},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(tc.booking)
			_, err := env.svc.Cancel(context.Background(), "bk-1", tc.caller)
			if !HasCode(err, tc.wantCode) {
				t.Fatalf("err = %v, want code %s", err, tc.wantCode)
			}
			if env.refunder.attempts != 0 {
				t.Errorf("refund attempts = %d, want 0", env.refunder.attempts)
			}
		})
	}
}

func TestCancelTwiceRefundsOnce(t *testing.T) {
	start := testNow.Add(4 * time.Hour)
	env := newTestEnv(testBooking(models.BookingStatusConfirmed, start))

	if _, err := env.svc.Cancel(context.Background(), "bk-1", testBookerID); err != nil {
		t.Fatalf("first Cancel: %v", err)
	}
	_, err := env.svc.Cancel(context.Background(), "bk-1", testBookerID)
	if !HasCode(err, CodeAlreadyRefunded) {
		t.Fatalf("second cancel err = %v, want code alreadyRefunded", err)
	}
	if env.refunder.attempts != 1 {
		t.Errorf("refund attempts = %d, want exactly 1", env.refunder.attempts)
	}
}

func TestCreateFromPayment(t *testing.T) {
	env := newTestEnv()
	in := CreateBookingInput{
		ProviderID:      testProviderID,
		BookerID:        testBookerID,
		BookerEmail:     "kim@example.com",
		BookerName:      "Kim",
		StartUTC:        testNow.Add(2 * time.Hour), // 10:00, on the hour grid
		SessionMinutes:  60,
		Price:           50,
		Currency:        "usd",
		PaymentIntentID: "pi_new",
	}

	b, err := env.svc.CreateFromPayment(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateFromPayment: %v", err)
	}
	if b.Status != models.BookingStatusPending {
		t.Errorf("status = %q, want pending", b.Status)
	}
	if !b.EndUTC.Equal(b.StartUTC.Add(time.Hour)) {
		t.Errorf("end = %v, want one hour after %v", b.EndUTC, b.StartUTC)
	}

	stored, err := env.bookings.GetByID(b.ID)
	if err != nil {
		t.Fatalf("booking was not persisted: %v", err)
	}
	if stored.PaymentIntentID != "pi_new" {
		t.Errorf("stored payment intent = %q, want pi_new", stored.PaymentIntentID)
	}
	if got := env.notifier.kinds(); len(got) != 1 || got[0] != models.NotifyBookingCreated {
		t.Errorf("notifications = %v, want [booking_created]", got)
	}
	if env.refunder.attempts != 0 {
		t.Errorf("refund attempts = %d, want 0", env.refunder.attempts)
	}
}

func TestCreateFromPaymentSlotTaken(t *testing.T) {
	taken := testBooking(models.BookingStatusPending, testNow.Add(2*time.Hour))
	env := newTestEnv(taken)

	in := CreateBookingInput{
		ProviderID:      testProviderID,
		BookerID:        "user-2",
		BookerEmail:     "lee@example.com",
		BookerName:      "Lee",
		StartUTC:        taken.StartUTC,
		SessionMinutes:  60,
		Price:           50,
		Currency:        "usd",
		PaymentIntentID: "pi_race",
	}

	_, err := env.svc.CreateFromPayment(context.Background(), in)
	if !HasCode(err, CodeSlotUnavailable) {
		t.Fatalf("err = %v, want code slotUnavailable", err)
	}
	if len(env.refunder.calls) != 1 {
		t.Fatalf("refund calls = %d, want 1", len(env.refunder.calls))
	}
	call := env.refunder.calls[0]
	if call.paymentIntentID != "pi_race" {
		t.Errorf("refunded %q, want pi_race", call.paymentIntentID)
	}
	if !call.opts.RefundApplicationFee || !call.opts.ReverseTransfer {
		t.Errorf("refund opts = %+v, want full refund", call.opts)
	}
}

// A released slot does not block: rejecting the holder frees the window for
// the next capture.
func TestCreateFromPaymentAfterRejection(t *testing.T) {
	released := testBooking(models.BookingStatusRejected, testNow.Add(2*time.Hour))
	env := newTestEnv(released)

	in := CreateBookingInput{
		ProviderID:      testProviderID,
		BookerID:        "user-2",
		BookerEmail:     "lee@example.com",
		BookerName:      "Lee",
		StartUTC:        released.StartUTC,
		SessionMinutes:  60,
		Price:           50,
		Currency:        "usd",
		PaymentIntentID: "pi_retry",
	}

	if _, err := env.svc.CreateFromPayment(context.Background(), in); err != nil {
		t.Fatalf("CreateFromPayment: %v", err)
	}
}

func TestCreateFromPaymentRejectsIllegitimateSlots(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
	}{
		{"off the slot grid", testNow.Add(2*time.Hour + 30*time.Minute)},
		{"outside working hours", testNow.Add(11 * time.Hour)}, // 19:00
		{"in the past", testNow.Add(-2 * time.Hour)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv()
			in := CreateBookingInput{
				ProviderID:      testProviderID,
				BookerID:        testBookerID,
				BookerEmail:     "kim@example.com",
				BookerName:      "Kim",
				StartUTC:        tc.start,
				SessionMinutes:  60,
				Price:           50,
				Currency:        "usd",
				PaymentIntentID: "pi_bad",
			}
			_, err := env.svc.CreateFromPayment(context.Background(), in)
			if !HasCode(err, CodeSlotUnavailable) {
				t.Fatalf("err = %v, want code slotUnavailable", err)
			}
			if env.refunder.attempts != 1 {
				t.Errorf("refund attempts = %d, want the capture refunded", env.refunder.attempts)
			}
		})
	}
}

func TestAvailableSlots(t *testing.T) {
	// 10:00 is booked; 09:00 is in the past relative to 09:30.
	booked := testBooking(models.BookingStatusConfirmed, testNow.Add(2*time.Hour))
	env := newTestEnv(booked)
	env.svc.Clock = fakeClock{now: time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)}

	slots, err := env.svc.AvailableSlots(context.Background(), testProviderID, "2024-06-03")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	// 11:00 through 16:00 starts remain.
	if len(slots) != 6 {
		t.Fatalf("len(slots) = %d, want 6: %v", len(slots), slots)
	}
	for _, s := range slots {
		if s.Overlaps(booked.StartUTC, booked.EndUTC) {
			t.Errorf("slot %v overlaps the confirmed booking", s)
		}
		if !s.StartUTC.After(env.svc.Clock.Now()) {
			t.Errorf("slot %v is not in the future", s)
		}
	}
}

func TestAvailableSlotsExclusionDay(t *testing.T) {
	env := newTestEnv()
	env.avail.exceptions = append(env.avail.exceptions, models.AvailabilityException{
		ID: "exc-1", ProviderID: testProviderID, Date: "2024-06-03",
	})

	slots, err := env.svc.AvailableSlots(context.Background(), testProviderID, "2024-06-03")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("len(slots) = %d, want 0 on an excluded day", len(slots))
	}
}

// Full pass through the state machine: capture, confirm, cancel.
func TestLifecycleEndToEnd(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	b, err := env.svc.CreateFromPayment(ctx, CreateBookingInput{
		ProviderID:      testProviderID,
		BookerID:        testBookerID,
		BookerEmail:     "kim@example.com",
		BookerName:      "Kim",
		StartUTC:        testNow.Add(6 * time.Hour), // 14:00
		SessionMinutes:  60,
		Price:           50,
		Currency:        "usd",
		PaymentIntentID: "pi_e2e",
	})
	if err != nil {
		t.Fatalf("CreateFromPayment: %v", err)
	}

	if _, err := env.svc.Confirm(ctx, b.ID, testProviderID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if _, err := env.svc.Cancel(ctx, b.ID, testBookerID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	stored, _ := env.bookings.GetByID(b.ID)
	if stored.Status != models.BookingStatusCancelled {
		t.Errorf("final status = %q, want cancelled", stored.Status)
	}
	if env.refunder.attempts != 1 {
		t.Errorf("refund attempts = %d, want 1", env.refunder.attempts)
	}
	if got := env.notifier.kinds(); len(got) != 3 {
		t.Errorf("notifications = %v, want created/confirmed/cancelled", got)
	}

	// The cancelled window is immediately rebookable.
	if _, err := env.svc.CreateFromPayment(ctx, CreateBookingInput{
		ProviderID:      testProviderID,
		BookerID:        "user-2",
		BookerEmail:     "lee@example.com",
		BookerName:      "Lee",
		StartUTC:        b.StartUTC,
		SessionMinutes:  60,
		Price:           50,
		Currency:        "usd",
		PaymentIntentID: "pi_e2e_2",
	}); err != nil {
		t.Fatalf("rebooking a cancelled slot: %v", err)
	}
}
