package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "slotwise/database/repository/booking"
	"slotwise/models"
	"slotwise/services/notification"
	"slotwise/services/payment"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

// --- booking repo ---

type fakeBookingRepo struct {
	bookings   map[string]*models.Booking
	failUpdate error
}

func newFakeBookingRepo(bookings ...*models.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		copied := *b
		r.bookings[b.ID] = &copied
	}
	return r
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking with id %s not found", id)
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) CreateIfSlotFree(ctx context.Context, booking *models.Booking) error {
	for _, existing := range r.bookings {
		if existing.ProviderID != booking.ProviderID || !existing.Blocks() {
			continue
		}
		if existing.Window().Overlaps(booking.StartUTC, booking.EndUTC) {
			return bookingRepo.ErrSlotTaken
		}
	}
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking with id %s not found", id)
	}
	if v, ok := updateDoc["status"].(string); ok {
		b.Status = v
	}
	if v, ok := updateDoc["meetingLink"].(string); ok {
		b.MeetingLink = v
	}
	if v, ok := updateDoc["refundId"].(string); ok {
		b.RefundID = v
	}
	if v, ok := updateDoc["refundStatus"].(string); ok {
		b.RefundStatus = v
	}
	if v, ok := updateDoc["cancelledBy"].(string); ok {
		b.CancelledBy = v
	}
	return nil
}

func (r *fakeBookingRepo) FindBlocking(providerID string, from, to time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID != providerID || !b.Blocks() {
			continue
		}
		if b.StartUTC.Before(to) && b.EndUTC.After(from) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByProvider(providerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByBooker(bookerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.BookerID == bookerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

// --- provider repo ---

type fakeProviderRepo struct {
	providers map[string]*models.Provider
}

func newFakeProviderRepo(providers ...*models.Provider) *fakeProviderRepo {
	r := &fakeProviderRepo{providers: make(map[string]*models.Provider)}
	for _, p := range providers {
		copied := *p
		r.providers[p.ID] = &copied
	}
	return r
}

func (r *fakeProviderRepo) GetByID(id string) (*models.Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("provider with id %s not found", id)
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProviderRepo) GetByEmail(email string) (*models.Provider, error) {
	for _, p := range r.providers {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProviderRepo) Create(p *models.Provider) error {
	copied := *p
	r.providers[p.ID] = &copied
	return nil
}

func (r *fakeProviderRepo) Update(p *models.Provider) error {
	copied := *p
	r.providers[p.ID] = &copied
	return nil
}

func (r *fakeProviderRepo) UpdateSetDocument(id string, updateDoc bson.M) error { return nil }

func (r *fakeProviderRepo) Delete(id string) error {
	delete(r.providers, id)
	return nil
}

// --- user repo ---

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		copied := *u
		r.users[u.ID] = &copied
	}
	return r
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id %s not found", id)
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Upsert(u *models.User) error {
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

// --- availability repo ---

type fakeAvailabilityRepo struct {
	rules      []models.AvailabilityRule
	exceptions []models.AvailabilityException
}

func (r *fakeAvailabilityRepo) CreateRule(rule *models.AvailabilityRule) error {
	r.rules = append(r.rules, *rule)
	return nil
}

func (r *fakeAvailabilityRepo) DeleteRule(providerID, ruleID string) error { return nil }

func (r *fakeAvailabilityRepo) ListRules(providerID string) ([]models.AvailabilityRule, error) {
	var out []models.AvailabilityRule
	for _, rule := range r.rules {
		if rule.ProviderID == providerID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeAvailabilityRepo) CreateException(exc *models.AvailabilityException) error {
	r.exceptions = append(r.exceptions, *exc)
	return nil
}

func (r *fakeAvailabilityRepo) DeleteException(providerID, excID string) error { return nil }

func (r *fakeAvailabilityRepo) ListExceptions(providerID string) ([]models.AvailabilityException, error) {
	var out []models.AvailabilityException
	for _, exc := range r.exceptions {
		if exc.ProviderID == providerID {
			out = append(out, exc)
		}
	}
	return out, nil
}

// --- conversation repo ---

type fakeConversationRepo struct {
	byBooking map[string]*models.Conversation
	created   int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{byBooking: make(map[string]*models.Conversation)}
}

func (r *fakeConversationRepo) GetByBookingID(bookingID string) (*models.Conversation, error) {
	c, ok := r.byBooking[bookingID]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *fakeConversationRepo) Create(conv *models.Conversation) error {
	copied := *conv
	r.byBooking[conv.BookingID] = &copied
	r.created++
	return nil
}

// --- refunder ---

type refundCall struct {
	paymentIntentID string
	opts            payment.RefundOptions
}

type fakeRefunder struct {
	calls    []refundCall
	attempts int
	err      error
}

func (r *fakeRefunder) Refund(ctx context.Context, paymentIntentID string, opts payment.RefundOptions) (*payment.RefundResult, error) {
	r.attempts++
	if r.err != nil {
		return nil, r.err
	}
	r.calls = append(r.calls, refundCall{paymentIntentID: paymentIntentID, opts: opts})
	return &payment.RefundResult{
		ID:     fmt.Sprintf("re_%d", len(r.calls)),
		Amount: 5000,
		Status: "succeeded",
	}, nil
}

// --- notifier ---

type sentNotification struct {
	kind string
	rcpt notification.Recipient
	data models.NotificationData
}

type fakeNotifier struct {
	sent []sentNotification
	err  error
}

func (n *fakeNotifier) Notify(ctx context.Context, kind string, rcpt notification.Recipient, data models.NotificationData) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentNotification{kind: kind, rcpt: rcpt, data: data})
	return nil
}

func (n *fakeNotifier) kinds() []string {
	var out []string
	for _, s := range n.sent {
		out = append(out, s.kind)
	}
	return out
}

// --- reminders ---

type scheduledReminder struct {
	bookingID string
	fireAt    time.Time
}

type fakeReminderScheduler struct {
	scheduled []scheduledReminder
}

func (r *fakeReminderScheduler) ScheduleReminder(bookingID string, fireAt time.Time) error {
	r.scheduled = append(r.scheduled, scheduledReminder{bookingID: bookingID, fireAt: fireAt})
	return nil
}
