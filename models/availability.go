package models

import "time"

// AvailabilityRule is a recurring weekly availability block, expressed in the
// provider's local wall-clock time. It repeats every week indefinitely.
// Rules are created and deleted whole; there is no update-in-place.
type AvailabilityRule struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Weekday    int       `bson:"weekday" json:"weekday"`     // 0=Sunday … 6=Saturday
	StartTime  string    `bson:"startTime" json:"startTime"` // "HH:mm", local
	EndTime    string    `bson:"endTime" json:"endTime"`     // "HH:mm", local; must be after StartTime
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// AvailabilityException removes all availability on a single calendar date,
// overriding every recurring rule for that date.
type AvailabilityException struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Date       string    `bson:"date" json:"date"` // "2006-01-02", provider-local calendar date
	Reason     string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// SlotWindow is a bookable interval in UTC. Windows are half-open:
// [StartUTC, EndUTC).
type SlotWindow struct {
	StartUTC time.Time `bson:"startUtc" json:"startUtc"`
	EndUTC   time.Time `bson:"endUtc" json:"endUtc"`
}

// Overlaps reports whether two half-open windows intersect. Back-to-back
// windows sharing an endpoint do not overlap.
func (w SlotWindow) Overlaps(start, end time.Time) bool {
	return start.Before(w.EndUTC) && w.StartUTC.Before(end)
}
