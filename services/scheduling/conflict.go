package scheduling

import (
	"time"

	"slotwise/models"
)

// FilterConflicts returns the candidates that are still bookable: in the
// future and not colliding with any blocking booking of the same provider.
//
// Intervals are half-open, so a candidate starting exactly when a booking ends
// (or vice versa) does not conflict. Rejected and cancelled bookings never
// block — their time is released immediately. Callers are expected to pass
// only the provider's own bookings; a booker's bookings with other providers
// are irrelevant here.
func FilterConflicts(candidates []models.SlotWindow, bookings []models.Booking, now time.Time) []models.SlotWindow {
	var free []models.SlotWindow
	for _, cand := range candidates {
		if !cand.StartUTC.After(now) {
			continue
		}
		if HasConflict(cand, bookings) {
			continue
		}
		free = append(free, cand)
	}
	return free
}

// HasConflict reports whether the window overlaps any blocking booking.
func HasConflict(window models.SlotWindow, bookings []models.Booking) bool {
	for _, b := range bookings {
		if !b.Blocks() {
			continue
		}
		if window.Overlaps(b.StartUTC, b.EndUTC) {
			return true
		}
	}
	return false
}
