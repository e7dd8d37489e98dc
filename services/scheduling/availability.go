package scheduling

import (
	"fmt"
	"time"

	"slotwise/models"
)

// CandidateSlots produces the raw bookable windows for one calendar date from
// a provider's recurring rules and exclusions.
//
// An exclusion matching the date suppresses every recurring rule for that date
// unconditionally. Otherwise every rule whose weekday equals the date's
// weekday in the provider's timezone is tiled, and the results concatenated.
// A provider may keep several blocks on the same weekday (say morning and
// afternoon); all of them are honored. Candidates are not deduplicated here —
// overlap between candidates is resolved at booking time against individual
// bookings.
func CandidateSlots(
	rules []models.AvailabilityRule,
	exclusions []models.AvailabilityException,
	date string,
	sessionMin, bufferMin int,
	loc *time.Location,
) ([]models.SlotWindow, error) {
	for _, ex := range exclusions {
		if ex.Date == date {
			return nil, nil
		}
	}

	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	weekday := int(day.Weekday())

	var candidates []models.SlotWindow
	for _, rule := range rules {
		if rule.Weekday != weekday {
			continue
		}
		windows, err := TileSlots(date, rule.StartTime, rule.EndTime, sessionMin, bufferMin, loc)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
		}
		candidates = append(candidates, windows...)
	}
	return candidates, nil
}
