package scheduling

import (
	"fmt"
	"time"

	"slotwise/models"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// LocalTimeToUTC interprets the "HH:mm" wall-clock time as occurring in loc on
// the given calendar date and returns the equivalent absolute instant in UTC.
// The same wall-clock time can map to different UTC offsets on different dates
// (daylight saving), so conversion is always anchored to the date.
func LocalTimeToUTC(date, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout+" "+clockLayout, date+" "+hhmm, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid local time %q %q: %w", date, hhmm, err)
	}
	return t.UTC(), nil
}

// minutesFromMidnight parses "HH:mm" into minutes from midnight.
func minutesFromMidnight(hhmm string) (int, error) {
	t, err := time.Parse(clockLayout, hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// clockString formats minutes from midnight back to "HH:mm".
func clockString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// TileSlots tiles the local wall-clock range [startTime, endTime] on date into
// consecutive sessions of sessionMin minutes, advancing by sessionMin+bufferMin
// after each, and stops as soon as a candidate's end would pass endTime.
//
// Tiling happens in local minutes; each endpoint is then converted to UTC
// independently, so a slot straddling a DST transition still gets each
// endpoint's correct offset. A session longer than the whole range yields zero
// slots, not an error.
func TileSlots(date, startTime, endTime string, sessionMin, bufferMin int, loc *time.Location) ([]models.SlotWindow, error) {
	if sessionMin <= 0 {
		return nil, fmt.Errorf("session duration must be positive, got %d", sessionMin)
	}
	if bufferMin < 0 {
		return nil, fmt.Errorf("buffer duration must not be negative, got %d", bufferMin)
	}

	start, err := minutesFromMidnight(startTime)
	if err != nil {
		return nil, err
	}
	end, err := minutesFromMidnight(endTime)
	if err != nil {
		return nil, err
	}

	var windows []models.SlotWindow
	for s := start; s+sessionMin <= end; s += sessionMin + bufferMin {
		startUTC, err := LocalTimeToUTC(date, clockString(s), loc)
		if err != nil {
			return nil, err
		}
		endUTC, err := LocalTimeToUTC(date, clockString(s+sessionMin), loc)
		if err != nil {
			return nil, err
		}
		windows = append(windows, models.SlotWindow{StartUTC: startUTC, EndUTC: endUTC})
	}
	return windows, nil
}
