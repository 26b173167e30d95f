package scheduling

import (
	"fmt"
	"time"
)

// Clock supplies "now" so time-dependent reads stay deterministic in
// tests. The status classifier and the aggregator's past-window filter
// read it; nothing else in the package depends on wall time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

const (
	clockLayout   = "15:04"
	dateLayout    = "2006-01-02"
	minutesPerDay = 24 * 60
)

// parseClock converts an "HH:MM" 24h string to minutes from midnight.
// "24:00" is accepted as the exclusive end of day.
func parseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		if s == "24:00" {
			return minutesPerDay, nil
		}
		return 0, NewValidationError("invalid time %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// formatClock renders minutes from midnight back to "HH:MM".
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// WeekStartUTC returns the Monday 00:00 UTC of the week containing t.
func WeekStartUTC(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// minutesWithinDay clips t to the UTC day starting at dayStart and
// returns its offset in minutes from that day's midnight.
func minutesWithinDay(t, dayStart time.Time) int {
	if t.Before(dayStart) {
		return 0
	}
	dayEnd := dayStart.AddDate(0, 0, 1)
	if !t.Before(dayEnd) {
		return minutesPerDay
	}
	return int(t.Sub(dayStart) / time.Minute)
}

// minuteOfDay returns t's offset from its own UTC midnight, truncated
// to the minute.
func minuteOfDay(t time.Time) int {
	t = t.UTC()
	return t.Hour()*60 + t.Minute()
}

// sameUTCDate reports whether a and b fall on the same UTC calendar day.
func sameUTCDate(a, b time.Time) bool {
	return a.UTC().Format(dateLayout) == b.UTC().Format(dateLayout)
}
