package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// CalendarDay returns the calendar day of t as observed in loc, expressed as
// midnight UTC. A nil loc keeps t's own location.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from a to b. Both must be day values
// produced by CalendarDay.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
