package utils

import (
	"time"
)

// Today returns midnight of the current calendar day in loc.
func Today(loc *time.Location) time.Time {
	return DateOf(time.Now().In(loc))
}

// DateOf drops the clock part of t, keeping its location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// LastDayOfPreviousMonth returns the final calendar day of the month before t's month.
func LastDayOfPreviousMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location()).AddDate(0, 0, -1)
}

// ParseShortDate parses a YYYY-MM-DD string in loc.
func ParseShortDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(ShortDashDateLayout, value, loc)
}

// CompactDate formats t the way the statistics service and the rate cache keys expect.
func CompactDate(t time.Time) string {
	return t.Format(CompactDateLayout)
}
