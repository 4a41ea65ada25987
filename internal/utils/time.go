package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/dawnlock/internal/constants"
)

// DateKey returns the date key (YYYY-MM-DD) for a timestamp using its own
// location. Callers pass local-time values; keys are never UTC-normalized, so
// a completion at 23:30 local stays on the local day.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey parses a date key back into midnight of that day in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ParseClock parses a wall-clock string (HH:MM) into minutes since midnight.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidClock reports whether the string matches the standard HH:MM format.
func ValidClock(clock string) bool {
	_, err := ParseClock(clock)
	return err == nil
}

// MinutesOfDay returns the minutes elapsed since local midnight for t.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// IsWithinWindow reports whether t falls inside the [start, end] wall-clock
// window, inclusive at both ends. Malformed bounds and inverted windows
// (start after end) report false; overnight windows are not supported.
func IsWithinWindow(t time.Time, start, end string) bool {
	startMin, err := ParseClock(start)
	if err != nil {
		return false
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return false
	}
	if startMin > endMin {
		return false
	}
	m := MinutesOfDay(t)
	return m >= startMin && m <= endMin
}

// Weekday returns the weekday number for t, 0=Sunday through 6=Saturday.
func Weekday(t time.Time) int {
	return int(t.Weekday())
}

// AtClock returns the instant on t's calendar day at the given wall-clock
// time, in t's location.
func AtClock(t time.Time, clock string) (time.Time, error) {
	c, err := time.Parse(constants.TimeFormat, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour(), c.Minute(), 0, 0, t.Location()), nil
}

// Midnight returns local midnight of t's calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsNextDay reports whether date key b is exactly one calendar day after date
// key a. The comparison is calendar-aware rather than a fixed millisecond
// delta, so streaks survive DST transitions.
func IsNextDay(a, b string, loc *time.Location) bool {
	dayA, err := ParseDateKey(a, loc)
	if err != nil {
		return false
	}
	return DateKey(dayA.AddDate(0, 0, 1)) == b
}

// CalculateStreak counts consecutive daily completions ending today. Dates
// must be ordered most-recent-first; the walk expects element N to equal
// today minus N days and stops at the first mismatch. A list that does not
// begin with today yields 0.
func CalculateStreak(dates []string, today time.Time) int {
	expected := Midnight(today)
	streak := 0
	for _, date := range dates {
		if date != DateKey(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// FormatDuration renders a duration as "Xs", "Xm Ys", or "Xh Ym".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := int(d / time.Second)
	switch {
	case totalSeconds < 60:
		return fmt.Sprintf("%ds", totalSeconds)
	case totalSeconds < 3600:
		return fmt.Sprintf("%dm %ds", totalSeconds/60, totalSeconds%60)
	default:
		return fmt.Sprintf("%dh %dm", totalSeconds/3600, (totalSeconds%3600)/60)
	}
}
