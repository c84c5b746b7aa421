package domain

import "time"

// DateLayout is the canonical calendar date form used across storage, the
// API and schedule arithmetic. Lexicographic order on these strings matches
// chronological order.
const DateLayout = "2006-01-02"

// ParseDate parses a canonical date string as UTC midnight.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.UTC)
}

// ValidDate reports whether date is a well-formed canonical date string.
func ValidDate(date string) bool {
	_, err := ParseDate(date)
	return err == nil
}

// DaysBetween returns the whole number of days from one date to another.
// Negative when to precedes from.
func DaysBetween(from, to string) (int, error) {
	f, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours() / 24), nil
}

// WeekdayOf returns the weekday of a date, 0=Sunday through 6=Saturday.
func WeekdayOf(date string) (int, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// Today returns the current date in canonical form, UTC.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}
