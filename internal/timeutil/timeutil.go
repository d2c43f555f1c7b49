package timeutil

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current date key for the location. A nil location means UTC.
func Today(clock clockwork.Clock, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return FormatDate(clock.Now().In(loc))
}

// ShiftDate moves a date key by the given number of days.
func ShiftDate(date string, days int) (string, error) {
	parsed, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(parsed.AddDate(0, 0, days)), nil
}

// DayLabel renders a short weekday label such as "Tue, Apr 1".
func DayLabel(t time.Time) string {
	return t.Format("Mon, Jan 2")
}

// DateKeyLabel renders the label for a date key, or "" when the key is invalid.
func DateKeyLabel(date string) string {
	parsed, err := ParseDate(date)
	if err != nil {
		return ""
	}
	return DayLabel(parsed)
}

// ResolveLocation returns a location for a tz string, or nil if invalid.
func ResolveLocation(tz string) *time.Location {
	if tz == "" {
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil
	}
	return loc
}
