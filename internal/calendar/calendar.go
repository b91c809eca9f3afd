package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// DateFormat is the date-only ISO layout used for derived dates.
const DateFormat = "2006-01-02"

// invalidDays is what DaysSince reports for an unparseable date.
const invalidDays = 999

// layouts are tried in order. Values without a zone are read as UTC.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateFormat,
}

// Parse reads an ISO-8601 date or timestamp.
func Parse(iso string) (time.Time, error) {
	s := strings.TrimSpace(iso)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, iso)
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable instant of t's UTC day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DaysSince returns whole days elapsed between iso and now.
// Unparseable dates report 999 so they read as long overdue.
func DaysSince(now time.Time, iso string) int {
	t, err := Parse(iso)
	if err != nil {
		return invalidDays
	}
	return int(now.Sub(t).Hours() / 24)
}

// MinutesSince returns whole minutes elapsed between iso and now, or 0 when
// iso does not parse.
func MinutesSince(now time.Time, iso string) int {
	t, err := Parse(iso)
	if err != nil {
		return 0
	}
	return int(now.Sub(t).Minutes())
}

// AddDays shifts iso by delta days and returns a YYYY-MM-DD date. When iso does
// not parse, today's date (per now) is returned instead.
func AddDays(iso string, delta int, now time.Time) string {
	t, err := Parse(iso)
	if err != nil {
		return now.UTC().Format(DateFormat)
	}
	return t.AddDate(0, 0, delta).Format(DateFormat)
}
