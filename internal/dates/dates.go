// Package dates provides calendar-day arithmetic anchored at local midnight.
//
// Date strings are never parsed as UTC instants: a "2024-03-01" key always
// means midnight on March 1st in the evaluation location, so users west of
// UTC do not see their start date shift back a day.
package dates

import (
	"fmt"
	"time"

	"github.com/julianstephens/recovr/internal/constants"
)

const secondsPerDay = 24 * 60 * 60

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// Parse parses a YYYY-MM-DD key and returns midnight of that day in loc.
func Parse(s string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return FromParts(t.Year(), t.Month(), t.Day(), loc), nil
}

// FromParts returns midnight of the given calendar day in loc.
// A nil loc means time.Local.
func FromParts(year int, month time.Month, d int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, month, d, 0, 0, 0, 0, loc)
}

// Midnight truncates t to the start of its calendar day in t's own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns b - a in whole calendar days. Both values are reduced
// to their calendar dates first, so DST transitions never produce 23 or 25
// hour "days". The result is negative when a is after b.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int((ub.Unix() - ua.Unix()) / secondsPerDay)
}

// StartOfMonth returns midnight on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfYear returns midnight on January 1st of t's year.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// Today returns the current date at midnight in loc. It reads the clock on
// every call; everything else in the engine takes "now" as a parameter.
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return Midnight(time.Now().In(loc))
}

// AddDays moves t by n calendar days, keeping it at midnight.
func AddDays(t time.Time, n int) time.Time {
	return Midnight(t).AddDate(0, 0, n)
}

// Key formats t as a YYYY-MM-DD date key.
func Key(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Valid reports whether s is a well-formed YYYY-MM-DD key.
func Valid(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}
