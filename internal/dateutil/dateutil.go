// Package dateutil does calendar arithmetic on YYYY-MM-DD strings.
//
// Dates are anchored at noon UTC before any arithmetic so that adding or
// subtracting days never crosses a day boundary because of DST or offsets.
package dateutil

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the only accepted date format.
const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Parse returns the date at 12:00 UTC.
func Parse(date string) (time.Time, error) {
	if len(date) != len(Layout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	t, err := time.Parse(Layout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), nil
}

// Valid reports whether date is a well-formed calendar date.
func Valid(date string) bool {
	_, err := Parse(date)
	return err == nil
}

// Format renders the calendar date of t in t's own location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// AddDays shifts date by n days (n may be negative).
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// DayBefore returns the date immediately preceding date.
func DayBefore(date string) (string, error) {
	return AddDays(date, -1)
}

// Weekday returns 0 (Sunday) through 6 (Saturday) for date.
func Weekday(date string) (int, error) {
	t, err := Parse(date)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// InclusiveDays counts the days from start to end, both included.
// It returns 0 when end is before start.
func InclusiveDays(start, end string) (int, error) {
	s, err := Parse(start)
	if err != nil {
		return 0, err
	}
	e, err := Parse(end)
	if err != nil {
		return 0, err
	}
	if e.Before(s) {
		return 0, nil
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// Range lists every date from start to end inclusive, ascending.
func Range(start, end string) ([]string, error) {
	s, err := Parse(start)
	if err != nil {
		return nil, err
	}
	e, err := Parse(end)
	if err != nil {
		return nil, err
	}

	dates := []string{}
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		dates = append(dates, Format(d))
	}
	return dates, nil
}
