// Package clock provides the time source used by reporting and defaulting
// rules so that "now" can be pinned in tests.
package clock

import (
	"time"

	"github.com/jinzhu/now"
	"gorm.io/datatypes"
)

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f).UTC()
}

// At builds a Fixed clock for the given calendar day at midnight UTC.
func At(year int, month time.Month, day int) Fixed {
	return Fixed(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Today is the start of the current day in UTC.
func Today(c Clock) time.Time {
	return now.With(c.Now().UTC()).BeginningOfDay()
}

// Date truncates t to its calendar day in UTC.
func Date(t time.Time) datatypes.Date {
	return datatypes.Date(now.With(t.UTC()).BeginningOfDay())
}

// AddDays returns the calendar day n days after d.
func AddDays(d time.Time, n int) time.Time {
	return now.With(d.AddDate(0, 0, n)).BeginningOfDay()
}

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// FormatDate renders a date column back to YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).UTC().Format(time.DateOnly)
}
