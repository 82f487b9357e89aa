// Package datetime provides date parsing and calendar-month arithmetic.
package datetime

import (
	"time"

	"github.com/Gms006/emprestimos/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and is also the output
	// date format.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// AddMonths advances a date by the given number of whole calendar months.
// When the original day-of-month does not exist in the target month the
// result is clamped to the target month's last valid day, e.g.
// 2024-01-31 + 1 month = 2024-02-29. Both schedule due dates and the
// classification cutoff use this policy so they never diverge near
// month-end start dates.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := lastDayOfMonth(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date, using the AddMonths clamp policy.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return AddMonths(t, months).Format(layout), nil
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
