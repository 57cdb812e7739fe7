package dateutil

import (
	"fmt"
	"time"
)

// Layout is the calendar-day format used throughout the document.
const Layout = "2006-01-02"

// Day is a calendar day in YYYY-MM-DD form, independent of time zone.
type Day struct {
	t time.Time
}

// NewDay builds a Day from calendar components.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a timestamp to its calendar day.
func FromTime(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

// Parse reads a YYYY-MM-DD string into a Day.
func Parse(value string) (Day, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return Day{}, fmt.Errorf("invalid calendar day %q: %w", value, err)
	}
	return Day{t: t}, nil
}

// String renders the day as YYYY-MM-DD.
func (d Day) String() string {
	return d.t.Format(Layout)
}

// Time exposes the underlying midnight-UTC timestamp.
func (d Day) Time() time.Time {
	return d.t
}

// Weekday returns the day of week (Sunday = 0).
func (d Day) Weekday() time.Weekday {
	return d.t.Weekday()
}

// AddDays returns the day shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

// Before reports whether d falls strictly before other.
func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

// After reports whether d falls strictly after other.
func (d Day) After(other Day) bool {
	return d.t.After(other.t)
}

// IsWeekend reports whether the day is a Saturday or Sunday.
func (d Day) IsWeekend() bool {
	wd := d.t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// StartOfWeek returns the day beginning the week containing d under the given
// convention (0 = Sunday, 1 = Monday).
func StartOfWeek(d Day, weekStartsOn int) Day {
	diff := (int(d.Weekday()) + 7 - weekStartsOn) % 7
	return d.AddDays(-diff)
}

// EndOfWeek returns the last day of the week containing d.
func EndOfWeek(d Day, weekStartsOn int) Day {
	return StartOfWeek(d, weekStartsOn).AddDays(6)
}

// MonthMatrix produces the full-week calendar grid covering the given month:
// an ordered sequence of 7-day rows from the start of the week containing the
// first of the month through the end of the week containing the last. Rows may
// include days from the adjacent months.
func MonthMatrix(year int, month time.Month, weekStartsOn int) [][]Day {
	first := NewDay(year, month, 1)
	last := first.AddDays(daysIn(year, month) - 1)

	gridStart := StartOfWeek(first, weekStartsOn)
	gridEnd := EndOfWeek(last, weekStartsOn)

	var weeks [][]Day
	for cur := gridStart; !cur.After(gridEnd); cur = cur.AddDays(7) {
		row := make([]Day, 7)
		for i := range row {
			row[i] = cur.AddDays(i)
		}
		weeks = append(weeks, row)
	}
	return weeks
}

// Range returns every day in [start, end] inclusive, oldest first. An inverted
// range yields nil.
func Range(start, end Day) []Day {
	if start.After(end) {
		return nil
	}
	var days []Day
	for cur := start; !cur.After(end); cur = cur.AddDays(1) {
		days = append(days, cur)
	}
	return days
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
