// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"
)

// Date is a calendar date usable as a map key. The zero value is not a
// valid date; construct via NewDate or DateOf.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from calendar components without validating them.
// Use Valid to check the components describe a real calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates a time.Time to its calendar date in the time's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Valid reports whether the components describe a real calendar day.
// time.Date normalizes out-of-range components, so a round-trip that
// changes any component means the input was not a real date.
func (d Date) Valid() bool {
	t := d.Time()
	y, m, day := t.Date()
	return y == d.Year && m == d.Month && day == d.Day
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// String renders the date as YYYY-MM-DD, the CSV header format.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Label renders the date as an abbreviated month-day label, e.g. "Jan 02",
// used by the inline console rendering.
func (d Date) Label() string {
	return d.Time().Format("Jan 02")
}

// Observations maps a calendar date to the last known rating observed on
// that date. Keys need not be contiguous or sorted.
type Observations map[Date]int

// SeriesEntry is one day of a reconstructed rating series.
type SeriesEntry struct {
	Date   Date
	Rating int
}

// Series is a dense, date-ascending rating series: one entry per calendar
// day of the reconstruction window, no gaps.
type Series []SeriesEntry

// Last returns the final entry of the series. It is the value the export
// repeats for "today". Calling Last on an empty series is a bug.
func (s Series) Last() SeriesEntry {
	return s[len(s)-1]
}

// PlayerSeries pairs a player username with their dense rating series.
type PlayerSeries struct {
	Username string
	Series   Series
}

// Batch is an ordered collection of player series, in leaderboard order.
// A player with no retrievable history is simply absent.
type Batch []PlayerSeries
