package date

import (
	"fmt"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// CompactFormat is the format used on the wire by the market data provider (20250701).
const CompactFormat = "20060102"

// Date represent a date with no lower than day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// Year returns current year.
func (d Date) Year() int { return d.y }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Compact formats the date as YYYYMMDD.
func (d Date) Compact() string { return d.time().Format(CompactFormat) }

// Parse parses a Date from a string. It is lenient and accepts formats like "2025-7-1"
// and the compact "20250701".
func Parse(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if len(str) == len(CompactFormat) && !strings.Contains(str, "-") {
		return ParseCompact(str)
	}
	on, err := time.Parse(readDateFormat, str)
	// We use a slightly more permisive format for read, to support 2025-7-1 instead of 2025-07-01
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// ParseCompact parses a YYYYMMDD date.
func ParseCompact(str string) (Date, error) {
	on, err := time.Parse(CompactFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, CompactFormat, err)
	}
	return New(on.Date()), nil
}
