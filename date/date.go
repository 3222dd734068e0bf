// Package date implements dates of the proleptic Gregorian calendar.
//
// A Date is valid arbitrarily far before or after 1 January 1970 within the
// int32 year range. Every Date converts losslessly to a signed linear day
// count (day 0 = 1970-01-01) and all comparison and arithmetic happens on
// that count.
//
// Arithmetic saturates at Min and Max instead of failing or wrapping.
package date

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tartampluch/go-dateandtime/internal/config"
	"github.com/tartampluch/go-dateandtime/sysclock"
)

// ErrInvalidDate is returned when day, month and year do not form a Gregorian
// calendar date, or a string does not hold one.
var ErrInvalidDate = errors.New(config.ErrInvalidDate)

// Supported year range.
const (
	MinYear = math.MinInt32
	MaxYear = math.MaxInt32
)

var (
	// Min is the earliest representable date, 1 January MinYear.
	Min = Date{day: 1, month: time.January, year: MinYear}
	// Max is the latest representable date, 31 December MaxYear.
	Max = Date{day: 31, month: time.December, year: MaxYear}

	minDays = Min.Days()
	maxDays = Max.Days()
)

// Date is an immutable calendar date. The zero value is not a valid date.
// Dates are comparable with ==.
type Date struct {
	day   uint8
	month time.Month
	year  int32
}

// New returns the date day.month.year.
// It fails with ErrInvalidDate when month is not 1-12, day does not exist in
// that month (29 February in a common year included), or year is outside
// [MinYear, MaxYear].
func New(day int, month time.Month, year int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, fmt.Errorf("%w: %d: %s", ErrInvalidDate, year, config.ErrYearRange)
	}
	if dim := DaysInMonth(month, year); dim == 0 || day < 1 || day > dim {
		return Date{}, fmt.Errorf("%w: %02d.%02d.%d", ErrInvalidDate, day, int(month), year)
	}
	return Date{day: uint8(day), month: month, year: int32(year)}, nil
}

// MustNew is like New but panics on invalid input. Intended for constants and
// tests.
func MustNew(day int, month time.Month, year int) Date {
	d, err := New(day, month, year)
	if err != nil {
		panic(err)
	}
	return d
}

// FromDays returns the date n days after 1970-01-01 (before it when n is
// negative), saturated to [Min, Max].
func FromDays(n int64) Date {
	switch {
	case n <= minDays:
		return Min
	case n >= maxDays:
		return Max
	}
	y, m, d := civilFromDays(n)
	return Date{day: uint8(d), month: time.Month(m), year: int32(y)}
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) (Date, error) {
	y, m, d := t.Date()
	return New(d, m, y)
}

// FromSystemDate returns the current local date reported by p.
// Failures of p, and snapshots that do not hold a valid date, are reported
// as sysclock.ErrClockUnavailable.
func FromSystemDate(p sysclock.Provider) (Date, error) {
	snap, err := sysclock.Query(p)
	if err != nil {
		return Date{}, err
	}
	return FromSnapshot(snap)
}

// FromSnapshot extracts the date part of a clock snapshot.
func FromSnapshot(snap sysclock.Snapshot) (Date, error) {
	d, err := New(snap.Day, time.Month(snap.Month), snap.Year)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %s: %w", sysclock.ErrClockUnavailable, config.ErrSnapshotInvalid, err)
	}
	return d, nil
}

// Day returns the day of the month, 1-31.
func (d Date) Day() int { return int(d.day) }

// Month returns the month of the year.
func (d Date) Month() time.Month { return d.month }

// Year returns the year; it may be zero or negative.
func (d Date) Year() int { return int(d.year) }

// Days returns the linear day count: the number of days since 1970-01-01.
func (d Date) Days() int64 {
	return daysFromCivil(int64(d.year), int64(d.month), int64(d.day))
}

// In returns midnight at the start of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year(), d.month, d.Day(), 0, 0, 0, 0, loc)
}

// IsLeapYear reports whether d falls in a leap year.
func (d Date) IsLeapYear() bool { return IsLeapYear(d.Year()) }

// DiffInDays returns d minus other in days: positive when d is later.
func (d Date) DiffInDays(other Date) int64 {
	return d.Days() - other.Days()
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int64) Date {
	return FromDays(addSat(d.Days(), n))
}

// SubDays returns the date n days before d.
func (d Date) SubDays(n int64) Date {
	if n == math.MinInt64 {
		return Max
	}
	return d.AddDays(-n)
}

// AddMonths returns the date n calendar months after d. When the target month
// is shorter, the day is clamped to its last day (31 Jan + 1 month is the last
// day of February).
func (d Date) AddMonths(n int64) Date {
	total := addSat(int64(d.year)*config.MonthsInYear+int64(d.month-1), n)
	return clamp(floorDiv(total, config.MonthsInYear), time.Month(floorMod(total, config.MonthsInYear)+1), d.Day())
}

// AddYears returns the date n years after d. 29 February becomes 28 February
// when the target year is a common year.
func (d Date) AddYears(n int64) Date {
	return clamp(addSat(int64(d.year), n), d.month, d.Day())
}

// clamp builds a date, pinning the day to the end of the month and the
// result to [Min, Max].
func clamp(year int64, month time.Month, day int) Date {
	switch {
	case year < MinYear:
		return Min
	case year > MaxYear:
		return Max
	}
	if dim := DaysInMonth(month, int(year)); day > dim {
		day = dim
	}
	return Date{day: uint8(day), month: month, year: int32(year)}
}

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool { return d == other }

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool { return d.Days() < other.Days() }

// After reports whether d is later than other.
func (d Date) After(other Date) bool { return d.Days() > other.Days() }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other. It can be passed to slices.SortFunc.
func (d Date) Compare(other Date) int {
	a, b := d.Days(), other.Days()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	// 1970-01-01 was a Thursday.
	return time.Weekday(floorMod(d.Days()+int64(time.Thursday), config.DaysPerWeek))
}

// YearDay returns the day of the year, 1-365 or 1-366 in leap years.
func (d Date) YearDay() int {
	return int(d.Days()-daysFromCivil(int64(d.year), 1, 1)) + 1
}

// ISOWeek returns the ISO 8601 year and week number. Week 1 is the week
// containing the year's first Thursday, so early January may belong to the
// last week of the previous year and late December to week 1 of the next.
func (d Date) ISOWeek() (year, week int) {
	days := d.Days()
	isoWeekday := floorMod(days+3, config.DaysPerWeek) + 1 // Monday = 1
	thursday := days + 4 - isoWeekday
	y, _, _ := civilFromDays(thursday)
	week = int((thursday-daysFromCivil(y, 1, 1))/config.DaysPerWeek) + 1
	return int(y), week
}

// Week returns the week of the year, 0-53, where weeks start on firstDay and
// the days before the year's first firstDay belong to week 0. Sunday gives
// strftime's %U, Monday gives %W.
func (d Date) Week(firstDay time.Weekday) int {
	offset := floorMod(int64(d.Weekday())-int64(firstDay), config.DaysPerWeek)
	return int((int64(d.YearDay()-1) + config.DaysPerWeek - offset) / config.DaysPerWeek)
}
