package date

import (
	"math"
	"time"

	"github.com/tartampluch/go-dateandtime/internal/config"
)

// The conversions below are Howard Hinnant's days_from_civil and
// civil_from_days. Years are shifted so that March is the first month of the
// computational year, which puts the leap day at the end. Eras of 400 years
// are selected with floor division so negative years need no special case.

// daysFromCivil returns the number of days from 1970-01-01 to y-m-d.
func daysFromCivil(y, m, d int64) int64 {
	if m <= 2 {
		y--
	}
	era := floorDiv(y, config.YearsPerEra)
	yoe := y - era*config.YearsPerEra // [0, 399]
	mp := (m + 9) % config.MonthsInYear
	doy := (153*mp+2)/5 + d - 1            // [0, 365]
	doe := yoe*365 + yoe/4 - yoe/100 + doy // [0, 146096]
	return era*config.DaysPerEra + doe - config.DaysFromCivilZeroToEpoch
}

// civilFromDays is the inverse of daysFromCivil.
func civilFromDays(z int64) (y, m, d int64) {
	z += config.DaysFromCivilZeroToEpoch
	era := floorDiv(z, config.DaysPerEra)
	doe := z - era*config.DaysPerEra                       // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365 // [0, 399]
	doy := doe - (365*yoe + yoe/4 - yoe/100)               // [0, 365]
	mp := (5*doy + 2) / 153                                // [0, 11]
	d = doy - (153*mp+2)/5 + 1
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	y = yoe + era*config.YearsPerEra
	if m <= 2 {
		y++
	}
	return y, m, d
}

// IsLeapYear reports whether year has 366 days in the proleptic Gregorian
// calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days of month in year, or 0 when month
// is not 1-12.
func DaysInMonth(month time.Month, year int) int {
	if month < time.January || month > time.December {
		return 0
	}
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month]
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// addSat adds without wrapping around the int64 range.
func addSat(a, b int64) int64 {
	c := a + b
	switch {
	case b > 0 && c < a:
		return math.MaxInt64
	case b < 0 && c > a:
		return math.MinInt64
	}
	return c
}
