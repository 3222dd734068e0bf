// Package clock implements an unbounded, signed count of seconds that is read
// and built through hours, minutes and seconds.
//
// A Time is not wrapped to a 24-hour day: 0:55:00 plus ten minutes is
// 1:05:00, and 23:00:00 plus two hours is 25:00:00. Negative values are
// allowed.
//
// Decomposition truncates toward zero, so every component carries the sign
// of the total: -3661 seconds is -1 h, -1 min, -1 s. Arithmetic saturates at
// the int64 range.
package clock

import (
	"errors"
	"math"

	"github.com/tartampluch/go-dateandtime/internal/config"
	"github.com/tartampluch/go-dateandtime/sysclock"
)

// ErrInvalidTime is returned by Parse for malformed input.
var ErrInvalidTime = errors.New(config.ErrInvalidTime)

// Time is an immutable signed number of seconds. The zero value is 0:00:00.
// Times are comparable with ==.
type Time struct {
	secs int64
}

// FromSeconds returns a Time of n seconds.
func FromSeconds(n int64) Time {
	return Time{secs: n}
}

// New returns h·3600 + m·60 + s seconds. Components are not range checked:
// New(0, 90, 0) equals New(1, 30, 0), and mixed signs simply add up.
func New(h, m, s int64) Time {
	return Time{secs: addSat(addSat(mulSat(h, config.SecondsPerHour), mulSat(m, config.SecondsPerMinute)), s)}
}

// FromHours returns a Time of h hours.
func FromHours(h int64) Time { return New(h, 0, 0) }

// FromMinutes returns a Time of m minutes.
func FromMinutes(m int64) Time { return New(0, m, 0) }

// FromSystemClock returns the current local time of day reported by p.
// Failures of p are reported as sysclock.ErrClockUnavailable.
func FromSystemClock(p sysclock.Provider) (Time, error) {
	snap, err := sysclock.Query(p)
	if err != nil {
		return Time{}, err
	}
	return FromSnapshot(snap), nil
}

// FromSnapshot extracts the time of day of a clock snapshot.
func FromSnapshot(snap sysclock.Snapshot) Time {
	return New(int64(snap.Hour), int64(snap.Minute), int64(snap.Second))
}

// Seconds returns the total number of seconds.
func (t Time) Seconds() int64 { return t.secs }

// Hour returns the whole hours of t. It may exceed 23 or be negative.
func (t Time) Hour() int64 { return t.secs / config.SecondsPerHour }

// Minute returns the minutes left after whole hours, -59 to 59.
func (t Time) Minute() int64 {
	return t.secs % config.SecondsPerHour / config.SecondsPerMinute
}

// Second returns the seconds left after whole minutes, -59 to 59.
func (t Time) Second() int64 { return t.secs % config.SecondsPerMinute }

// Hours returns t as fractional hours, e.g. 1.5 for 1:30:00.
func (t Time) Hours() float64 {
	return float64(t.secs) / config.SecondsPerHour
}

// DiffInSeconds returns t minus other in seconds.
func (t Time) DiffInSeconds(other Time) int64 {
	return subSat(t.secs, other.secs)
}

// AddSeconds returns t shifted by n seconds.
func (t Time) AddSeconds(n int64) Time {
	return Time{secs: addSat(t.secs, n)}
}

// AddMinutes returns t shifted by n minutes.
func (t Time) AddMinutes(n int64) Time {
	return t.AddSeconds(mulSat(n, config.SecondsPerMinute))
}

// AddHours returns t shifted by n hours.
func (t Time) AddHours(n int64) Time {
	return t.AddSeconds(mulSat(n, config.SecondsPerHour))
}

// Add returns the sum of t and other.
func (t Time) Add(other Time) Time {
	return t.AddSeconds(other.secs)
}

// Sub returns t minus other as a Time.
func (t Time) Sub(other Time) Time {
	return Time{secs: subSat(t.secs, other.secs)}
}

// Equal reports whether t and other hold the same number of seconds.
func (t Time) Equal(other Time) bool { return t == other }

// Before reports whether t is less than other.
func (t Time) Before(other Time) bool { return t.secs < other.secs }

// After reports whether t is greater than other.
func (t Time) After(other Time) bool { return t.secs > other.secs }

// Compare returns -1, 0 or +1.
func (t Time) Compare(other Time) int {
	switch {
	case t.secs < other.secs:
		return -1
	case t.secs > other.secs:
		return 1
	}
	return 0
}

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

func subSat(a, b int64) int64 {
	if b == math.MinInt64 {
		if a >= 0 {
			return math.MaxInt64
		}
		return a - b
	}
	return addSat(a, -b)
}

// mulSat multiplies by a positive factor without wrapping.
func mulSat(a, factor int64) int64 {
	switch {
	case a > math.MaxInt64/factor:
		return math.MaxInt64
	case a < math.MinInt64/factor:
		return math.MinInt64
	}
	return a * factor
}
