// Package local couples a calendar date and a time of day read together from
// one clock snapshot.
package local

import (
	"time"

	"github.com/tartampluch/go-dateandtime/clock"
	"github.com/tartampluch/go-dateandtime/date"
	"github.com/tartampluch/go-dateandtime/internal/config"
	"github.com/tartampluch/go-dateandtime/internal/strftime"
	"github.com/tartampluch/go-dateandtime/sysclock"
)

// Clock is the local date and time of day at one instant. It is immutable;
// the parts can only be read, never replaced individually.
type Clock struct {
	date date.Date
	time clock.Time
}

// Now reads p exactly once and derives both parts from that reading, so the
// date and the time can never straddle midnight. A nil p selects
// sysclock.System. The only error is sysclock.ErrClockUnavailable.
func Now(p sysclock.Provider) (Clock, error) {
	snap, err := sysclock.Query(p)
	if err != nil {
		return Clock{}, err
	}
	return FromSnapshot(snap)
}

// FromSnapshot builds a Clock from an existing reading.
func FromSnapshot(snap sysclock.Snapshot) (Clock, error) {
	d, err := date.FromSnapshot(snap)
	if err != nil {
		return Clock{}, err
	}
	return Clock{date: d, time: clock.FromSnapshot(snap)}, nil
}

// Date returns the calendar date part.
func (c Clock) Date() date.Date { return c.date }

// Time returns the time-of-day part, 0:00:00 to 23:59:59.
func (c Clock) Time() clock.Time { return c.time }

// In returns c as a time.Time in loc. Years outside the range of time.Time
// wrap as time.Date does.
func (c Clock) In(loc *time.Location) time.Time {
	return c.date.In(loc).Add(time.Duration(c.time.Seconds()) * time.Second)
}

// Format renders c through a strftime-like pattern; date and time
// conversions can be mixed, e.g. "%d.%m.%Y %H:%M".
func (c Clock) Format(pattern string) string {
	f := c.date.Fields()
	tf := c.time.Fields()
	f.HasTime = true
	f.Hour, f.Minute, f.Second, f.Negative = tf.Hour, tf.Minute, tf.Second, tf.Negative
	return strftime.Format(pattern, f)
}

// String returns the ISO 8601 form YYYY-MM-DDTHH:MM:SS.
func (c Clock) String() string {
	return c.Format(config.DateTimeFormatISO)
}
