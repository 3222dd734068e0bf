// Package sysclock supplies the current local wall-clock reading as a single
// snapshot of integer calendar and clock fields.
//
// The date, clock and local packages never read the host clock themselves;
// they consume a Provider. Platform specific code lives behind build tags in
// this package only.
package sysclock

import (
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-dateandtime/internal/config"
)

// ErrClockUnavailable is returned (wrapped) by every Provider that could not
// read its clock. Callers must not substitute a default value.
var ErrClockUnavailable = errors.New(config.ErrClockUnavailable)

// Snapshot is one atomic reading of the local wall clock.
// Month is 1-12, Day 1-31, Hour 0-23. Sub-second precision is discarded.
type Snapshot struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// FromTime captures t in its own location.
func FromTime(t time.Time) Snapshot {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	return Snapshot{
		Year:   y,
		Month:  int(m),
		Day:    d,
		Hour:   hh,
		Minute: mm,
		Second: ss,
	}
}

// Provider abstracts the OS clock so callers can be tested deterministically.
// Implementations must be safe for concurrent use.
type Provider interface {
	Now() (Snapshot, error)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func() (Snapshot, error)

// Now calls f.
func (f ProviderFunc) Now() (Snapshot, error) {
	return f()
}

// Fixed always reports the same snapshot.
type Fixed Snapshot

// Now returns the fixed snapshot.
func (f Fixed) Now() (Snapshot, error) {
	return Snapshot(f), nil
}

// Query reads p exactly once. A nil p selects System. Any failure, including a
// snapshot with out-of-range clock fields, is wrapped in ErrClockUnavailable.
// Day validity against the month is left to the date package.
func Query(p Provider) (Snapshot, error) {
	if p == nil {
		p = System{}
	}
	snap, err := p.Now()
	if err != nil {
		if errors.Is(err, ErrClockUnavailable) {
			return Snapshot{}, err
		}
		return Snapshot{}, fmt.Errorf("%w: %w", ErrClockUnavailable, err)
	}
	if !snap.inRange() {
		return Snapshot{}, fmt.Errorf("%w: %s: %+v", ErrClockUnavailable, config.ErrSnapshotInvalid, snap)
	}
	return snap, nil
}

func (s Snapshot) inRange() bool {
	return s.Month >= 1 && s.Month <= 12 &&
		s.Day >= 1 && s.Day <= 31 &&
		s.Hour >= 0 && s.Hour <= 23 &&
		s.Minute >= 0 && s.Minute <= 59 &&
		s.Second >= 0 && s.Second <= 59
}
