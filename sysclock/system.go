package sysclock

import (
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-dateandtime/internal/config"
)

// System reads the host clock and reports it in the process's local zone.
type System struct{}

// Now queries the host clock once.
func (System) Now() (Snapshot, error) {
	t, err := hostNow()
	if err != nil {
		slog.Warn(config.MsgClockFailed,
			config.LogKeyComponent, config.CompSysClock,
			config.LogKeyError, err,
		)
		return Snapshot{}, fmt.Errorf("%w: %w", ErrClockUnavailable, err)
	}
	return FromTime(t.Local()), nil
}
