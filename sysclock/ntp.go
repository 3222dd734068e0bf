package sysclock

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/beevik/ntp"
	"github.com/tartampluch/go-dateandtime/internal/config"
)

// NTP corrects the host clock with the offset reported by a network time
// server. Every call to Now performs one query; nothing is cached.
type NTP struct {
	Server  string
	Timeout time.Duration

	// query is swapped out in tests.
	query func(host string, opt ntp.QueryOptions) (*ntp.Response, error)
}

// NewNTP returns an NTP provider for server. An empty server selects
// config.DefaultNTPServer.
func NewNTP(server string) *NTP {
	if server == "" {
		server = config.DefaultNTPServer
	}
	return &NTP{
		Server:  server,
		Timeout: config.NTPTimeout,
		query:   ntp.QueryWithOptions,
	}
}

// Now queries the server and returns the corrected local time.
func (c *NTP) Now() (Snapshot, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompSysClock,
		config.LogKeyServer, c.Server,
	)
	log.Debug(config.MsgClockQuery)

	query := c.query
	if query == nil {
		query = ntp.QueryWithOptions
	}

	resp, err := query(c.Server, ntp.QueryOptions{Timeout: c.Timeout})
	if err != nil {
		log.Warn(config.MsgClockFailed, config.LogKeyError, err)
		return Snapshot{}, fmt.Errorf("%w: %s: %w", ErrClockUnavailable, config.ErrNTPQuery, err)
	}
	if err := resp.Validate(); err != nil {
		log.Warn(config.MsgClockFailed, config.LogKeyError, err)
		return Snapshot{}, fmt.Errorf("%w: %s: %w", ErrClockUnavailable, config.ErrNTPResponse, err)
	}

	log.Debug(config.MsgNTPOffset, config.LogKeyOffset, resp.ClockOffset.Milliseconds())

	base, err := hostNow()
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrClockUnavailable, err)
	}
	return FromTime(base.Add(resp.ClockOffset).Local()), nil
}
