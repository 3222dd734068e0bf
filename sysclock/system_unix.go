//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package sysclock

import (
	"time"

	"golang.org/x/sys/unix"
)

// hostNow reads the kernel clock through gettimeofday(2), which writes only to
// the caller-supplied buffer and is safe to call from any goroutine.
func hostNow() (time.Time, error) {
	var tv unix.Timeval
	if err := unix.Gettimeofday(&tv); err != nil {
		return time.Time{}, err
	}
	sec, nsec := tv.Unix()
	return time.Unix(sec, nsec), nil
}
