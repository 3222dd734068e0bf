package clock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tartampluch/go-dateandtime/internal/config"
	"github.com/tartampluch/go-dateandtime/internal/strftime"
)

// Fields returns the values consumed by the strftime formatter.
func (t Time) Fields() strftime.Fields {
	h, m, s := t.Hour(), t.Minute(), t.Second()
	neg := t.secs < 0
	if neg {
		h, m, s = -h, -m, -s
	}
	return strftime.Fields{
		HasTime:  true,
		Hour:     h,
		Minute:   m,
		Second:   s,
		Negative: neg,
	}
}

// Format renders t through a strftime-like pattern such as "%H:%M".
// Date conversions such as %Y are written as their bare letter.
func (t Time) Format(pattern string) string {
	return strftime.Format(pattern, t.Fields())
}

// String returns [-]HH:MM:SS. Hours are not limited to two digits.
func (t Time) String() string {
	return t.Format(config.TimeFormatISO)
}

// Parse reads [-]H:MM or [-]H:MM:SS. Hours may have any number of digits;
// minutes and seconds must be two digits below 60.
func Parse(s string) (Time, error) {
	body, neg := strings.CutPrefix(s, "-")

	parts := strings.Split(body, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" {
		return Time{}, syntaxError(s)
	}

	var fields [3]int64
	for i, p := range parts {
		if i > 0 && len(p) != 2 {
			return Time{}, syntaxError(s)
		}
		for j := 0; j < len(p); j++ {
			if p[j] < '0' || p[j] > '9' {
				return Time{}, syntaxError(s)
			}
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return Time{}, syntaxError(s)
		}
		if i > 0 && v >= config.SecondsPerMinute {
			return Time{}, syntaxError(s)
		}
		fields[i] = v
	}

	t := New(fields[0], fields[1], fields[2])
	if neg {
		t = Time{}.Sub(t)
	}
	return t, nil
}

// MarshalText implements encoding.TextMarshaler using String.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (t *Time) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func syntaxError(s string) error {
	return fmt.Errorf("%w: %q: %s", ErrInvalidTime, s, config.ErrTimeSyntax)
}
