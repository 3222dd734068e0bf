package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-dateandtime/internal/config"
	"github.com/tartampluch/go-dateandtime/internal/strftime"
)

// Fields returns the values consumed by the strftime formatter.
func (d Date) Fields() strftime.Fields {
	isoYear, isoWeek := d.ISOWeek()
	return strftime.Fields{
		HasDate:    true,
		Year:       d.Year(),
		Month:      int(d.month),
		Day:        d.Day(),
		Weekday:    int(d.Weekday()),
		YearDay:    d.YearDay(),
		ISOYear:    isoYear,
		ISOWeek:    isoWeek,
		SundayWeek: d.Week(time.Sunday),
		MondayWeek: d.Week(time.Monday),
	}
}

// Format renders d through a strftime-like pattern, e.g. "%d.%m.%Y" or
// "%A, %B %e". Time conversions such as %H are written as their bare letter.
func (d Date) Format(pattern string) string {
	return strftime.Format(pattern, d.Fields())
}

// String returns the ISO 8601 form [-]YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(config.DateFormatISO)
}

// Parse reads a date in the form produced by String. A leading '+' is
// accepted, and years may have more than four digits.
func Parse(s string) (Date, error) {
	body, neg := s, false
	switch {
	case strings.HasPrefix(body, "-"):
		body, neg = body[1:], true
	case strings.HasPrefix(body, "+"):
		body = body[1:]
	}

	parts := strings.Split(body, "-")
	if len(parts) != 3 || len(parts[0]) < 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, syntaxError(s)
	}
	y, err := parseDigits(parts[0])
	if err != nil {
		return Date{}, syntaxError(s)
	}
	m, err := parseDigits(parts[1])
	if err != nil {
		return Date{}, syntaxError(s)
	}
	d, err := parseDigits(parts[2])
	if err != nil {
		return Date{}, syntaxError(s)
	}
	if neg {
		y = -y
	}
	if y < MinYear || y > MaxYear {
		return Date{}, fmt.Errorf("%w: %q: %s", ErrInvalidDate, s, config.ErrYearRange)
	}
	return New(int(d), time.Month(m), int(y))
}

// MarshalText implements encoding.TextMarshaler using String.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// parseDigits accepts ASCII digits only, so signs and spaces inside a field
// are rejected.
func parseDigits(s string) (int64, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.ParseInt(s, 10, 64)
}

func syntaxError(s string) error {
	return fmt.Errorf("%w: %q: %s", ErrInvalidDate, s, config.ErrDateSyntax)
}
