// Package strftime renders calendar and clock fields through a pattern of
// strftime(3)-like conversion specifications.
//
// The package performs no calendar arithmetic. Derived values such as the
// weekday or the ISO week are supplied by the caller in Fields.
package strftime

import (
	"strconv"
	"strings"

	"github.com/tartampluch/go-dateandtime/internal/config"
)

// Fields is the input of Format. Only the groups flagged by HasDate and
// HasTime are rendered.
type Fields struct {
	HasDate bool
	Year    int
	Month   int // 1-12
	Day     int // 1-31

	Weekday    int // 0 = Sunday
	YearDay    int // 1-366
	ISOYear    int
	ISOWeek    int // 1-53
	SundayWeek int // 0-53, first Sunday starts week 1
	MondayWeek int // 0-53, first Monday starts week 1

	HasTime bool
	// Hour, Minute and Second are magnitudes; Negative carries the sign.
	// Hour is not limited to 23.
	Hour     int64
	Minute   int64
	Second   int64
	Negative bool
}

// Format expands pattern with f.
//
// A conversion whose field group is absent, or that is not recognised, is
// written as its bare letter. A trailing lone '%' is dropped.
func Format(pattern string, f Fields) string {
	var b strings.Builder
	b.Grow(len(pattern) + 16)

	rs := []rune(pattern)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		if c != '%' {
			b.WriteRune(c)
			continue
		}
		i++
		if i >= len(rs) {
			break
		}
		spec := rs[i]
		switch {
		case spec == '%':
			b.WriteByte('%')
		case spec == 'n':
			b.WriteByte('\n')
		case spec == 't':
			b.WriteByte('\t')
		case f.HasDate && writeDate(&b, spec, f):
		case f.HasTime && writeTime(&b, spec, f):
		default:
			b.WriteRune(spec)
		}
	}
	return b.String()
}

func writeDate(b *strings.Builder, spec rune, f Fields) bool {
	n := catalog()
	switch spec {
	case 'Y':
		b.WriteString(year(f.Year))
	case 'y':
		b.WriteString(pad(int64(floorMod(f.Year, 100)), 2))
	case 'C':
		b.WriteString(signedPad(int64(floorDiv(f.Year, 100)), 2))
	case 'G':
		b.WriteString(year(f.ISOYear))
	case 'g':
		b.WriteString(pad(int64(floorMod(f.ISOYear, 100)), 2))
	case 'b', 'h':
		b.WriteString(n.monthAbbr[clampMonth(f.Month)])
	case 'B':
		b.WriteString(n.month[clampMonth(f.Month)])
	case 'm':
		b.WriteString(pad(int64(f.Month), 2))
	case 'd':
		b.WriteString(pad(int64(f.Day), 2))
	case 'e':
		if f.Day < 10 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(f.Day))
	case 'j':
		b.WriteString(pad(int64(f.YearDay), 3))
	case 'U':
		b.WriteString(pad(int64(f.SundayWeek), 2))
	case 'W':
		b.WriteString(pad(int64(f.MondayWeek), 2))
	case 'V':
		b.WriteString(pad(int64(f.ISOWeek), 2))
	case 'a':
		b.WriteString(n.weekdayAbbr[clampWeekday(f.Weekday)])
	case 'A':
		b.WriteString(n.weekday[clampWeekday(f.Weekday)])
	case 'w':
		b.WriteString(strconv.Itoa(f.Weekday))
	case 'u':
		wd := f.Weekday
		if wd == 0 {
			wd = 7
		}
		b.WriteString(strconv.Itoa(wd))
	case 'D':
		b.WriteString(pad(int64(f.Month), 2))
		b.WriteByte('/')
		b.WriteString(pad(int64(f.Day), 2))
		b.WriteByte('/')
		b.WriteString(pad(int64(floorMod(f.Year, 100)), 2))
	case 'F':
		b.WriteString(year(f.Year))
		b.WriteByte('-')
		b.WriteString(pad(int64(f.Month), 2))
		b.WriteByte('-')
		b.WriteString(pad(int64(f.Day), 2))
	default:
		return false
	}
	return true
}

func writeTime(b *strings.Builder, spec rune, f Fields) bool {
	sign := ""
	if f.Negative {
		sign = "-"
	}
	switch spec {
	case 'H':
		b.WriteString(sign + pad(f.Hour, 2))
	case 'M':
		b.WriteString(pad(f.Minute, 2))
	case 'S':
		b.WriteString(pad(f.Second, 2))
	case 'I':
		b.WriteString(pad(twelveHour(f.Hour), 2))
	case 'p':
		if f.Hour%24 >= 12 {
			b.WriteString(config.MarkerPMLong)
		} else {
			b.WriteString(config.MarkerAMLong)
		}
	case 'r':
		h := strconv.FormatInt(twelveHour(f.Hour), 10)
		if len(h) < 2 {
			b.WriteByte(' ')
		}
		b.WriteString(h + ":" + pad(f.Minute, 2) + ":" + pad(f.Second, 2) + " ")
		if f.Hour%24 >= 12 {
			b.WriteString(config.MarkerPMShort)
		} else {
			b.WriteString(config.MarkerAMShort)
		}
	case 'R':
		b.WriteString(sign + pad(f.Hour, 2) + ":" + pad(f.Minute, 2))
	case 'T':
		b.WriteString(sign + pad(f.Hour, 2) + ":" + pad(f.Minute, 2) + ":" + pad(f.Second, 2))
	default:
		return false
	}
	return true
}

// twelveHour maps the hour of the day onto 1-12.
func twelveHour(h int64) int64 {
	h %= 12
	if h == 0 {
		return 12
	}
	return h
}

// year renders at least four digits, with a leading '-' for negative years.
func year(y int) string {
	return signedPad(int64(y), 4)
}

func signedPad(v int64, width int) string {
	if v < 0 {
		return "-" + pad(-v, width)
	}
	return pad(v, width)
}

// pad zero-pads a non-negative value to width digits.
func pad(v int64, width int) string {
	s := strconv.FormatInt(v, 10)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

func clampMonth(m int) int {
	if m < 1 || m > 12 {
		return 0
	}
	return m
}

func clampWeekday(d int) int {
	if d < 0 || d > 6 {
		return 0
	}
	return d
}
