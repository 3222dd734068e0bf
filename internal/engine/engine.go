package engine

import (
	"bytes"
	"cmp"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-dateandtime/clock"
	"github.com/tartampluch/go-dateandtime/date"
	"github.com/tartampluch/go-dateandtime/internal/config"
	"github.com/tartampluch/go-dateandtime/local"
	"github.com/tartampluch/go-dateandtime/sysclock"
)

// genStats counts cards seen during one generation run.
type genStats struct{ processed, withBday, today int }

// Generator turns vCard birthdays into an iCalendar feed of all-day events.
type Generator struct {
	Clock sysclock.Provider // Source of "today"; nil selects the host clock.

	// Reminder, when positive, adds a display alarm that long before each event.
	Reminder clock.Time

	// FormatSummary allows callers to inject their own event titles.
	FormatSummary func(name string, age int64, yearKnown bool) string
}

// GenerateFile runs Generate on a local .vcf file.
func (g *Generator) GenerateFile(ctx context.Context, path string) ([]byte, []Anniversary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	// Best effort close. Errors in Close() for read-only files are rarely actionable here.
	defer func() { _ = f.Close() }()

	return g.Generate(ctx, f)
}

// Generate parses the vCard stream and builds the calendar.
// It returns the ICS data and the anniversaries sorted by next occurrence.
func (g *Generator) Generate(ctx context.Context, r io.Reader) ([]byte, []Anniversary, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	// One snapshot gives both "today" and the DTSTAMP.
	now, err := local.Now(g.Clock)
	if err != nil {
		return nil, nil, err
	}
	today := now.Date()

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.In(time.Local).UTC())

	decoder := vcard.NewDecoder(r)
	var stats genStats
	var entries []Anniversary

	for {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Log error but continue to next card to maximize data recovery
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		stats.processed++
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, yearKnown, err := ParseBirthday(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}
		stats.withBday++

		// Name Strategy: FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}

		input := fmt.Sprintf(config.FormatHashInput, name, birth, config.UIDSalt)
		hash := sha256.Sum256([]byte(input))
		uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

		entry := newAnniversary(today, birth, yearKnown)
		entry.UID = uidBase
		entry.Name = name
		entries = append(entries, entry)

		if entry.DaysUntil == 0 {
			stats.today++
			slog.Info(config.MsgBdayToday,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, name,
				config.LogKeyDOB, birth.String())
		}

		for _, e := range g.createEvents(entry, today) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	slices.SortFunc(entries, func(a, b Anniversary) int {
		if c := a.NextOccurrence.Compare(b.NextOccurrence); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	defer func() {
		slog.Debug("Generation finished",
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyDuration, time.Since(start).Milliseconds())
	}()

	if len(cal.Children) == 0 {
		g.logSuccess(stats)
		return []byte(config.StubVCalendar), entries, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(stats)
	return buf.Bytes(), entries, nil
}

// logSuccess logs the final statistics of the generation process.
func (g *Generator) logSuccess(stats genStats) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.withBday),
			slog.Int(config.LogKeyToday, stats.today),
		),
	)
}

// createEvents generates all-day events for the previous, current and next
// year. No event is created before the person is born.
func (g *Generator) createEvents(entry Anniversary, today date.Date) []*ical.Event {
	currentYear := int64(today.Year())
	birthYear := int64(entry.DateOfBirth.Year())

	var events []*ical.Event
	for _, y := range []int64{currentYear - 1, currentYear, currentYear + 1} {
		if entry.YearKnown && y < birthYear {
			continue
		}
		if y < config.ICalMinYear || y > config.ICalMaxYear {
			slog.Debug(config.ErrDateNotICal,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, y)
			continue
		}

		age := int64(0)
		if entry.YearKnown {
			age = y - birthYear
		}

		summary := fallbackSummary(entry.Name, age, entry.YearKnown)
		if g.FormatSummary != nil {
			summary = g.FormatSummary(entry.Name, age, entry.YearKnown)
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, entry.UID, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)

		// 29 February falls back to 28 February in common years.
		occurrence := entry.DateOfBirth.AddYears(y - birthYear)
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(occurrence.In(time.UTC))
		event.Props.Set(dtStartProp)

		if g.Reminder.Seconds() > 0 {
			addAlarm(event, reminderTrigger(g.Reminder), summary)
		}

		events = append(events, event)
	}
	return events
}

func fallbackSummary(name string, age int64, yearKnown bool) string {
	if yearKnown && age > 0 {
		return fmt.Sprintf(config.FallbackSummaryAge, name, age)
	}
	return fmt.Sprintf(config.FallbackSummary, name)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalAlarm)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescr, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// reminderTrigger renders a positive lead time as a negative ISO 8601
// duration, e.g. 26:30:00 becomes -PT26H30M.
func reminderTrigger(lead clock.Time) string {
	var b strings.Builder
	b.WriteString(config.ISONegativePrefix)
	b.WriteString(config.ISOTimePrefix)
	if h := lead.Hour(); h != 0 {
		b.WriteString(strconv.FormatInt(h, 10) + config.ISOHour)
	}
	if m := lead.Minute(); m != 0 {
		b.WriteString(strconv.FormatInt(m, 10) + config.ISOMinute)
	}
	if s := lead.Second(); s != 0 {
		b.WriteString(strconv.FormatInt(s, 10) + config.ISOSecond)
	}
	return b.String()
}

// ParseBirthday handles the vCard BDAY formats seen in the wild. Dates without
// a year are anchored in config.DefaultLeapYear so 29 February survives.
func ParseBirthday(value string) (date.Date, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			d, err := date.FromTime(t)
			return d, true, err
		}
	}

	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			d, err := date.New(t.Day(), t.Month(), config.DefaultLeapYear)
			return d, false, err
		}
	}

	return date.Date{}, false, errors.New(config.ErrDateParse)
}
