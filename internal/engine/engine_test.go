package engine_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-dateandtime/clock"
	"github.com/tartampluch/go-dateandtime/date"
	"github.com/tartampluch/go-dateandtime/internal/config"
	"github.com/tartampluch/go-dateandtime/internal/engine"
	"github.com/tartampluch/go-dateandtime/sysclock"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockProvider controls the clock for deterministic testing.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Now() (sysclock.Snapshot, error) {
	args := m.Called()
	return args.Get(0).(sysclock.Snapshot), args.Error(1)
}

func fixedAt(year, month, day int) sysclock.Fixed {
	return sysclock.Fixed{Year: year, Month: month, Day: day, Hour: 10}
}

func generate(t *testing.T, gen *engine.Generator, vcf string) (string, []engine.Anniversary) {
	t.Helper()
	ics, entries, err := gen.Generate(context.Background(), strings.NewReader(vcf))
	require.NoError(t, err)
	return string(ics), entries
}

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

func TestGenerateFile_Success(t *testing.T) {
	// Scenario: A local vCard with one valid contact having a birthday today.
	vcardContent := `BEGIN:VCARD
VERSION:4.0
FN:John Doe
BDAY:2000-01-01
END:VCARD`

	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(vcardContent), config.FilePermUserRW))

	gen := &engine.Generator{Clock: fixedAt(2025, 1, 1)}

	icsData, entries, err := gen.GenerateFile(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "John Doe", entries[0].Name)
	assert.Equal(t, int64(25), entries[0].AgeNext, "Born 2000, now 2025")
	assert.Equal(t, int64(0), entries[0].DaysUntil, "Birthday is today")

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "BEGIN:VCALENDAR", "Should start with VCALENDAR")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: John Doe", "Should contain the event summary")
}

func TestGenerateFile_Missing(t *testing.T) {
	gen := &engine.Generator{Clock: fixedAt(2025, 1, 1)}

	_, _, err := gen.GenerateFile(context.Background(), filepath.Join(t.TempDir(), "absent.vcf"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerate_LeapYear_EdgeCase(t *testing.T) {
	// Scenario: A contact born on Feb 29th. In 2025 (common year) the
	// birthday is kept in February, on the 28th.
	vcardContent := `BEGIN:VCARD
VERSION:3.0
FN:Leap Baby
BDAY:2000-02-29
END:VCARD`

	gen := &engine.Generator{Clock: fixedAt(2025, 2, 28)}
	icsStr, entries := generate(t, gen, vcardContent)

	require.Len(t, entries, 1)
	assert.Equal(t, date.MustNew(28, time.February, 2025), entries[0].NextOccurrence)
	assert.Equal(t, int64(0), entries[0].DaysUntil)
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20240229", "Leap year keeps Feb 29")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20250228")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20260228")
}

func TestGenerate_NextOccurrenceAndOrder(t *testing.T) {
	// Scenario: Verify NextOccurrence relative to Now (2025-06-01) and the sort order.
	vcardContent := `BEGIN:VCARD
VERSION:3.0
FN:Past Birthday
BDAY:1990-01-01
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Future Birthday
BDAY:1990-12-31
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Today Birthday
BDAY:1990-06-01
END:VCARD`

	gen := &engine.Generator{Clock: fixedAt(2025, 6, 1)}
	_, entries := generate(t, gen, vcardContent)
	require.Len(t, entries, 3)

	names := []string{entries[0].Name, entries[1].Name, entries[2].Name}
	assert.Equal(t, []string{"Today Birthday", "Future Birthday", "Past Birthday"}, names)

	assert.Equal(t, date.MustNew(1, time.June, 2025), entries[0].NextOccurrence)
	assert.Equal(t, int64(35), entries[0].AgeNext)

	assert.Equal(t, date.MustNew(31, time.December, 2025), entries[1].NextOccurrence)
	assert.Equal(t, int64(213), entries[1].DaysUntil)

	assert.Equal(t, date.MustNew(1, time.January, 2026), entries[2].NextOccurrence)
	assert.Equal(t, int64(36), entries[2].AgeNext)
	assert.Equal(t, int64(214), entries[2].DaysUntil)
}

func TestGenerate_ClockUnavailable(t *testing.T) {
	// Scenario: the clock fails; nothing is generated and the cause is kept.
	clk := new(MockProvider)
	cause := errors.New("no rtc")
	clk.On("Now").Return(sysclock.Snapshot{}, cause).Once()

	gen := &engine.Generator{Clock: clk}
	icsData, entries, err := gen.Generate(context.Background(), strings.NewReader(""))

	assert.ErrorIs(t, err, sysclock.ErrClockUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, icsData)
	assert.Nil(t, entries)
	clk.AssertExpectations(t)
}

func TestGenerate_ReadsClockOnce(t *testing.T) {
	clk := new(MockProvider)
	clk.On("Now").Return(sysclock.Snapshot(fixedAt(2025, 6, 1)), nil).Once()

	gen := &engine.Generator{Clock: clk}
	generate(t, gen, "BEGIN:VCARD\nVERSION:3.0\nFN:A\nBDAY:1990-01-01\nEND:VCARD\n"+
		"BEGIN:VCARD\nVERSION:3.0\nFN:B\nBDAY:1991-02-02\nEND:VCARD")

	clk.AssertNumberOfCalls(t, "Now", 1)
}

func TestGenerate_WithReminders(t *testing.T) {
	// Scenario: A valid vCard and a reminder one day and a half before.
	vcardContent := "BEGIN:VCARD\nVERSION:3.0\nFN:Alarm Test\nBDAY:1990-01-01\nEND:VCARD"

	gen := &engine.Generator{
		Clock:    fixedAt(2025, 6, 1),
		Reminder: clock.New(36, 0, 0),
	}
	icsStr, _ := generate(t, gen, vcardContent)

	assert.Contains(t, icsStr, "BEGIN:VALARM", "ICS should contain an alarm component")
	assert.Contains(t, icsStr, "TRIGGER:-PT36H", "Alarm trigger should match configuration")
	assert.Contains(t, icsStr, "ACTION:DISPLAY", "Alarm action should be DISPLAY")
}

func TestGenerate_NoReminderByDefault(t *testing.T) {
	gen := &engine.Generator{Clock: fixedAt(2025, 6, 1)}
	icsStr, _ := generate(t, gen, "BEGIN:VCARD\nVERSION:3.0\nFN:A\nBDAY:1990-01-01\nEND:VCARD")

	assert.NotContains(t, icsStr, "BEGIN:VALARM")
}

func TestGenerate_GeneratesYearRange(t *testing.T) {
	// Scenario: events for Prev Year, Current Year, Next Year (Total 3).
	vcardContent := "BEGIN:VCARD\nVERSION:3.0\nFN:Range Test\nBDAY:1990-12-31\nEND:VCARD"

	gen := &engine.Generator{Clock: fixedAt(2025, 1, 1)}
	icsStr, _ := generate(t, gen, vcardContent)

	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20241231", "Should include previous year")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20251231", "Should include current year")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20261231", "Should include next year")
	assert.Equal(t, 3, strings.Count(icsStr, "BEGIN:VEVENT"), "Should generate exactly 3 events (Prev, Curr, Next)")
}

func TestGenerate_BabyBornThisYear(t *testing.T) {
	// Scenario: Baby born on 2025-05-01. Current date is 2025-01-01.
	// Expected: 2024 (skipped), 2025 (Birth), 2026 (1 year).
	vcardContent := "BEGIN:VCARD\nVERSION:3.0\nFN:Baby\nBDAY:2025-05-01\nEND:VCARD"

	gen := &engine.Generator{
		Clock: fixedAt(2025, 1, 1),
		FormatSummary: func(name string, age int64, yearKnown bool) string {
			if age == 0 {
				return fmt.Sprintf("Birthday: %s (Birth)", name)
			}
			return fmt.Sprintf("Birthday: %s (%d)", name, age)
		},
	}
	icsStr, entries := generate(t, gen, vcardContent)

	assert.NotContains(t, icsStr, "DTSTART;VALUE=DATE:20240501", "Should NOT generate event before birth")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20250501")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Baby (Birth)", "Should indicate birth event")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20260501")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Baby (1)", "Should indicate 1 year old")
	assert.Equal(t, 2, strings.Count(icsStr, "BEGIN:VEVENT"))

	require.Len(t, entries, 1)
	assert.Equal(t, date.MustNew(1, time.May, 2025), entries[0].NextOccurrence)
	assert.Equal(t, int64(0), entries[0].AgeNext)
}

func TestGenerate_FutureBirth(t *testing.T) {
	// Scenario: Due date is in 2027. Current date is 2025.
	vcardContent := "BEGIN:VCARD\nVERSION:3.0\nFN:Future Baby\nBDAY:2027-01-01\nEND:VCARD"

	gen := &engine.Generator{Clock: fixedAt(2025, 1, 1)}
	icsStr, entries := generate(t, gen, vcardContent)

	assert.Equal(t, config.StubVCalendar, icsStr, "No events means the stub calendar")
	require.Len(t, entries, 1)
	assert.Equal(t, date.MustNew(1, time.January, 2027), entries[0].NextOccurrence)
	assert.Equal(t, int64(0), entries[0].AgeNext)
}

func TestGenerate_UnknownYear(t *testing.T) {
	vcardContent := "BEGIN:VCARD\nVERSION:3.0\nFN:Mystery\nBDAY:--02-29\nEND:VCARD"

	gen := &engine.Generator{Clock: fixedAt(2025, 3, 1)}
	icsStr, entries := generate(t, gen, vcardContent)

	require.Len(t, entries, 1)
	assert.False(t, entries[0].YearKnown)
	assert.Equal(t, int64(0), entries[0].AgeNext)
	assert.Equal(t, date.MustNew(28, time.February, 2026), entries[0].NextOccurrence)
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Mystery\r\n", "No age without a year")
	assert.Equal(t, 3, strings.Count(icsStr, "BEGIN:VEVENT"))
}

func TestGenerate_NameFallbacks(t *testing.T) {
	vcardContent := "BEGIN:VCARD\nVERSION:3.0\nN:Doe\nBDAY:1990-01-01\nEND:VCARD\n" +
		"BEGIN:VCARD\nVERSION:3.0\nBDAY:1990-01-02\nEND:VCARD"

	gen := &engine.Generator{Clock: fixedAt(2025, 6, 1)}
	_, entries := generate(t, gen, vcardContent)

	require.Len(t, entries, 2)
	assert.Equal(t, "Doe", entries[0].Name)
	assert.Equal(t, config.FallbackName, entries[1].Name)
}

func TestGenerate_StableUIDs(t *testing.T) {
	vcardContent := "BEGIN:VCARD\nVERSION:3.0\nFN:Stable\nBDAY:1990-01-01\nEND:VCARD"
	gen := &engine.Generator{Clock: fixedAt(2025, 6, 1)}

	_, first := generate(t, gen, vcardContent)
	_, second := generate(t, gen, vcardContent)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].UID, second[0].UID)
	assert.Len(t, first[0].UID, config.UIDHashLength*2, "hex encoding doubles the length")
}

func TestGenerate_DecodesAsICalendar(t *testing.T) {
	vcardContent := "BEGIN:VCARD\nVERSION:3.0\nFN:Decode\nBDAY:1990-07-14\nEND:VCARD"
	gen := &engine.Generator{Clock: fixedAt(2025, 6, 1)}

	icsData, _, err := gen.Generate(context.Background(), strings.NewReader(vcardContent))
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(icsData)).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 3)

	start, err := events[1].DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.July, 14, 0, 0, 0, 0, time.UTC), start)

	stamp := events[1].Props.Get(config.PropDTStamp)
	require.NotNil(t, stamp)
	stamped, err := stamp.DateTime(time.UTC)
	require.NoError(t, err)
	want := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.Local)
	assert.True(t, stamped.Equal(want), "DTSTAMP comes from the clock snapshot, got %s", stamp.Value)
}

func TestGenerate_DateFormats_TableDriven(t *testing.T) {
	// Comprehensive test for various date formats encountered in the wild.
	tests := []struct {
		name      string
		bdayValue string
		expectEvt bool
	}{
		{"ISO8601 Standard", "1990-10-25", true},
		{"Basic Format", "19901025", true},
		{"RFC3339", "1990-10-25T00:00:00Z", true},
		{"Truncated (Month-Day)", "--10-25", true},
		{"Truncated Basic", "--1025", true},
		{"Garbage Data", "not-a-date", false},
		{"Impossible Day", "1990-02-30", false},
		{"Empty Date", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "BEGIN:VCARD\nVERSION:3.0\nFN:Test\nBDAY:" + tt.bdayValue + "\nEND:VCARD"

			gen := &engine.Generator{Clock: fixedAt(2025, 1, 1)}
			icsStr, _ := generate(t, gen, content)

			if tt.expectEvt {
				assert.Contains(t, icsStr, "BEGIN:VEVENT", "Valid date should produce an event")
			} else {
				assert.NotContains(t, icsStr, "BEGIN:VEVENT", "Invalid date should be skipped silently")
			}
		})
	}
}

func TestGenerate_ContextCancellation(t *testing.T) {
	// Scenario: the caller gives up before processing starts.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &engine.Generator{Clock: fixedAt(2025, 1, 1)}
	_, _, err := gen.Generate(ctx, strings.NewReader("BEGIN:VCARD\nVERSION:3.0\nFN:X\nBDAY:1990-01-01\nEND:VCARD"))

	assert.Error(t, err)
	assert.Equal(t, context.Canceled, err, "Should return context canceled error")
}
