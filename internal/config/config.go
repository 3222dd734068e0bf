package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Go Date and Time"
	AppID       = "com.github.tartampluch.go-dateandtime"
	CommandName = "dateandtime"
	LogFileName = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and generated calendar files.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion  = "version"
	FlagDebug    = "debug"
	FlagNTP      = "ntp"
	FlagFormat   = "format"
	FlagDays     = "days"
	FlagMonths   = "months"
	FlagYears    = "years"
	FlagHours    = "hours"
	FlagMinutes  = "minutes"
	FlagSeconds  = "seconds"
	FlagICS      = "ics"
	FlagReminder = "reminder"
	FlagAddr     = "addr"
	FlagRefresh  = "refresh"

	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stderr"
	FlagDescNTP      = "Query this NTP server instead of the host clock"
	FlagDescFormat   = "strftime-like output pattern"
	FlagDescDays     = "Days to add (negative to subtract)"
	FlagDescMonths   = "Months to add (negative to subtract)"
	FlagDescYears    = "Years to add (negative to subtract)"
	FlagDescHours    = "Hours to add (negative to subtract)"
	FlagDescMinutes  = "Minutes to add (negative to subtract)"
	FlagDescSeconds  = "Seconds to add (negative to subtract)"
	FlagDescICS      = "Write the anniversary calendar to this .ics file"
	FlagDescReminder = "Alarm lead time before each birthday, as H:MM[:SS]"
	FlagDescAddr     = "Address the calendar feed listens on"
	FlagDescRefresh  = "Interval between two reads of the vCard file"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// CLI Commands & Output
// -----------------------------------------------------------------------------

const (
	CmdRootShort      = "Calendar dates and times of day"
	CmdNowUse         = "now"
	CmdNowShort       = "Print the local date and time"
	CmdDiffUse        = "diff DATE DATE"
	CmdDiffShort      = "Print the first date minus the second, in days"
	CmdAddUse         = "add DATE"
	CmdAddShort       = "Shift a date by years, months and days"
	CmdTimeUse        = "time"
	CmdTimeShort      = "Time of day arithmetic"
	CmdTimeAddUse     = "add TIME"
	CmdTimeAddShort   = "Shift a time of day by hours, minutes and seconds"
	CmdTimeDiffUse    = "diff TIME TIME"
	CmdTimeDiffShort  = "Print the first time minus the second, in seconds"
	CmdBirthdaysUse   = "birthdays FILE.vcf"
	CmdBirthdaysShort = "List upcoming birthdays from a vCard file"
	CmdServeUse       = "serve FILE.vcf"
	CmdServeShort     = "Serve the birthday calendar over HTTP"

	// OutputBirthday renders one line: next occurrence, days until, name.
	OutputBirthday        = "%s  %4d  %s\n"
	OutputBirthdayWithAge = "%s  %4d  %s (%d)\n"
)

// -----------------------------------------------------------------------------
// Calendar Limits
// -----------------------------------------------------------------------------

const (
	// EpochYear is the year of day 0 of the linear day count (1 Jan 1970).
	EpochYear = 1970

	// DaysFromCivilZeroToEpoch is the number of days between 1 Mar 0000 and
	// 1 Jan 1970 in the proleptic Gregorian calendar.
	DaysFromCivilZeroToEpoch = 719_468

	DaysPerEra   = 146_097 // 400 Gregorian years
	YearsPerEra  = 400
	DaysPerWeek  = 7
	MonthsInYear = 12

	SecondsPerMinute = 60
	SecondsPerHour   = 3_600
	SecondsPerDay    = 86_400

	// DefaultLeapYear is used to anchor birthdays stored without a year (--MM-DD).
	DefaultLeapYear = 2000
)

// -----------------------------------------------------------------------------
// Display Formats
// -----------------------------------------------------------------------------

const (
	DateFormatISO     = "%F"
	TimeFormatISO     = "%T"
	DateTimeFormatISO = "%FT%T"

	// Layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// AM/PM markers written by %p and %r.
	MarkerAMLong  = "a.m."
	MarkerPMLong  = "p.m."
	MarkerAMShort = "AM"
	MarkerPMShort = "PM"
)

// -----------------------------------------------------------------------------
// Network Time
// -----------------------------------------------------------------------------

const (
	DefaultNTPServer = "pool.ntp.org"
	NTPTimeout       = 5 * time.Second
)

// -----------------------------------------------------------------------------
// Feed Server
// -----------------------------------------------------------------------------

const (
	DefaultServeAddr  = "127.0.0.1:18080"
	DefaultRefresh    = time.Hour
	ChannelBufferSize = 1

	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"

	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`

	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Translation Keys (name catalog)
// -----------------------------------------------------------------------------

const (
	DefaultLanguage  = "en"
	LocaleDir        = "locales"
	LocaleFilePrefix = "active."
	LocaleFileSuffix = ".json"

	// TKeyMonthPrefix + "01".."12" and TKeyWeekdayPrefix + "0".."6" (Sunday = 0).
	TKeyMonthPrefix       = "month_"
	TKeyMonthAbbrPrefix   = "month_abbr_"
	TKeyWeekdayPrefix     = "weekday_"
	TKeyWeekdayAbbrPrefix = "weekday_abbr_"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Date and Time//Anniversaries//EN"
	ICalCalName = "Anniversaries"
	ICalScale   = "GREGORIAN"
	ICalMethod  = "PUBLISH"
	ICalDomain  = "go-dateandtime"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropAction     = "ACTION"
	PropDescr      = "DESCRIPTION"
	PropTrigger    = "TRIGGER"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	ICalAlarm  = "VALARM"
	ICalAction = "DISPLAY"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	UIDSalt         = "go-dateandtime-v1-" // Salt for deterministic UID generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// ICalMinYear and ICalMaxYear bound the years a DATE value can carry.
	ICalMinYear = 0
	ICalMaxYear = 9999

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// ISO8601 Duration Components for Reminders
const (
	ISOPeriodPrefix   = "P"
	ISONegativePrefix = "-P"
	ISOTimePrefix     = "T"
	ISOHour           = "H"
	ISOMinute         = "M"
	ISOSecond         = "S"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidDate      = "invalid date"
	ErrInvalidTime      = "invalid time"
	ErrClockUnavailable = "clock unavailable"
	ErrYearRange        = "year out of supported range"
	ErrDateSyntax       = "expected [+-]YYYY-MM-DD"
	ErrTimeSyntax       = "expected [-]H:MM[:SS]"
	ErrSnapshotInvalid  = "clock returned an invalid snapshot"
	ErrNTPQuery         = "ntp query failed"
	ErrNTPResponse      = "ntp response rejected"
	ErrDateParse        = "unable to parse date"
	ErrDateNotICal      = "date cannot be represented in iCalendar"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteOutput      = "failed to write output file"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrAddrRequired     = "listen address is required"
	ErrWriteResp        = "failed to write response body"
	ErrRefresh          = "calendar refresh failed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackName       = "Unknown"
	FallbackSummary    = "Birthday: %s"
	FallbackSummaryAge = "Birthday: %s (%d)"

	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgClockQuery    = "Querying clock"
	MsgClockFailed   = "Clock query failed"
	MsgNTPOffset     = "NTP offset applied"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgGenSuccess    = "Anniversary generation successful"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgBdayToday     = "Birthday found today"
	MsgCalendarSaved = "Calendar written"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyValue     = "value"
	LogKeyServer    = "server"
	LogKeyOffset    = "offset_ms"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyToday     = "birthdays_today"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyAddr      = "addr"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompSysClock = "sysclock"
	CompStrftime = "strftime"
	CompEngine   = "engine"
	CompCLI      = "cli"
	CompServer   = "server"
	CompMain     = "main"
)
