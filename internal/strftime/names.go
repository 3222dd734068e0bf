package strftime

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-dateandtime/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// names holds the resolved month and weekday names. Index 0 of the month
// arrays is unused so months can be indexed 1-12 directly.
type names struct {
	month       [13]string
	monthAbbr   [13]string
	weekday     [7]string
	weekdayAbbr [7]string
}

var catalog = sync.OnceValue(loadNames)

// loadNames reads the embedded message catalog once and resolves every name.
// A missing key resolves to the key itself so output degrades visibly
// instead of failing.
func loadNames() *names {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(config.LocaleDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompStrftime,
			config.LogKeyError, err,
		)
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, config.LocaleFilePrefix) || !strings.HasSuffix(name, config.LocaleFileSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompStrftime,
				config.LogKeyFile, name,
			)
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, config.LocaleDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompStrftime,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompStrftime,
			config.LogKeyFile, name,
		)
	}

	loc := i18n.NewLocalizer(bundle, config.DefaultLanguage)
	n := &names{}
	for m := 1; m <= config.MonthsInYear; m++ {
		n.month[m] = lookup(loc, fmt.Sprintf("%s%02d", config.TKeyMonthPrefix, m))
		n.monthAbbr[m] = lookup(loc, fmt.Sprintf("%s%02d", config.TKeyMonthAbbrPrefix, m))
	}
	for d := 0; d < config.DaysPerWeek; d++ {
		n.weekday[d] = lookup(loc, fmt.Sprintf("%s%d", config.TKeyWeekdayPrefix, d))
		n.weekdayAbbr[d] = lookup(loc, fmt.Sprintf("%s%d", config.TKeyWeekdayAbbrPrefix, d))
	}
	return n
}

func lookup(loc *i18n.Localizer, key string) string {
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompStrftime,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
