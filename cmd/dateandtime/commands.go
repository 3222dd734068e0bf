package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-dateandtime/clock"
	"github.com/tartampluch/go-dateandtime/date"
	"github.com/tartampluch/go-dateandtime/internal/config"
	"github.com/tartampluch/go-dateandtime/internal/engine"
	"github.com/tartampluch/go-dateandtime/internal/server"
	"github.com/tartampluch/go-dateandtime/local"
	"github.com/tartampluch/go-dateandtime/sysclock"
)

// app holds the state shared by all commands.
type app struct {
	out   io.Writer
	debug bool

	// clock is the default time source; nil selects the host clock.
	clock sysclock.Provider

	// initLogging is nil in tests, which keep the default logger.
	initLogging func(debug bool) io.Closer
	logCloser   io.Closer
}

func (a *app) closeLogs() {
	if a.logCloser != nil {
		_ = a.logCloser.Close() // Best effort close
	}
}

// newRootCmd wires the command tree around a.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           config.CommandName,
		Short:         config.CmdRootShort,
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.initLogging != nil {
				a.logCloser = a.initLogging(a.debug)
				logStartupInfo()
			}
		},
	}
	root.SetOut(a.out)
	root.SetVersionTemplate(versionString())
	root.PersistentFlags().BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)
	root.Flags().Bool(config.FlagVersion, false, config.FlagDescVersion)

	root.AddCommand(
		newNowCmd(a),
		newDiffCmd(a),
		newAddCmd(a),
		newTimeCmd(a),
		newBirthdaysCmd(a),
		newServeCmd(a),
	)
	return root
}

func newNowCmd(a *app) *cobra.Command {
	var ntpServer, pattern string

	cmd := &cobra.Command{
		Use:   config.CmdNowUse,
		Short: config.CmdNowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.clock
			if ntpServer != "" {
				slog.Debug(config.MsgClockQuery,
					config.LogKeyComponent, config.CompCLI,
					config.LogKeyServer, ntpServer)
				p = sysclock.NewNTP(ntpServer)
			}

			now, err := local.Now(p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, now.Format(pattern))
			return err
		},
	}
	cmd.Flags().StringVar(&ntpServer, config.FlagNTP, "", config.FlagDescNTP)
	cmd.Flags().Lookup(config.FlagNTP).NoOptDefVal = config.DefaultNTPServer
	cmd.Flags().StringVar(&pattern, config.FlagFormat, config.DateTimeFormatISO, config.FlagDescFormat)
	return cmd
}

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdDiffUse,
		Short: config.CmdDiffShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := date.Parse(args[0])
			if err != nil {
				return err
			}
			second, err := date.Parse(args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, first.DiffInDays(second))
			return err
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var days, months, years int64
	var pattern string

	cmd := &cobra.Command{
		Use:   config.CmdAddUse,
		Short: config.CmdAddShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := date.Parse(args[0])
			if err != nil {
				return err
			}
			// Years, then months, then days: 2024-02-29 +1y +1d is 2025-03-01.
			d = d.AddYears(years).AddMonths(months).AddDays(days)
			_, err = fmt.Fprintln(a.out, d.Format(pattern))
			return err
		},
	}
	cmd.Flags().Int64Var(&days, config.FlagDays, 0, config.FlagDescDays)
	cmd.Flags().Int64Var(&months, config.FlagMonths, 0, config.FlagDescMonths)
	cmd.Flags().Int64Var(&years, config.FlagYears, 0, config.FlagDescYears)
	cmd.Flags().StringVar(&pattern, config.FlagFormat, config.DateFormatISO, config.FlagDescFormat)
	return cmd
}

func newTimeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdTimeUse,
		Short: config.CmdTimeShort,
	}

	var hours, minutes, seconds int64
	add := &cobra.Command{
		Use:   config.CmdTimeAddUse,
		Short: config.CmdTimeAddShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := clock.Parse(args[0])
			if err != nil {
				return err
			}
			t = t.AddHours(hours).AddMinutes(minutes).AddSeconds(seconds)
			_, err = fmt.Fprintln(a.out, t)
			return err
		},
	}
	add.Flags().Int64Var(&hours, config.FlagHours, 0, config.FlagDescHours)
	add.Flags().Int64Var(&minutes, config.FlagMinutes, 0, config.FlagDescMinutes)
	add.Flags().Int64Var(&seconds, config.FlagSeconds, 0, config.FlagDescSeconds)

	diff := &cobra.Command{
		Use:   config.CmdTimeDiffUse,
		Short: config.CmdTimeDiffShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := clock.Parse(args[0])
			if err != nil {
				return err
			}
			second, err := clock.Parse(args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, first.DiffInSeconds(second))
			return err
		},
	}

	cmd.AddCommand(add, diff)
	return cmd
}

func newBirthdaysCmd(a *app) *cobra.Command {
	var icsPath, reminder string

	cmd := &cobra.Command{
		Use:   config.CmdBirthdaysUse,
		Short: config.CmdBirthdaysShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := &engine.Generator{Clock: a.clock}
			if reminder != "" {
				lead, err := clock.Parse(reminder)
				if err != nil {
					return err
				}
				gen.Reminder = lead
			}

			ics, entries, err := gen.GenerateFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			for _, e := range entries {
				if e.YearKnown && e.AgeNext > 0 {
					_, err = fmt.Fprintf(a.out, config.OutputBirthdayWithAge, e.NextOccurrence, e.DaysUntil, e.Name, e.AgeNext)
				} else {
					_, err = fmt.Fprintf(a.out, config.OutputBirthday, e.NextOccurrence, e.DaysUntil, e.Name)
				}
				if err != nil {
					return err
				}
			}

			if icsPath == "" {
				return nil
			}
			if err := os.WriteFile(icsPath, ics, config.FilePermUserRW); err != nil {
				return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
			}
			slog.Info(config.MsgCalendarSaved,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyFile, icsPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&icsPath, config.FlagICS, "", config.FlagDescICS)
	cmd.Flags().StringVar(&reminder, config.FlagReminder, "", config.FlagDescReminder)
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	var refresh time.Duration

	cmd := &cobra.Command{
		Use:   config.CmdServeUse,
		Short: config.CmdServeShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gen := &engine.Generator{Clock: a.clock}
			srv := server.NewCalendarServer(addr, a.clock)

			// The first read must succeed; later failures keep the last good feed.
			ics, _, err := gen.GenerateFile(ctx, args[0])
			if err != nil {
				return err
			}
			srv.Update(ics)

			go refreshLoop(ctx, gen, srv, args[0], refresh)
			return srv.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, config.FlagAddr, config.DefaultServeAddr, config.FlagDescAddr)
	cmd.Flags().DurationVar(&refresh, config.FlagRefresh, config.DefaultRefresh, config.FlagDescRefresh)
	return cmd
}

// refreshLoop reads path again every interval until ctx is done.
func refreshLoop(ctx context.Context, gen *engine.Generator, srv *server.CalendarServer, path string, every time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ics, _, err := gen.GenerateFile(ctx, path)
			if err != nil {
				slog.Error(config.ErrRefresh,
					config.LogKeyComponent, config.CompCLI,
					config.LogKeyFile, path,
					config.LogKeyError, err)
				continue
			}
			srv.Update(ics)
		}
	}
}
