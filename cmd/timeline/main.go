package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"timeline/internal/bootstrap"
	schedulein "timeline/internal/modules/schedule/adapter/in"
	"timeline/internal/platform/config"
	"timeline/internal/platform/fsutil"
	"timeline/internal/platform/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	home     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "timeline",
		Short:         "Weekly and dated schedule tracker",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.home, "home", ".", "directory holding timeline.json")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug|info|error (defaults to settings)")

	root.AddCommand(newReportCmd(flags))
	root.AddCommand(newAddCmd(flags))
	root.AddCommand(newShellCmd(flags))
	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newAgendaCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newFindCmd(flags))
	root.AddCommand(newReindexCmd(flags))
	root.AddCommand(newWatchCmd(flags))
	return root
}

func loadApp(flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.New(flags.home)
	if err != nil {
		return nil, err
	}
	settings, err := bootstrap.LoadSettings(cfg)
	if err != nil {
		return nil, err
	}
	level := settings.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	log.SetLevel(log.ParseLevel(level))
	return bootstrap.New(cfg, settings)
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print what is ongoing and what is next today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, flags)
		},
	}
}

func runReport(cmd *cobra.Command, flags *globalFlags) error {
	app, err := loadApp(flags)
	if err != nil {
		return err
	}
	defer app.Close()
	report, err := app.ScheduleCLI.Report(cmd.Context())
	if err != nil {
		return err
	}
	return schedulein.WriteReport(cmd.OutOrStdout(), report)
}

func newAddCmd(flags *globalFlags) *cobra.Command {
	var yes bool
	add := &cobra.Command{
		Use:   "add <week|day> <when> <begin-end> <event>",
		Short: "Add one entry after confirmation",
		Example: "  timeline add week Thr 13:30-15:30 review\n" +
			"  timeline add day tomorrow 9:00 10:00 dentist\n" +
			"  timeline add day nextweek Mon 9:00-9:15 standup\n" +
			"  timeline add -- day -1 18:00-19:00 call",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()
			pending, err := app.ScheduleCLI.Stage(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, pending.Summary)
			if !yes {
				ok, err := schedulein.Confirm(bufio.NewReader(cmd.InOrStdin()), out)
				if err != nil {
					return fmt.Errorf("confirmation: %w", err)
				}
				if !ok {
					return nil
				}
			}
			if _, err := app.ScheduleCLI.Commit(ctx, pending); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, "Adding success.")
			return nil
		},
	}
	add.Flags().BoolVarP(&yes, "yes", "y", false, "skip the y/n confirmation")
	return add
}

func newShellCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Add entries interactively until an empty line or exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			shell := schedulein.NewShell(app.ScheduleCLI, cmd.InOrStdin(), cmd.OutOrStdout())
			if err := shell.Run(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Exit.")
			return nil
		},
	}
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the live terminal dashboard",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func newAgendaCmd(flags *globalFlags) *cobra.Command {
	var days int
	agenda := &cobra.Command{
		Use:   "agenda",
		Short: "List upcoming occurrences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if days <= 0 {
				days = app.Settings.HorizonDays
			}
			occurrences, err := app.ScheduleCLI.Agenda(cmd.Context(), days)
			if err != nil {
				return err
			}
			if len(occurrences) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing scheduled")
				return nil
			}
			return schedulein.WriteAgenda(cmd.OutOrStdout(), occurrences)
		},
	}
	agenda.Flags().IntVar(&days, "days", 0, "number of days (defaults to settings horizon_days)")
	return agenda
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	var outPath string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export the schedule as iCalendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if outPath == "" {
				_, err := app.ScheduleCLI.Export(cmd.Context(), cmd.OutOrStdout())
				return err
			}
			var buf bytes.Buffer
			res, err := app.ScheduleCLI.Export(cmd.Context(), &buf)
			if err != nil {
				return err
			}
			if err := fsutil.WriteFileAtomic(outPath, buf.Bytes(), 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d events to %s\n", res.Events, outPath)
			return nil
		},
	}
	export.Flags().StringVarP(&outPath, "out", "o", "", "write to file instead of stdout")
	return export
}

func newFindCmd(flags *globalFlags) *cobra.Command {
	var limit int
	find := &cobra.Command{
		Use:   "find <text>",
		Short: "Search entries by event label",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			entries, err := app.ScheduleCLI.Find(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			return schedulein.WriteEntries(cmd.OutOrStdout(), entries)
		},
	}
	find.Flags().IntVar(&limit, "limit", 20, "maximum results")
	return find
}

func newReindexCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the search index from timeline.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.ScheduleCLI.Reindex(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex complete")
			return nil
		},
	}
}

func newWatchCmd(flags *globalFlags) *cobra.Command {
	var refresh string
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Print the report on a cron schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if refresh == "" {
				refresh = app.Settings.Refresh
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return schedulein.NewWatcher(app.ScheduleCLI, cmd.OutOrStdout(), refresh).Run(ctx)
		},
	}
	watch.Flags().StringVar(&refresh, "refresh", "", "cron spec (defaults to settings refresh)")
	return watch
}
