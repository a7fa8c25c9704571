package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stringlog/internal/bootstrap"
	metronomedto "stringlog/internal/modules/metronome/dto"
	remindersdto "stringlog/internal/modules/reminders/dto"
	"stringlog/internal/platform/config"
)

var weekdayNames = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

func newMetronomeCmd(dataDir *string) *cobra.Command {
	var bpm, volume int
	var duration time.Duration
	metronome := &cobra.Command{
		Use:   "metronome",
		Short: "Play a click track until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if !cmd.Flags().Changed("bpm") {
					bpm = app.Preferences.DefaultBPM
				}
				if !cmd.Flags().Changed("volume") {
					volume = app.Preferences.DefaultVolume
				}
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()

				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "%d bpm, volume %d%%, ctrl+c to stop\n", bpm, volume)
				_, err := app.MetronomeCLI.Run(ctx, bpm, volume, duration, func(s metronomedto.State) {
					if s.Running && s.CurrentBeat >= 0 {
						mark := "·"
						if s.CurrentBeat == 0 {
							mark = "●"
						}
						_, _ = fmt.Fprintf(out, "\r%s %d/%d ", mark, s.CurrentBeat+1, s.BeatsPerMeasure)
					}
				})
				_, _ = fmt.Fprintln(out)
				return err
			})
		},
	}
	metronome.Flags().IntVar(&bpm, "bpm", 120, "tempo 40..240")
	metronome.Flags().IntVar(&volume, "volume", 75, "volume 0..100")
	metronome.Flags().DurationVar(&duration, "duration", 0, "stop after this long (0 plays until ctrl+c)")
	return metronome
}

func newReminderCmd(dataDir *string) *cobra.Command {
	reminder := &cobra.Command{Use: "reminder", Short: "Practice reminders"}

	var at, days string
	add := &cobra.Command{
		Use:   "add <title> --at 18:30 [--days mon,wed,fri]",
		Short: "Add a weekly reminder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseWeekdays(days)
			if err != nil {
				return err
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				r, err := app.RemindersCLI.Add(ctx, strings.Join(args, " "), at, parsed)
				if err != nil {
					return err
				}
				printReminder(cmd, r)
				return nil
			})
		},
	}
	add.Flags().StringVar(&at, "at", "", "time of day HH:MM")
	add.Flags().StringVar(&days, "days", "daily", "comma separated weekdays (sun..sat) or daily")

	list := &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				reminders, err := app.RemindersCLI.List(ctx)
				if err != nil {
					return err
				}
				if len(reminders) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no reminders")
				}
				for _, r := range reminders {
					printReminder(cmd, r)
				}
				return nil
			})
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Enable or disable a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				r, err := app.RemindersCLI.Toggle(ctx, args[0])
				if err != nil {
					return err
				}
				printReminder(cmd, r)
				return nil
			})
		},
	}

	var newTitle, newAt, newDays string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := remindersdto.UpdateReminderInput{ID: args[0]}
			if cmd.Flags().Changed("title") {
				input.Title = &newTitle
			}
			if cmd.Flags().Changed("at") {
				input.Time = &newAt
			}
			if cmd.Flags().Changed("days") {
				parsed, err := parseWeekdays(newDays)
				if err != nil {
					return err
				}
				input.Days = parsed
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				r, err := app.RemindersCLI.Update(ctx, input)
				if err != nil {
					return err
				}
				printReminder(cmd, r)
				return nil
			})
		},
	}
	update.Flags().StringVar(&newTitle, "title", "", "title")
	update.Flags().StringVar(&newAt, "at", "", "time of day HH:MM")
	update.Flags().StringVar(&newDays, "days", "", "comma separated weekdays or daily")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.RemindersCLI.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}

	var limit int
	next := &cobra.Command{
		Use:   "next",
		Short: "Show the upcoming reminders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				upcoming, err := app.RemindersCLI.Next(ctx, limit)
				if err != nil {
					return err
				}
				if len(upcoming) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing scheduled")
				}
				for _, o := range upcoming {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", o.At.Local().Format("Mon Jan 2 15:04"), o.Reminder.Title)
				}
				return nil
			})
		},
	}
	next.Flags().IntVar(&limit, "limit", 5, "how many occurrences")

	reminder.AddCommand(add, list, toggle, update, del, next)
	return reminder
}

func parseWeekdays(raw string) ([]int, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == "daily" {
		return []int{0, 1, 2, 3, 4, 5, 6}, nil
	}
	var days []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		found := false
		for i, name := range weekdayNames {
			if strings.HasPrefix(part, name) {
				days = append(days, i)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
	}
	return days, nil
}

func printReminder(cmd *cobra.Command, r remindersdto.Reminder) {
	state := "on"
	if !r.Enabled {
		state = "off"
	}
	names := make([]string, 0, len(r.Days))
	for _, d := range r.Days {
		if d >= 0 && d < len(weekdayNames) {
			names = append(names, weekdayNames[d])
		}
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Time, strings.Join(names, ","), state, r.Title)
}

func newExportCmd(dataDir *string) *cobra.Command {
	export := &cobra.Command{Use: "export", Short: "Export data"}

	var output string
	jsonCmd := &cobra.Command{
		Use:   "json",
		Short: "Export everything as a JSON snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) (err error) {
				w, done, err := openOutput(cmd, output)
				if err != nil {
					return err
				}
				defer func() { err = errors.Join(err, done()) }()
				sum, err := app.TransferCLI.ExportJSON(ctx, w)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "exported %d sessions, %d songs, %d goals\n", sum.Sessions, sum.Songs, sum.Goals)
				return nil
			})
		},
	}
	jsonCmd.Flags().StringVarP(&output, "output", "o", "", "file to write (stdout when empty)")

	csvCmd := &cobra.Command{
		Use:   "csv <sessions|songs>",
		Short: "Export sessions or songs as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) (err error) {
				w, done, err := openOutput(cmd, output)
				if err != nil {
					return err
				}
				defer func() { err = errors.Join(err, done()) }()
				n, err := app.TransferCLI.ExportCSV(ctx, args[0], w)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "exported %d %s\n", n, args[0])
				return nil
			})
		},
	}
	csvCmd.Flags().StringVarP(&output, "output", "o", "", "file to write (stdout when empty)")

	export.AddCommand(jsonCmd, csvCmd)
	return export
}

func newImportCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace all sessions, songs and goals with a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				sum, err := app.TransferCLI.Import(ctx, f)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d sessions, %d songs, %d goals\n", sum.Sessions, sum.Songs, sum.Goals)
				return nil
			})
		},
	}
}

func newResetCmd(dataDir *string) *cobra.Command {
	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete all sessions, songs, goals and reminders and restore default preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset deletes everything and cannot be undone; pass --yes to confirm")
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				sum, err := app.TransferCLI.Clear(ctx)
				if err != nil {
					return err
				}
				reminders, err := app.RemindersCLI.List(ctx)
				if err != nil {
					return err
				}
				for _, r := range reminders {
					if err := app.RemindersCLI.Delete(ctx, r.ID); err != nil {
						return err
					}
				}
				if _, err := app.PracticeCLI.Reset(ctx); err != nil {
					return err
				}
				if err := app.SavePreferences(config.DefaultPreferences()); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d sessions, %d songs, %d goals, %d reminders\n",
					sum.Sessions, sum.Songs, sum.Goals, len(reminders))
				return nil
			})
		},
	}
	reset.Flags().BoolVar(&yes, "yes", false, "confirm deleting all data")
	return reset
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
