package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stringlog/internal/bootstrap"
	practicedto "stringlog/internal/modules/practice/dto"
)

func newPracticeCmd(dataDir *string) *cobra.Command {
	practice := &cobra.Command{Use: "practice", Short: "Practice timer and session log"}

	timerCmd := func(use, short string, op func(app *bootstrap.App) func(context.Context) (practicedto.TimerOutput, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
					out, err := op(app)(ctx)
					if err != nil {
						return err
					}
					printTimer(cmd, out)
					return nil
				})
			},
		}
	}
	practice.AddCommand(
		timerCmd("start", "Start the timer", func(app *bootstrap.App) func(context.Context) (practicedto.TimerOutput, error) {
			return app.PracticeCLI.Start
		}),
		timerCmd("pause", "Pause the running timer", func(app *bootstrap.App) func(context.Context) (practicedto.TimerOutput, error) {
			return app.PracticeCLI.Pause
		}),
		timerCmd("resume", "Resume the paused timer", func(app *bootstrap.App) func(context.Context) (practicedto.TimerOutput, error) {
			return app.PracticeCLI.Resume
		}),
		timerCmd("reset", "Discard the timer without saving", func(app *bootstrap.App) func(context.Context) (practicedto.TimerOutput, error) {
			return app.PracticeCLI.Reset
		}),
		timerCmd("status", "Show the timer", func(app *bootstrap.App) func(context.Context) (practicedto.TimerOutput, error) {
			return app.PracticeCLI.Status
		}),
	)

	var notes, songID, instrument string
	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop the timer and save the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if instrument == "" {
					instrument = app.Preferences.DefaultInstrument
				}
				out, err := app.PracticeCLI.Stop(ctx, notes, songID, instrument)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved session %s (%s)\n", out.Session.ID, formatSeconds(out.Session.DurationSec))
				if out.JournalPath != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "journal: %s\n", out.JournalPath)
				}
				return nil
			})
		},
	}
	stop.Flags().StringVar(&notes, "notes", "", "session notes")
	stop.Flags().StringVar(&songID, "song", "", "song id practiced")
	stop.Flags().StringVar(&instrument, "instrument", "", "instrument (defaults to preferences)")

	var logAt string
	var logDuration time.Duration
	logCmd := &cobra.Command{
		Use:   "log --duration 30m",
		Short: "Record a session practiced away from the timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			started := time.Now().Add(-logDuration)
			if strings.TrimSpace(logAt) != "" {
				t, err := time.ParseInLocation(timeLayout, logAt, time.Local)
				if err != nil {
					return fmt.Errorf("--at must look like %q", timeLayout)
				}
				started = t
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if instrument == "" {
					instrument = app.Preferences.DefaultInstrument
				}
				s, err := app.PracticeCLI.Log(ctx, started, logDuration, notes, songID, instrument)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged session %s (%s)\n", s.ID, formatSeconds(s.DurationSec))
				return nil
			})
		},
	}
	logCmd.Flags().StringVar(&logAt, "at", "", "start time "+timeLayout+" (defaults to now minus duration)")
	logCmd.Flags().DurationVar(&logDuration, "duration", 0, "how long you practiced")
	logCmd.Flags().StringVar(&notes, "notes", "", "session notes")
	logCmd.Flags().StringVar(&songID, "song", "", "song id practiced")
	logCmd.Flags().StringVar(&instrument, "instrument", "", "instrument (defaults to preferences)")

	var filter practicedto.ListFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				sessions, err := app.PracticeCLI.History(ctx, filter)
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range sessions {
					printSession(cmd, s)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&filter.SongID, "song", "", "only sessions for this song id")
	list.Flags().StringVar(&filter.Instrument, "instrument", "", "only sessions on this instrument")
	list.Flags().StringVarP(&filter.Query, "query", "q", "", "match song title or artist")
	list.Flags().IntVar(&filter.Limit, "limit", 20, "maximum sessions (0 for all)")

	var editNotes, editSong, editInstrument string
	var editDuration time.Duration
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := practicedto.UpdateInput{ID: args[0]}
			flags := cmd.Flags()
			if flags.Changed("notes") {
				input.Notes = &editNotes
			}
			if flags.Changed("song") {
				input.SongID = &editSong
			}
			if flags.Changed("instrument") {
				input.Instrument = &editInstrument
			}
			if flags.Changed("duration") {
				sec := int(editDuration / time.Second)
				input.DurationSec = &sec
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.PracticeCLI.Edit(ctx, input)
				if err != nil {
					return err
				}
				printSession(cmd, s)
				return nil
			})
		},
	}
	edit.Flags().StringVar(&editNotes, "notes", "", "new notes")
	edit.Flags().StringVar(&editSong, "song", "", "new song id (empty to clear)")
	edit.Flags().StringVar(&editInstrument, "instrument", "", "new instrument")
	edit.Flags().DurationVar(&editDuration, "duration", 0, "new duration")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.PracticeCLI.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}

	journal := &cobra.Command{
		Use:   "journal <id>",
		Short: "Print the markdown note written when a session was stopped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				note, err := app.PracticeCLI.Journal(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s", note.Path, note.Body)
				return nil
			})
		},
	}

	practice.AddCommand(stop, logCmd, list, edit, del, journal)
	return practice
}

func printTimer(cmd *cobra.Command, out practicedto.TimerOutput) {
	line := fmt.Sprintf("timer %s %s", out.State, formatSeconds(out.ElapsedSec))
	if !out.StartedAt.IsZero() {
		line += " since " + out.StartedAt.Local().Format(timeLayout)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
}

func printSession(cmd *cobra.Command, s practicedto.Session) {
	instrument := s.Instrument
	if instrument == "" {
		instrument = "unspecified"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\t%s\n",
		s.ID, s.StartedAt.Local().Format(timeLayout), formatSeconds(s.DurationSec), instrument, s.SongID, s.Notes)
}

func formatSeconds(sec int) string {
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, sec%3600/60, sec%60)
}
