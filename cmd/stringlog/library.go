package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stringlog/internal/bootstrap"
	goalsdto "stringlog/internal/modules/goals/dto"
	repertoiredto "stringlog/internal/modules/repertoire/dto"
)

func newStatsCmd(dataDir *string) *cobra.Command {
	var weeks int
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Practice totals, streak and weekly hours",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if !cmd.Flags().Changed("weeks") {
					weeks = app.Preferences.DashboardWeeks
				}
				s, err := app.StatsCLI.Summary(ctx, weeks)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "total:     %.2f h over %d sessions\n", s.TotalHours, s.TotalSessions)
				_, _ = fmt.Fprintf(out, "this week: %.2f h\nlast week: %.2f h\n", s.CurrentWeekHours, s.LastWeekHours)
				_, _ = fmt.Fprintf(out, "streak:    %d days\n", s.StreakDays)
				if s.LastPracticeAt != nil {
					_, _ = fmt.Fprintf(out, "last:      %s\n", s.LastPracticeAt.Local().Format(timeLayout))
				}
				_, _ = fmt.Fprintln(out, "\nweek of\thours")
				for _, w := range s.Weekly {
					_, _ = fmt.Fprintf(out, "%s\t%.2f\t%s\n", w.WeekStart.Format("2006-01-02"), w.TotalHours, strings.Repeat("█", int(w.TotalHours*2+0.5)))
				}
				if len(s.ByInstrument) > 0 {
					_, _ = fmt.Fprintln(out, "\ninstrument\thours")
					for _, ih := range s.ByInstrument {
						_, _ = fmt.Fprintf(out, "%s\t%.2f\n", ih.Instrument, ih.Hours)
					}
				}
				return nil
			})
		},
	}
	stats.Flags().IntVar(&weeks, "weeks", 8, "weeks in the chart")
	return stats
}

func newGoalCmd(dataDir *string) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Practice goals"}

	var target float64
	var period string
	add := &cobra.Command{
		Use:   "add <title> --target 5 --period weekly",
		Short: "Add a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				g, err := app.GoalsCLI.Add(ctx, strings.Join(args, " "), target, period)
				if err != nil {
					return err
				}
				printGoal(cmd, g)
				return nil
			})
		},
	}
	add.Flags().Float64Var(&target, "target", 0, "target hours")
	add.Flags().StringVar(&period, "period", "weekly", "daily|weekly|monthly")

	list := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				goals, err := app.GoalsCLI.List(ctx)
				if err != nil {
					return err
				}
				if len(goals) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no goals")
				}
				for _, g := range goals {
					printGoal(cmd, g)
				}
				return nil
			})
		},
	}

	var title, newPeriod string
	var newTarget float64
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a goal's title, target or period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := goalsdto.UpdateGoalInput{ID: args[0]}
			if cmd.Flags().Changed("title") {
				input.Title = &title
			}
			if cmd.Flags().Changed("target") {
				input.TargetHours = &newTarget
			}
			if cmd.Flags().Changed("period") {
				input.Period = &newPeriod
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				g, err := app.GoalsCLI.Update(ctx, input)
				if err != nil {
					return err
				}
				printGoal(cmd, g)
				return nil
			})
		},
	}
	update.Flags().StringVar(&title, "title", "", "new title")
	update.Flags().Float64Var(&newTarget, "target", 0, "new target hours")
	update.Flags().StringVar(&newPeriod, "period", "", "daily|weekly|monthly")

	complete := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a goal complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				g, err := app.GoalsCLI.Complete(ctx, args[0])
				if err != nil {
					return err
				}
				printGoal(cmd, g)
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.GoalsCLI.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}

	recompute := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute progress of open goals from the session history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				n, err := app.GoalsCLI.Recompute(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recomputed %d goals\n", n)
				return nil
			})
		},
	}

	goal.AddCommand(add, list, update, complete, del, recompute)
	return goal
}

func printGoal(cmd *cobra.Command, g goalsdto.Goal) {
	mark := " "
	if g.Completed {
		mark = "✓"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%.1fh %s\t%.1f%%\n", mark, g.ID, g.Title, g.TargetHours, g.Period, g.Progress)
}

func newSongCmd(dataDir *string) *cobra.Command {
	song := &cobra.Command{Use: "song", Short: "Repertoire"}

	var in repertoiredto.AddSongInput
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a song",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = strings.Join(args, " ")
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.SongsCLI.Add(ctx, in)
				if err != nil {
					return err
				}
				printSong(cmd, s)
				return nil
			})
		},
	}
	add.Flags().StringVar(&in.Artist, "artist", "", "artist")
	add.Flags().StringVar(&in.Album, "album", "", "album")
	add.Flags().StringVar(&in.Status, "status", "learning", "learning|wishlist|mastered")
	add.Flags().IntVar(&in.Difficulty, "difficulty", 0, "0..5")
	add.Flags().StringVar(&in.Notes, "notes", "", "notes")
	add.Flags().StringVar(&in.SpotifyURL, "spotify-url", "", "Spotify link")

	var status, query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List songs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				songs, err := app.SongsCLI.List(ctx, status, query)
				if err != nil {
					return err
				}
				if len(songs) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no songs")
				}
				for _, s := range songs {
					printSong(cmd, s)
				}
				counts, err := app.SongsCLI.Stats(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d songs: %d mastered, %d learning, %d wishlist\n",
					counts.Total, counts.Mastered, counts.Learning, counts.Wishlist)
				return nil
			})
		},
	}
	list.Flags().StringVar(&status, "status", "", "filter by status")
	list.Flags().StringVar(&query, "query", "", "filter by title or artist")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.SongsCLI.Show(ctx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "id: %s\ntitle: %s\nartist: %s\nalbum: %s\nstatus: %s\ndifficulty: %d\npracticed: %s\n",
					s.ID, s.Title, s.Artist, s.Album, s.Status, s.Difficulty, formatSeconds(s.TotalPracticeSec))
				if s.LastPracticedAt != nil {
					_, _ = fmt.Fprintf(out, "last practiced: %s\n", s.LastPracticedAt.Local().Format(timeLayout))
				}
				if s.SpotifyURL != "" {
					_, _ = fmt.Fprintf(out, "spotify: %s\n", s.SpotifyURL)
				}
				if s.Notes != "" {
					_, _ = fmt.Fprintf(out, "notes: %s\n", s.Notes)
				}
				return nil
			})
		},
	}

	var up repertoiredto.UpdateSongInput
	var upTitle, upArtist, upAlbum, upStatus, upNotes string
	var upDifficulty int
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			up.ID = args[0]
			flags := cmd.Flags()
			if flags.Changed("title") {
				up.Title = &upTitle
			}
			if flags.Changed("artist") {
				up.Artist = &upArtist
			}
			if flags.Changed("album") {
				up.Album = &upAlbum
			}
			if flags.Changed("status") {
				up.Status = &upStatus
			}
			if flags.Changed("notes") {
				up.Notes = &upNotes
			}
			if flags.Changed("difficulty") {
				up.Difficulty = &upDifficulty
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.SongsCLI.Update(ctx, up)
				if err != nil {
					return err
				}
				printSong(cmd, s)
				return nil
			})
		},
	}
	update.Flags().StringVar(&upTitle, "title", "", "title")
	update.Flags().StringVar(&upArtist, "artist", "", "artist")
	update.Flags().StringVar(&upAlbum, "album", "", "album")
	update.Flags().StringVar(&upStatus, "status", "", "learning|wishlist|mastered")
	update.Flags().StringVar(&upNotes, "notes", "", "notes")
	update.Flags().IntVar(&upDifficulty, "difficulty", 0, "0..5")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.SongsCLI.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}

	var addIndex int
	var addStatus string
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search Spotify tracks, optionally adding one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				tracks, err := app.SongsCLI.Search(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				if len(tracks) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tracks")
					return nil
				}
				for i, t := range tracks {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\t%s\t%s\n", i+1, t.Name, t.Artist, t.Album)
				}
				if addIndex < 1 {
					return nil
				}
				if addIndex > len(tracks) {
					return fmt.Errorf("--add must be between 1 and %d", len(tracks))
				}
				s, err := app.SongsCLI.AddTrack(ctx, tracks[addIndex-1], addStatus)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "added ")
				printSong(cmd, s)
				return nil
			})
		},
	}
	search.Flags().IntVar(&addIndex, "add", 0, "add the n-th result to the repertoire")
	search.Flags().StringVar(&addStatus, "status", "wishlist", "status for the added song")

	song.AddCommand(add, list, show, update, del, search)
	return song
}

func printSong(cmd *cobra.Command, s repertoiredto.Song) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Title, s.Artist, s.Status, formatSeconds(s.TotalPracticeSec))
}
