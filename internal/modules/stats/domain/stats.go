package domain

import (
	"fmt"
	"math"
	"sort"
	"time"

	"stringlog/internal/platform/calendar"
	apperrors "stringlog/internal/platform/errors"
)

const DefaultWeekCount = 8

// Entry is the slice of a practice session the engine reduces over.
type Entry struct {
	ID          string
	StartedAt   time.Time
	DurationSec int
	Instrument  string
}

type WeeklyData struct {
	WeekStart  time.Time
	TotalHours float64
}

type InstrumentHours struct {
	Instrument string
	Hours      float64
}

type Summary struct {
	TotalHours       float64
	CurrentWeekHours float64
	LastWeekHours    float64
	StreakDays       int
	LastPracticeAt   *time.Time
	TotalSessions    int
	Weekly           []WeeklyData
	ByInstrument     []InstrumentHours
}

// Round2 rounds half away from zero to two decimals for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TotalHours is unrounded.
func TotalHours(entries []Entry) float64 {
	sum := 0
	for _, e := range entries {
		sum += e.DurationSec
	}
	return float64(sum) / 3600
}

// CalculateStreak counts consecutive practiced days ending today, or ending
// yesterday when nothing has been logged today yet.
func CalculateStreak(entries []Entry, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}
	loc := now.Location()
	practiced := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		practiced[calendar.DayKey(e.StartedAt, loc)] = struct{}{}
	}
	day := calendar.StartOfDay(now)
	if _, ok := practiced[calendar.DayKey(day, loc)]; !ok {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for {
		if _, ok := practiced[calendar.DayKey(day, loc)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// WeeklyBuckets returns weekCount Sunday-aligned weeks, oldest first, ending
// with the week containing now.
func WeeklyBuckets(entries []Entry, weekCount int, now time.Time) []WeeklyData {
	if weekCount <= 0 {
		return []WeeklyData{}
	}
	first := calendar.StartOfWeek(now).AddDate(0, 0, -7*(weekCount-1))
	out := make([]WeeklyData, 0, weekCount)
	for i := 0; i < weekCount; i++ {
		start := first.AddDate(0, 0, 7*i)
		end := start.AddDate(0, 0, 7)
		sum := 0
		for _, e := range entries {
			if calendar.Within(e.StartedAt, start, end) {
				sum += e.DurationSec
			}
		}
		out = append(out, WeeklyData{WeekStart: start, TotalHours: Round2(float64(sum) / 3600)})
	}
	return out
}

func IsThisWeek(t, now time.Time) bool {
	start := calendar.StartOfWeek(now)
	return calendar.Within(t, start, start.AddDate(0, 0, 7))
}

func IsLastWeek(t, now time.Time) bool {
	end := calendar.StartOfWeek(now)
	return calendar.Within(t, end.AddDate(0, 0, -7), end)
}

// Validate reports the first entry that would corrupt the aggregates.
func Validate(entries []Entry) error {
	for _, e := range entries {
		if e.DurationSec < 0 {
			return fmt.Errorf("%w: session %s has negative duration %d", apperrors.ErrDataIntegrity, e.ID, e.DurationSec)
		}
		if e.StartedAt.IsZero() {
			return fmt.Errorf("%w: session %s has no start time", apperrors.ErrDataIntegrity, e.ID)
		}
	}
	return nil
}

func Summarize(entries []Entry, weekCount int, now time.Time) (Summary, error) {
	if err := Validate(entries); err != nil {
		return Summary{}, err
	}
	summary := Summary{
		TotalHours:    Round2(TotalHours(entries)),
		StreakDays:    CalculateStreak(entries, now),
		TotalSessions: len(entries),
		Weekly:        WeeklyBuckets(entries, weekCount, now),
	}
	var thisWeek, lastWeek []Entry
	byInstrument := map[string]int{}
	for _, e := range entries {
		if IsThisWeek(e.StartedAt, now) {
			thisWeek = append(thisWeek, e)
		}
		if IsLastWeek(e.StartedAt, now) {
			lastWeek = append(lastWeek, e)
		}
		if summary.LastPracticeAt == nil || e.StartedAt.After(*summary.LastPracticeAt) {
			started := e.StartedAt
			summary.LastPracticeAt = &started
		}
		instrument := e.Instrument
		if instrument == "" {
			instrument = "unspecified"
		}
		byInstrument[instrument] += e.DurationSec
	}
	summary.CurrentWeekHours = Round2(TotalHours(thisWeek))
	summary.LastWeekHours = Round2(TotalHours(lastWeek))
	for name, sec := range byInstrument {
		summary.ByInstrument = append(summary.ByInstrument, InstrumentHours{Instrument: name, Hours: Round2(float64(sec) / 3600)})
	}
	sort.Slice(summary.ByInstrument, func(a, b int) bool {
		x, y := summary.ByInstrument[a], summary.ByInstrument[b]
		if x.Hours != y.Hours {
			return x.Hours > y.Hours
		}
		return x.Instrument < y.Instrument
	})
	return summary, nil
}
