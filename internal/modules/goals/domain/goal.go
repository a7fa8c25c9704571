package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"stringlog/internal/platform/calendar"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func (p Period) Validate() error {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return nil
	default:
		return fmt.Errorf("unsupported period %q", string(p))
	}
}

const MaxProgress = 100.0

// Goal caches Progress; it is rewritten by recomputation, not by users.
type Goal struct {
	ID          string
	Title       string
	TargetHours float64
	Period      Period
	Progress    float64
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// Completed holds when either the cached progress reached 100 or the user
// marked the goal done. The two are independent.
func (g Goal) Completed() bool {
	return g.Progress >= MaxProgress || g.CompletedAt != nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if !(g.TargetHours > 0) || math.IsInf(g.TargetHours, 0) {
		return fmt.Errorf("target hours must be positive")
	}
	if g.Progress < 0 || g.Progress > MaxProgress {
		return fmt.Errorf("progress must be within [0,100]")
	}
	return g.Period.Validate()
}

type GoalPatch struct {
	Title       *string
	TargetHours *float64
	Period      *Period
}

func (p GoalPatch) Apply(g Goal) Goal {
	if p.Title != nil {
		g.Title = strings.TrimSpace(*p.Title)
	}
	if p.TargetHours != nil {
		g.TargetHours = *p.TargetHours
	}
	if p.Period != nil {
		g.Period = *p.Period
	}
	return g
}

// Sample is a session reduced to what progress needs.
type Sample struct {
	StartedAt   time.Time
	DurationSec int
}

// Window returns the half-open interval [start, end) of the period that
// contains now, in now's location.
func Window(period Period, now time.Time) (time.Time, time.Time) {
	switch period {
	case PeriodDaily:
		start := calendar.StartOfDay(now)
		return start, start.AddDate(0, 0, 1)
	case PeriodMonthly:
		start := calendar.StartOfMonth(now)
		return start, start.AddDate(0, 1, 0)
	default:
		start := calendar.StartOfWeek(now)
		return start, start.AddDate(0, 0, 7)
	}
}

// ComputeProgress is the share of the target practiced inside the current
// window, capped at 100. A non-positive target counts as already met.
func ComputeProgress(goal Goal, samples []Sample, now time.Time) float64 {
	if goal.TargetHours <= 0 {
		return MaxProgress
	}
	start, end := Window(goal.Period, now)
	seconds := 0
	for _, s := range samples {
		if calendar.Within(s.StartedAt, start, end) {
			seconds += s.DurationSec
		}
	}
	progress := float64(seconds) / 3600 / goal.TargetHours * 100
	return math.Min(progress, MaxProgress)
}
