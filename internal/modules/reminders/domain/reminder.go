package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Reminder is a recurring weekly nudge. Days are weekdays, Sunday = 0.
type Reminder struct {
	ID        string
	Title     string
	Time      string
	Days      []int
	Enabled   bool
	CreatedAt time.Time
}

// ParseClock reads an "HH:MM" 24-hour time of day.
func ParseClock(raw string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("time %q must be HH:MM", raw)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("time %q has an invalid hour", raw)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q has an invalid minute", raw)
	}
	return hour, minute, nil
}

// NormalizeDays sorts days and rejects out-of-range or repeated values.
func NormalizeDays(days []int) ([]int, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("at least one day is required")
	}
	out := append([]int(nil), days...)
	sort.Ints(out)
	for i, d := range out {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("day %d is outside 0-6", d)
		}
		if i > 0 && out[i-1] == d {
			return nil, fmt.Errorf("day %d is repeated", d)
		}
	}
	return out, nil
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if _, _, err := ParseClock(r.Time); err != nil {
		return err
	}
	_, err := NormalizeDays(r.Days)
	return err
}

type ReminderPatch struct {
	Title   *string
	Time    *string
	Days    []int
	Enabled *bool
}

func (p ReminderPatch) Apply(r Reminder) Reminder {
	if p.Title != nil {
		r.Title = strings.TrimSpace(*p.Title)
	}
	if p.Time != nil {
		r.Time = strings.TrimSpace(*p.Time)
	}
	if p.Days != nil {
		r.Days = append([]int(nil), p.Days...)
	}
	if p.Enabled != nil {
		r.Enabled = *p.Enabled
	}
	return r
}

// Next returns the first occurrence strictly after now, in now's location.
func (r Reminder) Next(now time.Time) (time.Time, bool) {
	hour, minute, err := ParseClock(r.Time)
	if err != nil {
		return time.Time{}, false
	}
	days := make(map[int]bool, len(r.Days))
	for _, d := range r.Days {
		days[d] = true
	}
	for offset := 0; offset <= 7; offset++ {
		day := now.AddDate(0, 0, offset)
		if !days[int(day.Weekday())] {
			continue
		}
		at := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
		if at.After(now) {
			return at, true
		}
	}
	return time.Time{}, false
}

type Occurrence struct {
	Reminder Reminder
	At       time.Time
}

// Upcoming lists the next occurrence of each enabled reminder, soonest first.
func Upcoming(reminders []Reminder, now time.Time, limit int) []Occurrence {
	out := make([]Occurrence, 0, len(reminders))
	for _, r := range reminders {
		if !r.Enabled {
			continue
		}
		if at, ok := r.Next(now); ok {
			out = append(out, Occurrence{Reminder: r, At: at})
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].At.Equal(out[b].At) {
			return out[a].At.Before(out[b].At)
		}
		return out[a].Reminder.Title < out[b].Reminder.Title
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FormatDays renders days as a comma separated list, e.g. "1,3,5".
func FormatDays(days []int) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

func ParseDays(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var days []int
	for _, part := range strings.Split(raw, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("day %q is not a number", part)
		}
		days = append(days, d)
	}
	return days, nil
}
