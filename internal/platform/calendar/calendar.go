// Package calendar holds local-time boundary helpers. Every function works in
// the location of its argument, and steps whole days with AddDate so month
// ends and DST transitions follow the calendar instead of 24h arithmetic.
package calendar

import "time"

const DateLayout = "2006-01-02"

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Sunday midnight on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// DayKey names the calendar day t falls on in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// Within reports start <= t < end.
func Within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
