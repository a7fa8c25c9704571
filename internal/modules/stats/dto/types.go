package dto

import "time"

type SummaryInput struct {
	Weeks int
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
