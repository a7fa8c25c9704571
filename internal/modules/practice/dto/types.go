package dto

import "time"

type Session struct {
	ID          string
	StartedAt   time.Time
	EndedAt     time.Time
	DurationSec int
	Notes       string
	SongID      string
	Instrument  string
	CreatedAt   time.Time
}

// ListFilter narrows ListSessions. Query matches the title or artist of the
// session's song, case-insensitively.
type ListFilter struct {
	SongID     string
	Instrument string
	Query      string
	Limit      int
}

type StopInput struct {
	Notes      string
	SongID     string
	Instrument string
}

type LogInput struct {
	StartedAt   time.Time
	EndedAt     time.Time
	DurationSec int
	Notes       string
	SongID      string
	Instrument  string
}

type UpdateInput struct {
	ID          string
	StartedAt   *time.Time
	EndedAt     *time.Time
	DurationSec *int
	Notes       *string
	SongID      *string
	Instrument  *string
}

type TimerOutput struct {
	State      string
	StartedAt  time.Time
	ElapsedSec int
	Running    bool
}

type JournalNote struct {
	Path string
	Song string
	Body string
}

type StopOutput struct {
	Session     Session
	JournalPath string
}
