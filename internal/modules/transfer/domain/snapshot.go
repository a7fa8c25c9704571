package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Version is the snapshot format written by Export and accepted by Import.
const Version = 1

// TimeLayout is RFC 3339 in UTC with millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

var validate = newValidator()

// newValidator adds "nonblank", which rejects strings that are empty once
// surrounding whitespace is trimmed.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

func OptionalTimestamp(t *time.Time) *Timestamp {
	if t == nil {
		return nil
	}
	ts := NewTimestamp(*t)
	return &ts
}

// Ptr returns the instant or nil for an absent timestamp.
func (t *Timestamp) Ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

func (t Timestamp) String() string {
	return t.UTC().Format(TimeLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return fmt.Errorf("timestamp %q: %w", raw, err)
	}
	t.Time = parsed.UTC()
	return nil
}

type Session struct {
	ID          string    `json:"id" validate:"nonblank"`
	StartedAt   Timestamp `json:"started_at"`
	EndedAt     Timestamp `json:"ended_at"`
	DurationSec int       `json:"duration_seconds" validate:"min=0"`
	Notes       string    `json:"notes"`
	SongID      string    `json:"song_id"`
	Instrument  string    `json:"instrument" validate:"omitempty,oneof=guitar bass violin cello ukulele other"`
	CreatedAt   Timestamp `json:"created_at"`
}

type Song struct {
	ID               string     `json:"id" validate:"nonblank"`
	Title            string     `json:"title" validate:"nonblank"`
	Artist           string     `json:"artist"`
	Album            string     `json:"album"`
	AlbumArt         string     `json:"album_art"`
	SpotifyID        string     `json:"spotify_id"`
	SpotifyURL       string     `json:"spotify_url"`
	Status           string     `json:"status" validate:"oneof=mastered learning wishlist"`
	TotalPracticeSec int        `json:"total_practice_seconds" validate:"min=0"`
	Difficulty       int        `json:"difficulty" validate:"min=0,max=5"`
	Notes            string     `json:"notes"`
	CreatedAt        Timestamp  `json:"created_at"`
	LastPracticedAt  *Timestamp `json:"last_practiced_at"`
}

type Goal struct {
	ID          string     `json:"id" validate:"nonblank"`
	Title       string     `json:"title" validate:"nonblank"`
	TargetHours float64    `json:"target_hours" validate:"gt=0"`
	Period      string     `json:"period" validate:"oneof=daily weekly monthly"`
	Progress    float64    `json:"progress" validate:"min=0,max=100"`
	CreatedAt   Timestamp  `json:"created_at"`
	CompletedAt *Timestamp `json:"completed_at"`
}

type Snapshot struct {
	Version    int       `json:"version" validate:"min=1,max=1"`
	ExportedAt Timestamp `json:"exported_at"`
	Sessions   []Session `json:"sessions" validate:"dive"`
	Songs      []Song    `json:"songs" validate:"dive"`
	Goals      []Goal    `json:"goals" validate:"dive"`
}

// Validate checks the whole snapshot before anything is replaced.
func (s Snapshot) Validate() error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	seen := map[string]bool{}
	for i, session := range s.Sessions {
		if session.StartedAt.IsZero() {
			return fmt.Errorf("sessions[%d]: start time is required", i)
		}
		if !session.EndedAt.IsZero() && session.EndedAt.Before(session.StartedAt.Time) {
			return fmt.Errorf("sessions[%d]: end time precedes start time", i)
		}
		if err := unique(seen, "session", session.ID); err != nil {
			return err
		}
	}
	for _, song := range s.Songs {
		if strings.TrimSpace(song.Title) == "" {
			return fmt.Errorf("song %s: title is required", song.ID)
		}
		if err := unique(seen, "song", song.ID); err != nil {
			return err
		}
	}
	for _, goal := range s.Goals {
		if math.IsInf(goal.TargetHours, 0) || math.IsNaN(goal.TargetHours) {
			return fmt.Errorf("goal %s: target hours must be finite", goal.ID)
		}
		if err := unique(seen, "goal", goal.ID); err != nil {
			return err
		}
	}
	return nil
}

func unique(seen map[string]bool, kind, id string) error {
	key := kind + "/" + id
	if seen[key] {
		return fmt.Errorf("duplicate %s id %q", kind, id)
	}
	seen[key] = true
	return nil
}
