package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const SchemaVersion = 1

type Instrument string

const (
	InstrumentGuitar  Instrument = "guitar"
	InstrumentBass    Instrument = "bass"
	InstrumentViolin  Instrument = "violin"
	InstrumentCello   Instrument = "cello"
	InstrumentUkulele Instrument = "ukulele"
	InstrumentOther   Instrument = "other"
)

// Validate accepts the empty instrument: the tag is optional.
func (i Instrument) Validate() error {
	switch i {
	case "", InstrumentGuitar, InstrumentBass, InstrumentViolin, InstrumentCello, InstrumentUkulele, InstrumentOther:
		return nil
	default:
		return fmt.Errorf("unsupported instrument %q", string(i))
	}
}

// Session is one completed practice occurrence. DurationSec is authoritative
// for every aggregate; EndedAt is informational.
type Session struct {
	ID          string
	StartedAt   time.Time
	EndedAt     time.Time
	DurationSec int
	Notes       string
	SongID      string
	Instrument  Instrument
	CreatedAt   time.Time
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if s.StartedAt.IsZero() {
		return fmt.Errorf("start time is required")
	}
	if s.DurationSec < 0 {
		return fmt.Errorf("duration must be non-negative")
	}
	if !s.EndedAt.IsZero() && s.EndedAt.Before(s.StartedAt) {
		return fmt.Errorf("end time precedes start time")
	}
	return s.Instrument.Validate()
}

// SessionPatch carries an administrative edit; nil fields are left alone.
type SessionPatch struct {
	StartedAt   *time.Time
	EndedAt     *time.Time
	DurationSec *int
	Notes       *string
	SongID      *string
	Instrument  *Instrument
}

func (p SessionPatch) Apply(s Session) Session {
	if p.StartedAt != nil {
		s.StartedAt = *p.StartedAt
	}
	if p.EndedAt != nil {
		s.EndedAt = *p.EndedAt
	}
	if p.DurationSec != nil {
		s.DurationSec = *p.DurationSec
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	if p.SongID != nil {
		s.SongID = *p.SongID
	}
	if p.Instrument != nil {
		s.Instrument = *p.Instrument
	}
	return s
}

// JournalNote is a session's markdown note as read back from disk.
type JournalNote struct {
	Path      string
	SessionID string
	Song      string
	Body      string
}

// SessionFilter narrows a listing. SongIDs, when non-nil, is the set of songs
// a text search matched; an empty set matches nothing.
type SessionFilter struct {
	SongID     string
	SongIDs    map[string]bool
	Instrument Instrument
	Limit      int
}

func (f SessionFilter) Matches(s Session) bool {
	if f.SongID != "" && s.SongID != f.SongID {
		return false
	}
	if f.Instrument != "" && s.Instrument != f.Instrument {
		return false
	}
	if f.SongIDs != nil && !f.SongIDs[s.SongID] {
		return false
	}
	return true
}

// SortNewestFirst orders by start time, then creation time, descending.
func SortNewestFirst(sessions []Session) {
	sort.SliceStable(sessions, func(a, b int) bool {
		sa, sb := sessions[a], sessions[b]
		if !sa.StartedAt.Equal(sb.StartedAt) {
			return sa.StartedAt.After(sb.StartedAt)
		}
		if !sa.CreatedAt.Equal(sb.CreatedAt) {
			return sa.CreatedAt.After(sb.CreatedAt)
		}
		return sa.ID > sb.ID
	})
}
