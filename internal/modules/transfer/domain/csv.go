package domain

import (
	"fmt"
	"strconv"
)

type Kind string

const (
	KindSessions Kind = "sessions"
	KindSongs    Kind = "songs"
)

func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindSessions, KindSongs:
		return Kind(raw), nil
	default:
		return "", fmt.Errorf("unsupported export kind %q", raw)
	}
}

var (
	SessionHeader = []string{"id", "started_at", "ended_at", "duration_seconds", "notes", "song_id", "instrument", "created_at"}
	SongHeader    = []string{"id", "title", "artist", "album", "status", "total_practice_seconds", "difficulty", "notes", "spotify_url", "created_at", "last_practiced_at"}
)

func (s Session) Row() []string {
	return []string{
		s.ID,
		s.StartedAt.String(),
		s.EndedAt.String(),
		strconv.Itoa(s.DurationSec),
		s.Notes,
		s.SongID,
		s.Instrument,
		s.CreatedAt.String(),
	}
}

func (s Song) Row() []string {
	last := ""
	if s.LastPracticedAt != nil {
		last = s.LastPracticedAt.String()
	}
	return []string{
		s.ID,
		s.Title,
		s.Artist,
		s.Album,
		s.Status,
		strconv.Itoa(s.TotalPracticeSec),
		strconv.Itoa(s.Difficulty),
		s.Notes,
		s.SpotifyURL,
		s.CreatedAt.String(),
		last,
	}
}
