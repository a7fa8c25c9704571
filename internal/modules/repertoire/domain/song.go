package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Status string

const (
	StatusMastered Status = "mastered"
	StatusLearning Status = "learning"
	StatusWishlist Status = "wishlist"
)

func (s Status) Validate() error {
	switch s {
	case StatusMastered, StatusLearning, StatusWishlist:
		return nil
	default:
		return fmt.Errorf("unsupported status %q", string(s))
	}
}

const MaxDifficulty = 5

// MinSearchQuery is the shortest query sent to the track catalogue.
const MinSearchQuery = 2

type Song struct {
	ID               string
	Title            string
	Artist           string
	Album            string
	AlbumArt         string
	SpotifyID        string
	SpotifyURL       string
	Status           Status
	TotalPracticeSec int
	Difficulty       int
	Notes            string
	CreatedAt        time.Time
	LastPracticedAt  *time.Time
}

func (s Song) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if err := s.Status.Validate(); err != nil {
		return err
	}
	if s.Difficulty < 0 || s.Difficulty > MaxDifficulty {
		return fmt.Errorf("difficulty must be between 1 and %d", MaxDifficulty)
	}
	if s.TotalPracticeSec < 0 {
		return fmt.Errorf("practice time must be non-negative")
	}
	return nil
}

// Credit adds practice time. The total never decreases.
func (s *Song) Credit(seconds int, at time.Time) error {
	if seconds < 0 {
		return fmt.Errorf("practice seconds must be non-negative")
	}
	s.TotalPracticeSec += seconds
	s.LastPracticedAt = &at
	return nil
}

type SongPatch struct {
	Title      *string
	Artist     *string
	Album      *string
	AlbumArt   *string
	SpotifyID  *string
	SpotifyURL *string
	Status     *Status
	Difficulty *int
	Notes      *string
}

func (p SongPatch) Apply(s Song) Song {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.Title, p.Title)
	set(&s.Artist, p.Artist)
	set(&s.Album, p.Album)
	set(&s.AlbumArt, p.AlbumArt)
	set(&s.SpotifyID, p.SpotifyID)
	set(&s.SpotifyURL, p.SpotifyURL)
	set(&s.Notes, p.Notes)
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.Difficulty != nil {
		s.Difficulty = *p.Difficulty
	}
	return s
}

// Matches reports whether the song passes a status filter and a
// case-insensitive title/artist query. Empty filters match everything.
func (s Song) Matches(status Status, query string) bool {
	if status != "" && s.Status != status {
		return false
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Title), query) || strings.Contains(strings.ToLower(s.Artist), query)
}

// SortNewestFirst orders songs by creation time, most recent first.
func SortNewestFirst(songs []Song) {
	sort.SliceStable(songs, func(a, b int) bool {
		if !songs[a].CreatedAt.Equal(songs[b].CreatedAt) {
			return songs[a].CreatedAt.After(songs[b].CreatedAt)
		}
		return songs[a].ID > songs[b].ID
	})
}

type Stats struct {
	Mastered int
	Learning int
	Wishlist int
	Total    int
}

func CountByStatus(songs []Song) Stats {
	out := Stats{Total: len(songs)}
	for _, s := range songs {
		switch s.Status {
		case StatusMastered:
			out.Mastered++
		case StatusLearning:
			out.Learning++
		case StatusWishlist:
			out.Wishlist++
		}
	}
	return out
}

// Track is a catalogue search hit that can seed a new song.
type Track struct {
	ID            string
	Name          string
	Artist        string
	Album         string
	AlbumArt      string
	AlbumArtSmall string
	PreviewURL    string
	SpotifyURL    string
}
