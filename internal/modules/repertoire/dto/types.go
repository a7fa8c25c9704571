package dto

import "time"

type Song struct {
	ID               string
	Title            string
	Artist           string
	Album            string
	AlbumArt         string
	SpotifyID        string
	SpotifyURL       string
	Status           string
	TotalPracticeSec int
	Difficulty       int
	Notes            string
	CreatedAt        time.Time
	LastPracticedAt  *time.Time
}

type AddSongInput struct {
	Title      string
	Artist     string
	Album      string
	AlbumArt   string
	SpotifyID  string
	SpotifyURL string
	Status     string
	Difficulty int
	Notes      string
}

type UpdateSongInput struct {
	ID         string
	Title      *string
	Artist     *string
	Album      *string
	AlbumArt   *string
	SpotifyID  *string
	SpotifyURL *string
	Status     *string
	Difficulty *int
	Notes      *string
}

type SongFilter struct {
	Status string
	Query  string
}

type SongStats struct {
	Mastered int
	Learning int
	Wishlist int
	Total    int
}

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
