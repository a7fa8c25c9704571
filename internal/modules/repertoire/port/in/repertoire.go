package in

import (
	"context"

	"stringlog/internal/modules/repertoire/dto"
)

type Usecase interface {
	AddSong(ctx context.Context, input dto.AddSongInput) (dto.Song, error)
	AddTrack(ctx context.Context, track dto.Track, status string) (dto.Song, error)
	UpdateSong(ctx context.Context, input dto.UpdateSongInput) (dto.Song, error)
	DeleteSong(ctx context.Context, id string) error
	GetSong(ctx context.Context, id string) (dto.Song, error)
	ListSongs(ctx context.Context, filter dto.SongFilter) ([]dto.Song, error)
	IncrementPracticeTime(ctx context.Context, id string, seconds int) (dto.Song, error)
	SongStats(ctx context.Context) (dto.SongStats, error)
	RestoreSongs(ctx context.Context, songs []dto.Song) error
	SearchTracks(ctx context.Context, query string) ([]dto.Track, error)
}
