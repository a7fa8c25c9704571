package in

import (
	"context"

	repertoiredto "stringlog/internal/modules/repertoire/dto"
	repertoirein "stringlog/internal/modules/repertoire/port/in"
)

type CLIHandler struct {
	usecase repertoirein.Usecase
}

func NewCLIHandler(usecase repertoirein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, input repertoiredto.AddSongInput) (repertoiredto.Song, error) {
	return h.usecase.AddSong(ctx, input)
}

func (h CLIHandler) AddTrack(ctx context.Context, track repertoiredto.Track, status string) (repertoiredto.Song, error) {
	return h.usecase.AddTrack(ctx, track, status)
}

func (h CLIHandler) List(ctx context.Context, status, query string) ([]repertoiredto.Song, error) {
	return h.usecase.ListSongs(ctx, repertoiredto.SongFilter{Status: status, Query: query})
}

func (h CLIHandler) Show(ctx context.Context, id string) (repertoiredto.Song, error) {
	return h.usecase.GetSong(ctx, id)
}

func (h CLIHandler) Update(ctx context.Context, input repertoiredto.UpdateSongInput) (repertoiredto.Song, error) {
	return h.usecase.UpdateSong(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.DeleteSong(ctx, id)
}

func (h CLIHandler) Stats(ctx context.Context) (repertoiredto.SongStats, error) {
	return h.usecase.SongStats(ctx)
}

func (h CLIHandler) Search(ctx context.Context, query string) ([]repertoiredto.Track, error) {
	return h.usecase.SearchTracks(ctx, query)
}
