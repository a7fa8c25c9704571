package out

import (
	"context"

	repertoiredto "stringlog/internal/modules/repertoire/dto"
	repertoirein "stringlog/internal/modules/repertoire/port/in"
	"stringlog/internal/modules/transfer/domain"
	transferout "stringlog/internal/modules/transfer/port/out"
)

type repertoireArchive struct {
	repertoire repertoirein.Usecase
}

func NewRepertoireArchive(repertoire repertoirein.Usecase) transferout.SongArchive {
	return repertoireArchive{repertoire: repertoire}
}

func (a repertoireArchive) Songs(ctx context.Context) ([]domain.Song, error) {
	songs, err := a.repertoire.ListSongs(ctx, repertoiredto.SongFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Song, 0, len(songs))
	for _, s := range songs {
		out = append(out, domain.Song{
			ID:               s.ID,
			Title:            s.Title,
			Artist:           s.Artist,
			Album:            s.Album,
			AlbumArt:         s.AlbumArt,
			SpotifyID:        s.SpotifyID,
			SpotifyURL:       s.SpotifyURL,
			Status:           s.Status,
			TotalPracticeSec: s.TotalPracticeSec,
			Difficulty:       s.Difficulty,
			Notes:            s.Notes,
			CreatedAt:        domain.NewTimestamp(s.CreatedAt),
			LastPracticedAt:  domain.OptionalTimestamp(s.LastPracticedAt),
		})
	}
	return out, nil
}

func (a repertoireArchive) RestoreSongs(ctx context.Context, songs []domain.Song) error {
	items := make([]repertoiredto.Song, 0, len(songs))
	for _, s := range songs {
		items = append(items, repertoiredto.Song{
			ID:               s.ID,
			Title:            s.Title,
			Artist:           s.Artist,
			Album:            s.Album,
			AlbumArt:         s.AlbumArt,
			SpotifyID:        s.SpotifyID,
			SpotifyURL:       s.SpotifyURL,
			Status:           s.Status,
			TotalPracticeSec: s.TotalPracticeSec,
			Difficulty:       s.Difficulty,
			Notes:            s.Notes,
			CreatedAt:        s.CreatedAt.Time,
			LastPracticedAt:  s.LastPracticedAt.Ptr(),
		})
	}
	return a.repertoire.RestoreSongs(ctx, items)
}
