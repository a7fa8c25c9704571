package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"stringlog/internal/modules/repertoire/domain"
	repertoiredto "stringlog/internal/modules/repertoire/dto"
	repertoirein "stringlog/internal/modules/repertoire/port/in"
	"stringlog/internal/modules/repertoire/service"
	"stringlog/internal/platform/tx"
)

type Interactor struct {
	svc    *service.SongService
	tx     tx.Manager
	logger *zap.Logger
}

func NewInteractor(svc *service.SongService, txm tx.Manager, logger *zap.Logger) repertoirein.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, tx: txm, logger: logger}
}

func (i *Interactor) AddSong(ctx context.Context, input repertoiredto.AddSongInput) (repertoiredto.Song, error) {
	var song domain.Song
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		song, err = i.svc.Add(ctx, domain.Song{
			Title:      input.Title,
			Artist:     input.Artist,
			Album:      input.Album,
			AlbumArt:   input.AlbumArt,
			SpotifyID:  input.SpotifyID,
			SpotifyURL: input.SpotifyURL,
			Status:     domain.Status(input.Status),
			Difficulty: input.Difficulty,
			Notes:      input.Notes,
		})
		return err
	})
	if err != nil {
		return repertoiredto.Song{}, err
	}
	return toDTO(song), nil
}

// AddTrack creates a song from a catalogue search hit.
func (i *Interactor) AddTrack(ctx context.Context, track repertoiredto.Track, status string) (repertoiredto.Song, error) {
	return i.AddSong(ctx, repertoiredto.AddSongInput{
		Title:      track.Name,
		Artist:     track.Artist,
		Album:      track.Album,
		AlbumArt:   track.AlbumArt,
		SpotifyID:  track.ID,
		SpotifyURL: track.SpotifyURL,
		Status:     status,
	})
}

func (i *Interactor) UpdateSong(ctx context.Context, input repertoiredto.UpdateSongInput) (repertoiredto.Song, error) {
	patch := domain.SongPatch{
		Title:      input.Title,
		Artist:     input.Artist,
		Album:      input.Album,
		AlbumArt:   input.AlbumArt,
		SpotifyID:  input.SpotifyID,
		SpotifyURL: input.SpotifyURL,
		Difficulty: input.Difficulty,
		Notes:      input.Notes,
	}
	if input.Status != nil {
		status := domain.Status(*input.Status)
		patch.Status = &status
	}
	var song domain.Song
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		song, err = i.svc.Update(ctx, input.ID, patch)
		return err
	})
	if err != nil {
		return repertoiredto.Song{}, err
	}
	return toDTO(song), nil
}

// DeleteSong leaves sessions that reference the song untouched.
func (i *Interactor) DeleteSong(ctx context.Context, id string) error {
	return i.tx.Within(ctx, func(ctx context.Context) error {
		return i.svc.Delete(ctx, id)
	})
}

func (i *Interactor) GetSong(ctx context.Context, id string) (repertoiredto.Song, error) {
	song, err := i.svc.Get(ctx, id)
	if err != nil {
		return repertoiredto.Song{}, err
	}
	return toDTO(song), nil
}

func (i *Interactor) ListSongs(ctx context.Context, filter repertoiredto.SongFilter) ([]repertoiredto.Song, error) {
	songs, err := i.svc.List(ctx, domain.Status(filter.Status), filter.Query)
	if err != nil {
		return nil, err
	}
	out := make([]repertoiredto.Song, 0, len(songs))
	for _, s := range songs {
		out = append(out, toDTO(s))
	}
	return out, nil
}

func (i *Interactor) IncrementPracticeTime(ctx context.Context, id string, seconds int) (repertoiredto.Song, error) {
	var song domain.Song
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		song, err = i.svc.IncrementPracticeTime(ctx, id, seconds)
		return err
	})
	if err != nil {
		return repertoiredto.Song{}, err
	}
	return toDTO(song), nil
}

func (i *Interactor) SongStats(ctx context.Context) (repertoiredto.SongStats, error) {
	stats, err := i.svc.Stats(ctx)
	if err != nil {
		return repertoiredto.SongStats{}, err
	}
	return repertoiredto.SongStats{Mastered: stats.Mastered, Learning: stats.Learning, Wishlist: stats.Wishlist, Total: stats.Total}, nil
}

func (i *Interactor) RestoreSongs(ctx context.Context, songs []repertoiredto.Song) error {
	items := make([]domain.Song, 0, len(songs))
	for _, s := range songs {
		items = append(items, fromDTO(s))
	}
	return i.tx.Within(ctx, func(ctx context.Context) error {
		return i.svc.ReplaceAll(ctx, items)
	})
}

func (i *Interactor) SearchTracks(ctx context.Context, query string) ([]repertoiredto.Track, error) {
	tracks, err := i.svc.Search(ctx, query)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			i.logger.Warn("track search failed", zap.String("query", query), zap.Error(err))
		}
		return nil, err
	}
	out := make([]repertoiredto.Track, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, repertoiredto.Track(t))
	}
	return out, nil
}

func toDTO(s domain.Song) repertoiredto.Song {
	return repertoiredto.Song{
		ID:               s.ID,
		Title:            s.Title,
		Artist:           s.Artist,
		Album:            s.Album,
		AlbumArt:         s.AlbumArt,
		SpotifyID:        s.SpotifyID,
		SpotifyURL:       s.SpotifyURL,
		Status:           string(s.Status),
		TotalPracticeSec: s.TotalPracticeSec,
		Difficulty:       s.Difficulty,
		Notes:            s.Notes,
		CreatedAt:        s.CreatedAt,
		LastPracticedAt:  s.LastPracticedAt,
	}
}

func fromDTO(s repertoiredto.Song) domain.Song {
	return domain.Song{
		ID:               s.ID,
		Title:            s.Title,
		Artist:           s.Artist,
		Album:            s.Album,
		AlbumArt:         s.AlbumArt,
		SpotifyID:        s.SpotifyID,
		SpotifyURL:       s.SpotifyURL,
		Status:           domain.Status(s.Status),
		TotalPracticeSec: s.TotalPracticeSec,
		Difficulty:       s.Difficulty,
		Notes:            s.Notes,
		CreatedAt:        s.CreatedAt,
		LastPracticedAt:  s.LastPracticedAt,
	}
}
