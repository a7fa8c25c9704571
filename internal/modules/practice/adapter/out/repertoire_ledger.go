package out

import (
	"context"

	practiceout "stringlog/internal/modules/practice/port/out"
	repertoiredto "stringlog/internal/modules/repertoire/dto"
	repertoirein "stringlog/internal/modules/repertoire/port/in"
)

type RepertoireLedger struct {
	songs repertoirein.Usecase
}

func NewRepertoireLedger(songs repertoirein.Usecase) practiceout.SongLedger {
	return &RepertoireLedger{songs: songs}
}

func (l *RepertoireLedger) AddPracticeTime(ctx context.Context, songID string, seconds int) error {
	_, err := l.songs.IncrementPracticeTime(ctx, songID, seconds)
	return err
}

func (l *RepertoireLedger) SongTitle(ctx context.Context, songID string) (string, error) {
	song, err := l.songs.GetSong(ctx, songID)
	if err != nil {
		return "", err
	}
	return song.Title, nil
}

func (l *RepertoireLedger) MatchingSongs(ctx context.Context, query string) ([]string, error) {
	songs, err := l.songs.ListSongs(ctx, repertoiredto.SongFilter{Query: query})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(songs))
	for _, s := range songs {
		ids = append(ids, s.ID)
	}
	return ids, nil
}
