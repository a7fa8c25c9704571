package out

import (
	"context"

	practicedto "stringlog/internal/modules/practice/dto"
	practicein "stringlog/internal/modules/practice/port/in"
	"stringlog/internal/modules/transfer/domain"
	transferout "stringlog/internal/modules/transfer/port/out"
)

type practiceArchive struct {
	practice practicein.Usecase
}

func NewPracticeArchive(practice practicein.Usecase) transferout.SessionArchive {
	return practiceArchive{practice: practice}
}

func (a practiceArchive) Sessions(ctx context.Context) ([]domain.Session, error) {
	sessions, err := a.practice.ListSessions(ctx, practicedto.ListFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, domain.Session{
			ID:          s.ID,
			StartedAt:   domain.NewTimestamp(s.StartedAt),
			EndedAt:     domain.NewTimestamp(s.EndedAt),
			DurationSec: s.DurationSec,
			Notes:       s.Notes,
			SongID:      s.SongID,
			Instrument:  s.Instrument,
			CreatedAt:   domain.NewTimestamp(s.CreatedAt),
		})
	}
	return out, nil
}

func (a practiceArchive) RestoreSessions(ctx context.Context, sessions []domain.Session) error {
	items := make([]practicedto.Session, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, practicedto.Session{
			ID:          s.ID,
			StartedAt:   s.StartedAt.Time,
			EndedAt:     s.EndedAt.Time,
			DurationSec: s.DurationSec,
			Notes:       s.Notes,
			SongID:      s.SongID,
			Instrument:  s.Instrument,
			CreatedAt:   s.CreatedAt.Time,
		})
	}
	return a.practice.RestoreSessions(ctx, items)
}
