package out

import (
	"context"

	practicedto "stringlog/internal/modules/practice/dto"
	practicein "stringlog/internal/modules/practice/port/in"
	"stringlog/internal/modules/stats/domain"
	statsout "stringlog/internal/modules/stats/port/out"
)

type PracticeEntrySource struct {
	sessions practicein.SessionReader
}

func NewPracticeEntrySource(sessions practicein.SessionReader) statsout.EntrySource {
	return &PracticeEntrySource{sessions: sessions}
}

func (s *PracticeEntrySource) Entries(ctx context.Context) ([]domain.Entry, error) {
	sessions, err := s.sessions.ListSessions(ctx, practicedto.ListFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Entry, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, domain.Entry{
			ID:          session.ID,
			StartedAt:   session.StartedAt,
			DurationSec: session.DurationSec,
			Instrument:  session.Instrument,
		})
	}
	return out, nil
}
