package out

import (
	"context"

	"stringlog/internal/modules/goals/domain"
	goalsout "stringlog/internal/modules/goals/port/out"
	practicedto "stringlog/internal/modules/practice/dto"
	practicein "stringlog/internal/modules/practice/port/in"
)

type PracticeSampleSource struct {
	sessions practicein.SessionReader
}

func NewPracticeSampleSource(sessions practicein.SessionReader) goalsout.SampleSource {
	return &PracticeSampleSource{sessions: sessions}
}

func (s *PracticeSampleSource) Samples(ctx context.Context) ([]domain.Sample, error) {
	sessions, err := s.sessions.ListSessions(ctx, practicedto.ListFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Sample, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, domain.Sample{StartedAt: session.StartedAt, DurationSec: session.DurationSec})
	}
	return out, nil
}
