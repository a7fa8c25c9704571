package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"stringlog/internal/modules/stats/domain"
	statsout "stringlog/internal/modules/stats/port/out"
	"stringlog/internal/platform/clock"
	apperrors "stringlog/internal/platform/errors"
)

type StatsService struct {
	clock  clock.Clock
	source statsout.EntrySource
	logger *zap.Logger

	mu       sync.Mutex
	reported string
}

func NewStatsService(clock clock.Clock, source statsout.EntrySource, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{clock: clock, source: source, logger: logger}
}

func (s *StatsService) Summary(ctx context.Context, weeks int) (domain.Summary, error) {
	entries, err := s.source.Entries(ctx)
	if err != nil {
		s.reportIntegrity(err)
		return domain.Summary{}, err
	}
	summary, err := domain.Summarize(entries, weeks, s.clock.Now())
	if err != nil {
		s.reportIntegrity(err)
		return domain.Summary{}, err
	}
	return summary, nil
}

// reportIntegrity logs a data-integrity failure once per distinct message;
// the dashboard refreshes every second and would otherwise flood the log.
func (s *StatsService) reportIntegrity(err error) {
	if !errors.Is(err, apperrors.ErrDataIntegrity) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reported == err.Error() {
		return
	}
	s.reported = err.Error()
	s.logger.Error("session data failed integrity check", zap.Error(err))
}
