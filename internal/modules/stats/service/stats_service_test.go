package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"stringlog/internal/modules/stats/domain"
	"stringlog/internal/modules/stats/service"
	"stringlog/internal/platform/clock"
	apperrors "stringlog/internal/platform/errors"
)

type staticSource struct {
	entries []domain.Entry
}

func (s staticSource) Entries(context.Context) ([]domain.Entry, error) {
	return s.entries, nil
}

func TestSummaryLogsIntegrityErrorOnce(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.ErrorLevel)
	now := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
	svc := service.NewStatsService(clock.Fixed{At: now}, staticSource{entries: []domain.Entry{{ID: "bad", StartedAt: now, DurationSec: -30}}}, zap.New(core))

	for i := 0; i < 3; i++ {
		if _, err := svc.Summary(context.Background(), 8); !errors.Is(err, apperrors.ErrDataIntegrity) {
			t.Fatalf("expected ErrDataIntegrity, got %v", err)
		}
	}
	if logs.Len() != 1 {
		t.Fatalf("expected a single log entry, got %d", logs.Len())
	}
}

func TestSummaryUsesClock(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
	svc := service.NewStatsService(clock.Fixed{At: now}, staticSource{entries: []domain.Entry{
		{ID: "a", StartedAt: now.Add(-time.Hour), DurationSec: 2700},
	}}, nil)
	summary, err := svc.Summary(context.Background(), 3)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.StreakDays != 1 || summary.CurrentWeekHours != 0.75 || len(summary.Weekly) != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
