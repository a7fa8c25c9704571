package usecase

import (
	"context"

	"stringlog/internal/modules/stats/domain"
	statsdto "stringlog/internal/modules/stats/dto"
	statsin "stringlog/internal/modules/stats/port/in"
	"stringlog/internal/modules/stats/service"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Summary(ctx context.Context, input statsdto.SummaryInput) (statsdto.Summary, error) {
	weeks := input.Weeks
	if weeks <= 0 {
		weeks = domain.DefaultWeekCount
	}
	summary, err := i.svc.Summary(ctx, weeks)
	if err != nil {
		return statsdto.Summary{}, err
	}
	out := statsdto.Summary{
		TotalHours:       summary.TotalHours,
		CurrentWeekHours: summary.CurrentWeekHours,
		LastWeekHours:    summary.LastWeekHours,
		StreakDays:       summary.StreakDays,
		LastPracticeAt:   summary.LastPracticeAt,
		TotalSessions:    summary.TotalSessions,
		Weekly:           make([]statsdto.WeeklyData, 0, len(summary.Weekly)),
		ByInstrument:     make([]statsdto.InstrumentHours, 0, len(summary.ByInstrument)),
	}
	for _, w := range summary.Weekly {
		out.Weekly = append(out.Weekly, statsdto.WeeklyData(w))
	}
	for _, h := range summary.ByInstrument {
		out.ByInstrument = append(out.ByInstrument, statsdto.InstrumentHours(h))
	}
	return out, nil
}
