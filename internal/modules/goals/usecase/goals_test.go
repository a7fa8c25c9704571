package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	goalsadapter "stringlog/internal/modules/goals/adapter/out"
	"stringlog/internal/modules/goals/domain"
	goalsdto "stringlog/internal/modules/goals/dto"
	"stringlog/internal/modules/goals/service"
	"stringlog/internal/modules/goals/usecase"
	"stringlog/internal/platform/clock"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/tx"
)

type seqID struct {
	n int
}

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("goal-%d", s.n)
}

type fakeSamples struct {
	samples []domain.Sample
}

func (f *fakeSamples) Samples(context.Context) ([]domain.Sample, error) {
	return f.samples, nil
}

var now = time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)

func TestRecomputeIsIdempotentAndWritesOnlyChanges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := goalsadapter.NewMemoryGoalRepository()
	samples := &fakeSamples{}
	uc := usecase.NewInteractor(service.NewGoalService(clock.Fixed{At: now}, &seqID{}, repo, samples, nil), tx.NewSerialManager())

	weekly, err := uc.AddGoal(ctx, goalsdto.AddGoalInput{Title: "Two hours a week", TargetHours: 2, Period: "weekly"})
	if err != nil {
		t.Fatalf("add weekly: %v", err)
	}
	daily, err := uc.AddGoal(ctx, goalsdto.AddGoalInput{Title: "Daily half hour", TargetHours: 0.5, Period: "daily"})
	if err != nil {
		t.Fatalf("add daily: %v", err)
	}
	if weekly.Progress != 0 || daily.Progress != 0 {
		t.Fatalf("new goals without practice start at 0")
	}

	samples.samples = []domain.Sample{{StartedAt: now.AddDate(0, 0, -1), DurationSec: 3600}}
	changed, err := uc.Recompute(ctx)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if changed != 1 {
		t.Fatalf("only the weekly goal should move, changed=%d", changed)
	}
	got, err := uc.GetGoal(ctx, weekly.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Progress != 50 {
		t.Fatalf("expected 50, got %.2f", got.Progress)
	}

	updates := repo.Updates
	changed, err = uc.Recompute(ctx)
	if err != nil {
		t.Fatalf("second recompute: %v", err)
	}
	if changed != 0 || repo.Updates != updates {
		t.Fatalf("second recompute must not write, changed=%d writes=%d", changed, repo.Updates-updates)
	}
	again, _ := uc.GetGoal(ctx, weekly.ID)
	if again.Progress != got.Progress {
		t.Fatalf("progress drifted between recomputes: %.2f vs %.2f", got.Progress, again.Progress)
	}

	samples.samples = append(samples.samples, domain.Sample{StartedAt: now.Add(-time.Hour), DurationSec: 5400})
	if _, err := uc.Recompute(ctx); err != nil {
		t.Fatalf("third recompute: %v", err)
	}
	capped, _ := uc.GetGoal(ctx, weekly.ID)
	dailyNow, _ := uc.GetGoal(ctx, daily.ID)
	if capped.Progress != 100 || !capped.Completed || dailyNow.Progress != 100 {
		t.Fatalf("expected both goals capped at 100, got %.2f and %.2f", capped.Progress, dailyNow.Progress)
	}
}

func TestCompleteOverridesAndSticks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	samples := &fakeSamples{}
	uc := usecase.NewInteractor(service.NewGoalService(clock.Fixed{At: now}, &seqID{}, goalsadapter.NewMemoryGoalRepository(), samples, nil), nil)

	goal, err := uc.AddGoal(ctx, goalsdto.AddGoalInput{Title: "Monthly ten", TargetHours: 10, Period: "monthly"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	done, err := uc.CompleteGoal(ctx, goal.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Progress != 100 || done.CompletedAt == nil || !done.CompletedAt.Equal(now) || !done.Completed {
		t.Fatalf("unexpected completed goal %+v", done)
	}
	samples.samples = []domain.Sample{{StartedAt: now, DurationSec: 60}}
	if _, err := uc.Recompute(ctx); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	after, _ := uc.GetGoal(ctx, goal.ID)
	if after.Progress != 100 {
		t.Fatalf("completed goal must keep 100, got %.2f", after.Progress)
	}
}

func TestGoalInputValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := usecase.NewInteractor(service.NewGoalService(clock.Fixed{At: now}, &seqID{}, goalsadapter.NewMemoryGoalRepository(), &fakeSamples{}, nil), nil)

	if _, err := uc.AddGoal(ctx, goalsdto.AddGoalInput{Title: "zero", TargetHours: 0, Period: "weekly"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("zero target must be rejected, got %v", err)
	}
	if _, err := uc.AddGoal(ctx, goalsdto.AddGoalInput{Title: "yearly", TargetHours: 1, Period: "yearly"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unknown period must be rejected, got %v", err)
	}
	goal, err := uc.AddGoal(ctx, goalsdto.AddGoalInput{Title: "ok", TargetHours: 1, Period: "daily"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	negative := -3.0
	if _, err := uc.UpdateGoal(ctx, goalsdto.UpdateGoalInput{ID: goal.ID, TargetHours: &negative}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("negative target must be rejected on update, got %v", err)
	}
	if err := uc.DeleteGoal(ctx, goal.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.CompleteGoal(ctx, goal.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
