package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"stringlog/internal/modules/goals/domain"
	goalsout "stringlog/internal/modules/goals/port/out"
	"stringlog/internal/platform/clock"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/id"
)

type GoalService struct {
	clock   clock.Clock
	idGen   id.Generator
	repo    goalsout.GoalRepository
	samples goalsout.SampleSource
	logger  *zap.Logger
}

func NewGoalService(clock clock.Clock, idGen id.Generator, repo goalsout.GoalRepository, samples goalsout.SampleSource, logger *zap.Logger) *GoalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoalService{clock: clock, idGen: idGen, repo: repo, samples: samples, logger: logger}
}

// Add stores a goal with its progress already measured.
func (s *GoalService) Add(ctx context.Context, title string, targetHours float64, period domain.Period) (domain.Goal, error) {
	goal := domain.Goal{
		ID:          s.idGen.New(),
		Title:       strings.TrimSpace(title),
		TargetHours: targetHours,
		Period:      period,
		CreatedAt:   s.clock.Now(),
	}
	if err := goal.Validate(); err != nil {
		return domain.Goal{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	samples, err := s.samples.Samples(ctx)
	if err != nil {
		return domain.Goal{}, err
	}
	goal.Progress = domain.ComputeProgress(goal, samples, goal.CreatedAt)
	if err := s.repo.Insert(ctx, goal); err != nil {
		return domain.Goal{}, err
	}
	return goal, nil
}

// List returns goals in creation order.
func (s *GoalService) List(ctx context.Context) ([]domain.Goal, error) {
	goals, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(goals, func(a, b int) bool {
		if !goals[a].CreatedAt.Equal(goals[b].CreatedAt) {
			return goals[a].CreatedAt.Before(goals[b].CreatedAt)
		}
		return goals[a].ID < goals[b].ID
	})
	return goals, nil
}

func (s *GoalService) Get(ctx context.Context, id string) (domain.Goal, error) {
	return s.repo.Get(ctx, id)
}

func (s *GoalService) Update(ctx context.Context, id string, patch domain.GoalPatch) (domain.Goal, error) {
	goal, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Goal{}, err
	}
	goal = patch.Apply(goal)
	if err := goal.Validate(); err != nil {
		return domain.Goal{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if goal.CompletedAt == nil {
		samples, err := s.samples.Samples(ctx)
		if err != nil {
			return domain.Goal{}, err
		}
		goal.Progress = domain.ComputeProgress(goal, samples, s.clock.Now())
	}
	if err := s.repo.Update(ctx, goal); err != nil {
		return domain.Goal{}, err
	}
	return goal, nil
}

// Complete marks the goal done regardless of the measured progress.
func (s *GoalService) Complete(ctx context.Context, id string) (domain.Goal, error) {
	goal, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Goal{}, err
	}
	now := s.clock.Now()
	goal.Progress = domain.MaxProgress
	goal.CompletedAt = &now
	if err := s.repo.Update(ctx, goal); err != nil {
		return domain.Goal{}, err
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Recompute rewrites the cached progress of every open goal whose value
// moved. Goals completed by the user keep their 100.
func (s *GoalService) Recompute(ctx context.Context) (int, error) {
	goals, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(goals) == 0 {
		return 0, nil
	}
	samples, err := s.samples.Samples(ctx)
	if err != nil {
		return 0, err
	}
	now := s.clock.Now()
	changed := 0
	for _, goal := range goals {
		if goal.CompletedAt != nil {
			continue
		}
		progress := domain.ComputeProgress(goal, samples, now)
		if progress == goal.Progress {
			continue
		}
		goal.Progress = progress
		if err := s.repo.Update(ctx, goal); err != nil {
			return changed, err
		}
		changed++
	}
	if changed > 0 {
		s.logger.Debug("goal progress recomputed", zap.Int("changed", changed), zap.Int("goals", len(goals)))
	}
	return changed, nil
}

func (s *GoalService) ReplaceAll(ctx context.Context, goals []domain.Goal) error {
	seen := make(map[string]struct{}, len(goals))
	for _, goal := range goals {
		if err := goal.Validate(); err != nil {
			return fmt.Errorf("%w: goal %s: %v", apperrors.ErrInvalidInput, goal.ID, err)
		}
		if _, dup := seen[goal.ID]; dup {
			return fmt.Errorf("%w: duplicate goal id %s", apperrors.ErrInvalidInput, goal.ID)
		}
		seen[goal.ID] = struct{}{}
	}
	return s.repo.ReplaceAll(ctx, goals)
}
