package in

import (
	"context"

	"stringlog/internal/modules/goals/dto"
)

type Usecase interface {
	AddGoal(ctx context.Context, input dto.AddGoalInput) (dto.Goal, error)
	ListGoals(ctx context.Context) ([]dto.Goal, error)
	GetGoal(ctx context.Context, id string) (dto.Goal, error)
	UpdateGoal(ctx context.Context, input dto.UpdateGoalInput) (dto.Goal, error)
	CompleteGoal(ctx context.Context, id string) (dto.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
	// Recompute refreshes cached progress and reports how many goals changed.
	Recompute(ctx context.Context) (int, error)
	RestoreGoals(ctx context.Context, goals []dto.Goal) error
}
