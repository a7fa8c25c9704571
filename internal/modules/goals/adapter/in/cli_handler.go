package in

import (
	"context"

	goalsdto "stringlog/internal/modules/goals/dto"
	goalsin "stringlog/internal/modules/goals/port/in"
)

type CLIHandler struct {
	usecase goalsin.Usecase
}

func NewCLIHandler(usecase goalsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, title string, targetHours float64, period string) (goalsdto.Goal, error) {
	return h.usecase.AddGoal(ctx, goalsdto.AddGoalInput{Title: title, TargetHours: targetHours, Period: period})
}

func (h CLIHandler) List(ctx context.Context) ([]goalsdto.Goal, error) {
	return h.usecase.ListGoals(ctx)
}

func (h CLIHandler) Update(ctx context.Context, input goalsdto.UpdateGoalInput) (goalsdto.Goal, error) {
	return h.usecase.UpdateGoal(ctx, input)
}

func (h CLIHandler) Complete(ctx context.Context, id string) (goalsdto.Goal, error) {
	return h.usecase.CompleteGoal(ctx, id)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.DeleteGoal(ctx, id)
}

func (h CLIHandler) Recompute(ctx context.Context) (int, error) {
	return h.usecase.Recompute(ctx)
}
