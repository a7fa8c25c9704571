package out

import (
	"context"

	goalsin "stringlog/internal/modules/goals/port/in"
	practiceout "stringlog/internal/modules/practice/port/out"
)

type GoalRefresher struct {
	goals goalsin.Usecase
}

func NewGoalRefresher(goals goalsin.Usecase) practiceout.GoalRefresher {
	return &GoalRefresher{goals: goals}
}

func (r *GoalRefresher) Refresh(ctx context.Context) error {
	_, err := r.goals.Recompute(ctx)
	return err
}
