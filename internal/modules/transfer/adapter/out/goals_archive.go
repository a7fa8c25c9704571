package out

import (
	"context"

	goalsdto "stringlog/internal/modules/goals/dto"
	goalsin "stringlog/internal/modules/goals/port/in"
	"stringlog/internal/modules/transfer/domain"
	transferout "stringlog/internal/modules/transfer/port/out"
)

type goalsArchive struct {
	goals goalsin.Usecase
}

func NewGoalsArchive(goals goalsin.Usecase) transferout.GoalArchive {
	return goalsArchive{goals: goals}
}

func (a goalsArchive) Goals(ctx context.Context) ([]domain.Goal, error) {
	goals, err := a.goals.ListGoals(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Goal, 0, len(goals))
	for _, g := range goals {
		out = append(out, domain.Goal{
			ID:          g.ID,
			Title:       g.Title,
			TargetHours: g.TargetHours,
			Period:      g.Period,
			Progress:    g.Progress,
			CreatedAt:   domain.NewTimestamp(g.CreatedAt),
			CompletedAt: domain.OptionalTimestamp(g.CompletedAt),
		})
	}
	return out, nil
}

func (a goalsArchive) RestoreGoals(ctx context.Context, goals []domain.Goal) error {
	items := make([]goalsdto.Goal, 0, len(goals))
	for _, g := range goals {
		items = append(items, goalsdto.Goal{
			ID:          g.ID,
			Title:       g.Title,
			TargetHours: g.TargetHours,
			Period:      g.Period,
			Progress:    g.Progress,
			CreatedAt:   g.CreatedAt.Time,
			CompletedAt: g.CompletedAt.Ptr(),
		})
	}
	return a.goals.RestoreGoals(ctx, items)
}
