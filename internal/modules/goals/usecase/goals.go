package usecase

import (
	"context"

	"stringlog/internal/modules/goals/domain"
	goalsdto "stringlog/internal/modules/goals/dto"
	goalsin "stringlog/internal/modules/goals/port/in"
	"stringlog/internal/modules/goals/service"
	"stringlog/internal/platform/tx"
)

type Interactor struct {
	svc *service.GoalService
	tx  tx.Manager
}

func NewInteractor(svc *service.GoalService, txm tx.Manager) goalsin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{svc: svc, tx: txm}
}

func (i *Interactor) AddGoal(ctx context.Context, input goalsdto.AddGoalInput) (goalsdto.Goal, error) {
	var goal domain.Goal
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		goal, err = i.svc.Add(ctx, input.Title, input.TargetHours, domain.Period(input.Period))
		return err
	})
	if err != nil {
		return goalsdto.Goal{}, err
	}
	return toDTO(goal), nil
}

func (i *Interactor) ListGoals(ctx context.Context) ([]goalsdto.Goal, error) {
	goals, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]goalsdto.Goal, 0, len(goals))
	for _, g := range goals {
		out = append(out, toDTO(g))
	}
	return out, nil
}

func (i *Interactor) GetGoal(ctx context.Context, id string) (goalsdto.Goal, error) {
	goal, err := i.svc.Get(ctx, id)
	if err != nil {
		return goalsdto.Goal{}, err
	}
	return toDTO(goal), nil
}

func (i *Interactor) UpdateGoal(ctx context.Context, input goalsdto.UpdateGoalInput) (goalsdto.Goal, error) {
	patch := domain.GoalPatch{Title: input.Title, TargetHours: input.TargetHours}
	if input.Period != nil {
		period := domain.Period(*input.Period)
		patch.Period = &period
	}
	var goal domain.Goal
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		goal, err = i.svc.Update(ctx, input.ID, patch)
		return err
	})
	if err != nil {
		return goalsdto.Goal{}, err
	}
	return toDTO(goal), nil
}

func (i *Interactor) CompleteGoal(ctx context.Context, id string) (goalsdto.Goal, error) {
	var goal domain.Goal
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		goal, err = i.svc.Complete(ctx, id)
		return err
	})
	if err != nil {
		return goalsdto.Goal{}, err
	}
	return toDTO(goal), nil
}

func (i *Interactor) DeleteGoal(ctx context.Context, id string) error {
	return i.tx.Within(ctx, func(ctx context.Context) error {
		return i.svc.Delete(ctx, id)
	})
}

func (i *Interactor) Recompute(ctx context.Context) (int, error) {
	changed := 0
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		changed, err = i.svc.Recompute(ctx)
		return err
	})
	return changed, err
}

func (i *Interactor) RestoreGoals(ctx context.Context, goals []goalsdto.Goal) error {
	items := make([]domain.Goal, 0, len(goals))
	for _, g := range goals {
		items = append(items, domain.Goal{
			ID:          g.ID,
			Title:       g.Title,
			TargetHours: g.TargetHours,
			Period:      domain.Period(g.Period),
			Progress:    g.Progress,
			CreatedAt:   g.CreatedAt,
			CompletedAt: g.CompletedAt,
		})
	}
	return i.tx.Within(ctx, func(ctx context.Context) error {
		if err := i.svc.ReplaceAll(ctx, items); err != nil {
			return err
		}
		_, err := i.svc.Recompute(ctx)
		return err
	})
}

func toDTO(g domain.Goal) goalsdto.Goal {
	return goalsdto.Goal{
		ID:          g.ID,
		Title:       g.Title,
		TargetHours: g.TargetHours,
		Period:      string(g.Period),
		Progress:    g.Progress,
		CreatedAt:   g.CreatedAt,
		CompletedAt: g.CompletedAt,
		Completed:   g.Completed(),
	}
}
