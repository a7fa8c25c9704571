package out

import (
	"context"

	"stringlog/internal/modules/goals/domain"
)

type GoalRepository interface {
	Insert(ctx context.Context, goal domain.Goal) error
	Update(ctx context.Context, goal domain.Goal) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Goal, error)
	List(ctx context.Context) ([]domain.Goal, error)
	ReplaceAll(ctx context.Context, goals []domain.Goal) error
}

// SampleSource reads the practice sessions goal progress is measured against.
type SampleSource interface {
	Samples(ctx context.Context) ([]domain.Sample, error)
}
