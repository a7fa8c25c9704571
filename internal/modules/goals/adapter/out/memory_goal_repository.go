package out

import (
	"context"
	"fmt"
	"sync"

	"stringlog/internal/modules/goals/domain"
	apperrors "stringlog/internal/platform/errors"
)

type MemoryGoalRepository struct {
	mu      sync.RWMutex
	goals   map[string]domain.Goal
	Updates int
}

func NewMemoryGoalRepository() *MemoryGoalRepository {
	return &MemoryGoalRepository{goals: map[string]domain.Goal{}}
}

func (r *MemoryGoalRepository) Insert(_ context.Context, goal domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[goal.ID]; ok {
		return fmt.Errorf("%w: duplicate goal id %s", apperrors.ErrInvalidInput, goal.ID)
	}
	r.goals[goal.ID] = goal
	return nil
}

func (r *MemoryGoalRepository) Update(_ context.Context, goal domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[goal.ID]; !ok {
		return fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, goal.ID)
	}
	r.goals[goal.ID] = goal
	r.Updates++
	return nil
}

func (r *MemoryGoalRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[id]; !ok {
		return fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, id)
	}
	delete(r.goals, id)
	return nil
}

func (r *MemoryGoalRepository) Get(_ context.Context, id string) (domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	goal, ok := r.goals[id]
	if !ok {
		return domain.Goal{}, fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, id)
	}
	return goal, nil
}

func (r *MemoryGoalRepository) List(_ context.Context) ([]domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Goal, 0, len(r.goals))
	for _, goal := range r.goals {
		out = append(out, goal)
	}
	return out, nil
}

func (r *MemoryGoalRepository) ReplaceAll(_ context.Context, goals []domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals = make(map[string]domain.Goal, len(goals))
	for _, goal := range goals {
		r.goals[goal.ID] = goal
	}
	return nil
}
