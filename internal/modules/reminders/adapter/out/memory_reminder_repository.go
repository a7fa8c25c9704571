package out

import (
	"context"
	"fmt"
	"sync"

	"stringlog/internal/modules/reminders/domain"
	apperrors "stringlog/internal/platform/errors"
)

type MemoryReminderRepository struct {
	mu        sync.RWMutex
	reminders map[string]domain.Reminder
}

func NewMemoryReminderRepository() *MemoryReminderRepository {
	return &MemoryReminderRepository{reminders: map[string]domain.Reminder{}}
}

func (r *MemoryReminderRepository) Insert(_ context.Context, reminder domain.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reminders[reminder.ID]; ok {
		return fmt.Errorf("%w: duplicate reminder id %s", apperrors.ErrInvalidInput, reminder.ID)
	}
	r.reminders[reminder.ID] = reminder
	return nil
}

func (r *MemoryReminderRepository) Update(_ context.Context, reminder domain.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reminders[reminder.ID]; !ok {
		return fmt.Errorf("%w: reminder %s", apperrors.ErrNotFound, reminder.ID)
	}
	r.reminders[reminder.ID] = reminder
	return nil
}

func (r *MemoryReminderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reminders[id]; !ok {
		return fmt.Errorf("%w: reminder %s", apperrors.ErrNotFound, id)
	}
	delete(r.reminders, id)
	return nil
}

func (r *MemoryReminderRepository) Get(_ context.Context, id string) (domain.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reminder, ok := r.reminders[id]
	if !ok {
		return domain.Reminder{}, fmt.Errorf("%w: reminder %s", apperrors.ErrNotFound, id)
	}
	return reminder, nil
}

func (r *MemoryReminderRepository) List(_ context.Context) ([]domain.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Reminder, 0, len(r.reminders))
	for _, reminder := range r.reminders {
		out = append(out, reminder)
	}
	return out, nil
}
