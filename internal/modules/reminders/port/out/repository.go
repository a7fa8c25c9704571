package out

import (
	"context"

	"stringlog/internal/modules/reminders/domain"
)

type ReminderRepository interface {
	Insert(ctx context.Context, reminder domain.Reminder) error
	Update(ctx context.Context, reminder domain.Reminder) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Reminder, error)
	List(ctx context.Context) ([]domain.Reminder, error)
}
