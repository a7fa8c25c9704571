package in

import (
	"context"

	remindersdto "stringlog/internal/modules/reminders/dto"
)

type Usecase interface {
	AddReminder(ctx context.Context, input remindersdto.AddReminderInput) (remindersdto.Reminder, error)
	ListReminders(ctx context.Context) ([]remindersdto.Reminder, error)
	UpdateReminder(ctx context.Context, input remindersdto.UpdateReminderInput) (remindersdto.Reminder, error)
	ToggleReminder(ctx context.Context, id string) (remindersdto.Reminder, error)
	DeleteReminder(ctx context.Context, id string) error
	Upcoming(ctx context.Context, limit int) ([]remindersdto.Occurrence, error)
}
