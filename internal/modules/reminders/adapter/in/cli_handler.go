package in

import (
	"context"

	remindersdto "stringlog/internal/modules/reminders/dto"
	remindersin "stringlog/internal/modules/reminders/port/in"
)

type CLIHandler struct {
	usecase remindersin.Usecase
}

func NewCLIHandler(usecase remindersin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, title, at string, days []int) (remindersdto.Reminder, error) {
	return h.usecase.AddReminder(ctx, remindersdto.AddReminderInput{Title: title, Time: at, Days: days})
}

func (h CLIHandler) List(ctx context.Context) ([]remindersdto.Reminder, error) {
	return h.usecase.ListReminders(ctx)
}

func (h CLIHandler) Update(ctx context.Context, input remindersdto.UpdateReminderInput) (remindersdto.Reminder, error) {
	return h.usecase.UpdateReminder(ctx, input)
}

func (h CLIHandler) Toggle(ctx context.Context, id string) (remindersdto.Reminder, error) {
	return h.usecase.ToggleReminder(ctx, id)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.DeleteReminder(ctx, id)
}

func (h CLIHandler) Next(ctx context.Context, limit int) ([]remindersdto.Occurrence, error) {
	return h.usecase.Upcoming(ctx, limit)
}
