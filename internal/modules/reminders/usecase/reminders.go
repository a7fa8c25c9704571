package usecase

import (
	"context"

	"stringlog/internal/modules/reminders/domain"
	remindersdto "stringlog/internal/modules/reminders/dto"
	remindersin "stringlog/internal/modules/reminders/port/in"
	"stringlog/internal/modules/reminders/service"
	"stringlog/internal/platform/tx"
)

type Interactor struct {
	svc *service.ReminderService
	tx  tx.Manager
}

func NewInteractor(svc *service.ReminderService, txm tx.Manager) remindersin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{svc: svc, tx: txm}
}

func (i *Interactor) AddReminder(ctx context.Context, input remindersdto.AddReminderInput) (remindersdto.Reminder, error) {
	var reminder domain.Reminder
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		reminder, err = i.svc.Add(ctx, input.Title, input.Time, input.Days)
		return err
	})
	if err != nil {
		return remindersdto.Reminder{}, err
	}
	return toDTO(reminder), nil
}

func (i *Interactor) ListReminders(ctx context.Context) ([]remindersdto.Reminder, error) {
	reminders, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]remindersdto.Reminder, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, toDTO(r))
	}
	return out, nil
}

func (i *Interactor) UpdateReminder(ctx context.Context, input remindersdto.UpdateReminderInput) (remindersdto.Reminder, error) {
	patch := domain.ReminderPatch{Title: input.Title, Time: input.Time, Days: input.Days, Enabled: input.Enabled}
	var reminder domain.Reminder
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		reminder, err = i.svc.Update(ctx, input.ID, patch)
		return err
	})
	if err != nil {
		return remindersdto.Reminder{}, err
	}
	return toDTO(reminder), nil
}

func (i *Interactor) ToggleReminder(ctx context.Context, id string) (remindersdto.Reminder, error) {
	var reminder domain.Reminder
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		reminder, err = i.svc.Toggle(ctx, id)
		return err
	})
	if err != nil {
		return remindersdto.Reminder{}, err
	}
	return toDTO(reminder), nil
}

func (i *Interactor) DeleteReminder(ctx context.Context, id string) error {
	return i.tx.Within(ctx, func(ctx context.Context) error {
		return i.svc.Delete(ctx, id)
	})
}

func (i *Interactor) Upcoming(ctx context.Context, limit int) ([]remindersdto.Occurrence, error) {
	occurrences, err := i.svc.Upcoming(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]remindersdto.Occurrence, 0, len(occurrences))
	for _, o := range occurrences {
		out = append(out, remindersdto.Occurrence{Reminder: toDTO(o.Reminder), At: o.At})
	}
	return out, nil
}

func toDTO(r domain.Reminder) remindersdto.Reminder {
	return remindersdto.Reminder{
		ID:        r.ID,
		Title:     r.Title,
		Time:      r.Time,
		Days:      append([]int(nil), r.Days...),
		Enabled:   r.Enabled,
		CreatedAt: r.CreatedAt,
	}
}
