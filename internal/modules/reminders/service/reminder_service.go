package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"stringlog/internal/modules/reminders/domain"
	remindersout "stringlog/internal/modules/reminders/port/out"
	"stringlog/internal/platform/clock"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/id"
)

type ReminderService struct {
	clock clock.Clock
	idGen id.Generator
	repo  remindersout.ReminderRepository
}

func NewReminderService(clock clock.Clock, idGen id.Generator, repo remindersout.ReminderRepository) *ReminderService {
	return &ReminderService{clock: clock, idGen: idGen, repo: repo}
}

func (s *ReminderService) Add(ctx context.Context, title, at string, days []int) (domain.Reminder, error) {
	reminder := domain.Reminder{
		ID:        s.idGen.New(),
		Title:     strings.TrimSpace(title),
		Time:      strings.TrimSpace(at),
		Days:      days,
		Enabled:   true,
		CreatedAt: s.clock.Now(),
	}
	reminder, err := normalize(reminder)
	if err != nil {
		return domain.Reminder{}, err
	}
	if err := s.repo.Insert(ctx, reminder); err != nil {
		return domain.Reminder{}, err
	}
	return reminder, nil
}

// List returns reminders in creation order.
func (s *ReminderService) List(ctx context.Context) ([]domain.Reminder, error) {
	reminders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reminders, func(a, b int) bool {
		if !reminders[a].CreatedAt.Equal(reminders[b].CreatedAt) {
			return reminders[a].CreatedAt.Before(reminders[b].CreatedAt)
		}
		return reminders[a].ID < reminders[b].ID
	})
	return reminders, nil
}

func (s *ReminderService) Update(ctx context.Context, id string, patch domain.ReminderPatch) (domain.Reminder, error) {
	reminder, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Reminder{}, err
	}
	reminder, err = normalize(patch.Apply(reminder))
	if err != nil {
		return domain.Reminder{}, err
	}
	if err := s.repo.Update(ctx, reminder); err != nil {
		return domain.Reminder{}, err
	}
	return reminder, nil
}

func (s *ReminderService) Toggle(ctx context.Context, id string) (domain.Reminder, error) {
	reminder, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Reminder{}, err
	}
	enabled := !reminder.Enabled
	return s.Update(ctx, id, domain.ReminderPatch{Enabled: &enabled})
}

func (s *ReminderService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ReminderService) Upcoming(ctx context.Context, limit int) ([]domain.Occurrence, error) {
	reminders, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Upcoming(reminders, s.clock.Now(), limit), nil
}

func normalize(r domain.Reminder) (domain.Reminder, error) {
	if err := r.Validate(); err != nil {
		return domain.Reminder{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	days, err := domain.NormalizeDays(r.Days)
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	r.Days = days
	return r, nil
}
