package service

import (
	"context"

	"stringlog/internal/modules/practice/domain"
	sessionout "stringlog/internal/modules/practice/port/out"
	"stringlog/internal/platform/clock"
)

type TimerService struct {
	clock clock.Clock
	store sessionout.TimerStore
}

func NewTimerService(clock clock.Clock, store sessionout.TimerStore) *TimerService {
	return &TimerService{clock: clock, store: store}
}

func (s *TimerService) Status(ctx context.Context) (domain.Timer, int, error) {
	timer, err := s.store.Load(ctx)
	if err != nil {
		return domain.Timer{}, 0, err
	}
	return timer, timer.Elapsed(s.clock.Now()), nil
}

func (s *TimerService) Start(ctx context.Context) (domain.Timer, int, error) {
	return s.transition(ctx, func(t *domain.Timer) error { return t.Start(s.clock.Now()) })
}

func (s *TimerService) Pause(ctx context.Context) (domain.Timer, int, error) {
	return s.transition(ctx, func(t *domain.Timer) error { return t.Pause(s.clock.Now()) })
}

func (s *TimerService) Resume(ctx context.Context) (domain.Timer, int, error) {
	return s.transition(ctx, func(t *domain.Timer) error { return t.Resume(s.clock.Now()) })
}

func (s *TimerService) Reset(ctx context.Context) (domain.Timer, int, error) {
	return s.transition(ctx, func(t *domain.Timer) error {
		t.Reset()
		return nil
	})
}

// StopWith stops the timer and hands the result to commit. The stored timer
// is reset only when commit succeeds, so a failed save loses nothing.
func (s *TimerService) StopWith(ctx context.Context, commit func(domain.TimerResult) error) (domain.TimerResult, error) {
	timer, err := s.store.Load(ctx)
	if err != nil {
		return domain.TimerResult{}, err
	}
	result, err := timer.Stop(s.clock.Now())
	if err != nil {
		return domain.TimerResult{}, err
	}
	if err := commit(result); err != nil {
		return domain.TimerResult{}, err
	}
	timer.Reset()
	if err := s.store.Save(ctx, timer); err != nil {
		return domain.TimerResult{}, err
	}
	return result, nil
}

func (s *TimerService) transition(ctx context.Context, apply func(*domain.Timer) error) (domain.Timer, int, error) {
	timer, err := s.store.Load(ctx)
	if err != nil {
		return domain.Timer{}, 0, err
	}
	if err := apply(&timer); err != nil {
		return domain.Timer{}, 0, err
	}
	if err := s.store.Save(ctx, timer); err != nil {
		return domain.Timer{}, 0, err
	}
	return timer, timer.Elapsed(s.clock.Now()), nil
}
