package domain

import (
	"time"

	apperrors "stringlog/internal/platform/errors"
)

type TimerState string

const (
	TimerIdle    TimerState = "idle"
	TimerRunning TimerState = "running"
	TimerPaused  TimerState = "paused"
)

// Timer is a wall-clock stopwatch. Elapsed time is derived from the clock
// (frozen seconds plus whole seconds since the last resume), so it advances
// once per second while running and excludes paused intervals.
type Timer struct {
	State     TimerState `json:"state"`
	StartedAt time.Time  `json:"started_at"`
	ResumedAt time.Time  `json:"resumed_at"`
	FrozenSec int        `json:"frozen_seconds"`
}

// TimerResult is handed to the caller on Stop; the timer persists nothing.
type TimerResult struct {
	StartedAt  time.Time
	EndedAt    time.Time
	ElapsedSec int
}

func NewTimer() Timer {
	return Timer{State: TimerIdle}
}

func (t Timer) Current() TimerState {
	if t.State == "" {
		return TimerIdle
	}
	return t.State
}

// Running drives the unsaved-work warning in the hosts.
func (t Timer) Running() bool {
	return t.Current() == TimerRunning
}

func (t Timer) Elapsed(now time.Time) int {
	if t.Current() != TimerRunning {
		return t.FrozenSec
	}
	delta := int(now.Sub(t.ResumedAt) / time.Second)
	if delta < 0 {
		delta = 0
	}
	return t.FrozenSec + delta
}

// Start keeps any frozen seconds left by a previous Stop; Reset clears them.
func (t *Timer) Start(now time.Time) error {
	if t.Current() != TimerIdle {
		return apperrors.ErrTimerRunning
	}
	t.State = TimerRunning
	t.StartedAt = now
	t.ResumedAt = now
	return nil
}

func (t *Timer) Pause(now time.Time) error {
	if t.Current() != TimerRunning {
		return apperrors.ErrTimerNotRunning
	}
	t.FrozenSec = t.Elapsed(now)
	t.State = TimerPaused
	t.ResumedAt = time.Time{}
	return nil
}

func (t *Timer) Resume(now time.Time) error {
	if t.Current() != TimerPaused {
		return apperrors.ErrTimerNotPaused
	}
	t.State = TimerRunning
	t.ResumedAt = now
	return nil
}

func (t *Timer) Stop(now time.Time) (TimerResult, error) {
	if t.Current() == TimerIdle {
		return TimerResult{}, apperrors.ErrTimerNotRunning
	}
	elapsed := t.Elapsed(now)
	result := TimerResult{StartedAt: t.StartedAt, EndedAt: now, ElapsedSec: elapsed}
	t.State = TimerIdle
	t.FrozenSec = elapsed
	t.StartedAt = time.Time{}
	t.ResumedAt = time.Time{}
	return result, nil
}

func (t *Timer) Reset() {
	*t = NewTimer()
}
