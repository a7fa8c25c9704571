package usecase_test

import (
	"context"
	"testing"
	"time"

	"stringlog/internal/modules/metronome/domain"
	metronomein "stringlog/internal/modules/metronome/port/in"
	"stringlog/internal/modules/metronome/service"
	"stringlog/internal/modules/metronome/usecase"
)

type silentOutput struct{}

func (silentOutput) Open() error { return nil }

func (silentOutput) CurrentTime() float64 { return 0 }

func (silentOutput) Schedule(domain.Click) {}

func (silentOutput) SetGain(float64) {}

func (silentOutput) Suspend() {}

func (silentOutput) Close() error { return nil }

type noopDeferrer struct{}

func (noopDeferrer) AfterFunc(time.Duration, func()) func() { return func() {} }

type closedFrames struct{}

func (closedFrames) Frames() (<-chan time.Time, func()) {
	ch := make(chan time.Time)
	close(ch)
	return ch, func() {}
}

func newUsecase() metronomein.Usecase {
	scheduler := service.NewScheduler(silentOutput{}, noopDeferrer{}, closedFrames{}, domain.DefaultBPM, domain.DefaultVolume, nil)
	return usecase.NewInteractor(scheduler)
}

func TestToggleStartsAndStops(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc := newUsecase()
	state, err := uc.Toggle(ctx)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !state.Running || state.CurrentBeat != 0 || state.BeatsPerMeasure != 4 {
		t.Fatalf("unexpected running state: %+v", state)
	}
	state, err = uc.Toggle(ctx)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if state.Running || state.CurrentBeat != domain.NoBeat {
		t.Fatalf("unexpected stopped state: %+v", state)
	}
	if err := uc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNudgeBPMClampsAtBounds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc := newUsecase()
	if got := uc.NudgeBPM(ctx, 10).BPM; got != 130 {
		t.Fatalf("bpm = %d", got)
	}
	if got := uc.NudgeBPM(ctx, -1).BPM; got != 129 {
		t.Fatalf("bpm = %d", got)
	}
	uc.SetBPM(ctx, 235)
	if got := uc.NudgeBPM(ctx, 10).BPM; got != domain.MaxBPM {
		t.Fatalf("bpm = %d", got)
	}
	uc.SetBPM(ctx, 45)
	if got := uc.NudgeBPM(ctx, -10).BPM; got != domain.MinBPM {
		t.Fatalf("bpm = %d", got)
	}
}

func TestToggleMuteRestoresLastVolume(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc := newUsecase()
	state := uc.ToggleMute(ctx)
	if !state.Muted || state.Volume != 0 {
		t.Fatalf("expected muted, got %+v", state)
	}
	if got := uc.ToggleMute(ctx).Volume; got != domain.DefaultVolume {
		t.Fatalf("unmuted volume = %d", got)
	}

	uc.SetVolume(ctx, 40)
	uc.ToggleMute(ctx)
	if got := uc.ToggleMute(ctx).Volume; got != 40 {
		t.Fatalf("unmuted volume = %d, want 40", got)
	}
}
