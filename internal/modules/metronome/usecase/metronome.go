package usecase

import (
	"context"
	"sync"

	"stringlog/internal/modules/metronome/domain"
	metronomedto "stringlog/internal/modules/metronome/dto"
	metronomein "stringlog/internal/modules/metronome/port/in"
	"stringlog/internal/modules/metronome/service"
)

type Interactor struct {
	scheduler *service.Scheduler

	mu      sync.Mutex
	unmuted int
}

func NewInteractor(scheduler *service.Scheduler) metronomein.Usecase {
	return &Interactor{scheduler: scheduler, unmuted: domain.DefaultVolume}
}

func (i *Interactor) Start(_ context.Context) (metronomedto.State, error) {
	state, err := i.scheduler.Start()
	return toDTO(state), err
}

func (i *Interactor) Stop(_ context.Context) metronomedto.State {
	return toDTO(i.scheduler.Stop())
}

func (i *Interactor) Toggle(ctx context.Context) (metronomedto.State, error) {
	if i.scheduler.State().Running {
		return i.Stop(ctx), nil
	}
	return i.Start(ctx)
}

func (i *Interactor) SetBPM(_ context.Context, bpm int) metronomedto.State {
	return toDTO(i.scheduler.SetBPM(bpm))
}

func (i *Interactor) NudgeBPM(ctx context.Context, delta int) metronomedto.State {
	return i.SetBPM(ctx, i.scheduler.State().BPM+delta)
}

func (i *Interactor) SetVolume(_ context.Context, volume int) metronomedto.State {
	volume = domain.ClampVolume(volume)
	if volume > 0 {
		i.mu.Lock()
		i.unmuted = volume
		i.mu.Unlock()
	}
	return toDTO(i.scheduler.SetVolume(volume))
}

// ToggleMute switches between silence and the last audible volume.
func (i *Interactor) ToggleMute(_ context.Context) metronomedto.State {
	if i.scheduler.State().Volume > 0 {
		return toDTO(i.scheduler.SetVolume(0))
	}
	i.mu.Lock()
	volume := i.unmuted
	i.mu.Unlock()
	return toDTO(i.scheduler.SetVolume(volume))
}

func (i *Interactor) State(_ context.Context) metronomedto.State {
	return toDTO(i.scheduler.State())
}

func (i *Interactor) Subscribe(listener func(metronomedto.State)) func() {
	return i.scheduler.Subscribe(func(state domain.State) {
		listener(toDTO(state))
	})
}

func (i *Interactor) Close() error {
	return i.scheduler.Close()
}

func toDTO(state domain.State) metronomedto.State {
	return metronomedto.State{
		BPM:             state.BPM,
		BeatsPerMeasure: state.BeatsPerMeasure,
		Running:         state.Running,
		CurrentBeat:     state.CurrentBeat,
		Volume:          state.Volume,
		Muted:           state.Volume == 0,
	}
}
