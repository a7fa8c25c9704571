package in

import (
	"context"

	metronomedto "stringlog/internal/modules/metronome/dto"
)

type Usecase interface {
	Start(ctx context.Context) (metronomedto.State, error)
	Stop(ctx context.Context) metronomedto.State
	Toggle(ctx context.Context) (metronomedto.State, error)
	SetBPM(ctx context.Context, bpm int) metronomedto.State
	NudgeBPM(ctx context.Context, delta int) metronomedto.State
	SetVolume(ctx context.Context, volume int) metronomedto.State
	ToggleMute(ctx context.Context) metronomedto.State
	State(ctx context.Context) metronomedto.State
	// Subscribe registers a listener for state changes, including beat indicator moves.
	Subscribe(listener func(metronomedto.State)) (unsubscribe func())
	Close() error
}
