package in

import (
	"context"

	metronomedto "stringlog/internal/modules/metronome/dto"
	metronomein "stringlog/internal/modules/metronome/port/in"
)

// TUIHandler drives the metronome from the interactive practice view.
type TUIHandler struct {
	usecase metronomein.Usecase
}

func NewTUIHandler(usecase metronomein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Toggle(ctx context.Context) (metronomedto.State, error) {
	return h.usecase.Toggle(ctx)
}

func (h TUIHandler) Nudge(ctx context.Context, delta int) metronomedto.State {
	return h.usecase.NudgeBPM(ctx, delta)
}

func (h TUIHandler) SetBPM(ctx context.Context, bpm int) metronomedto.State {
	return h.usecase.SetBPM(ctx, bpm)
}

func (h TUIHandler) ToggleMute(ctx context.Context) metronomedto.State {
	return h.usecase.ToggleMute(ctx)
}

func (h TUIHandler) State(ctx context.Context) metronomedto.State {
	return h.usecase.State(ctx)
}

func (h TUIHandler) Subscribe(listener func(metronomedto.State)) func() {
	return h.usecase.Subscribe(listener)
}

func (h TUIHandler) Close() error {
	return h.usecase.Close()
}
