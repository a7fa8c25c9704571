package in

import (
	"context"
	"time"

	metronomedto "stringlog/internal/modules/metronome/dto"
	metronomein "stringlog/internal/modules/metronome/port/in"
)

type CLIHandler struct {
	usecase metronomein.Usecase
}

func NewCLIHandler(usecase metronomein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Run plays at the given tempo and volume until ctx is done or the duration elapses.
// A zero duration plays until ctx is cancelled. onBeat receives every indicator change.
func (h CLIHandler) Run(ctx context.Context, bpm, volume int, duration time.Duration, onBeat func(metronomedto.State)) (metronomedto.State, error) {
	h.usecase.SetBPM(ctx, bpm)
	h.usecase.SetVolume(ctx, volume)
	if onBeat != nil {
		unsubscribe := h.usecase.Subscribe(onBeat)
		defer unsubscribe()
	}
	state, err := h.usecase.Start(ctx)
	if err != nil {
		return state, err
	}
	defer h.usecase.Close()

	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}
	<-ctx.Done()
	return h.usecase.Stop(context.Background()), nil
}

func (h CLIHandler) State(ctx context.Context) metronomedto.State {
	return h.usecase.State(ctx)
}
