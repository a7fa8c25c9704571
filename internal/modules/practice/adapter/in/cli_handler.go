package in

import (
	"context"
	"time"

	practicedto "stringlog/internal/modules/practice/dto"
	practicein "stringlog/internal/modules/practice/port/in"
)

type CLIHandler struct {
	usecase practicein.Usecase
}

func NewCLIHandler(usecase practicein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (practicedto.TimerOutput, error) {
	return h.usecase.StartTimer(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) (practicedto.TimerOutput, error) {
	return h.usecase.PauseTimer(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (practicedto.TimerOutput, error) {
	return h.usecase.ResumeTimer(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) (practicedto.TimerOutput, error) {
	return h.usecase.ResetTimer(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (practicedto.TimerOutput, error) {
	return h.usecase.TimerStatus(ctx)
}

func (h CLIHandler) Stop(ctx context.Context, notes, songID, instrument string) (practicedto.StopOutput, error) {
	return h.usecase.StopTimer(ctx, practicedto.StopInput{Notes: notes, SongID: songID, Instrument: instrument})
}

func (h CLIHandler) Log(ctx context.Context, startedAt time.Time, duration time.Duration, notes, songID, instrument string) (practicedto.Session, error) {
	return h.usecase.LogSession(ctx, practicedto.LogInput{
		StartedAt:   startedAt,
		DurationSec: int(duration / time.Second),
		Notes:       notes,
		SongID:      songID,
		Instrument:  instrument,
	})
}

func (h CLIHandler) List(ctx context.Context, songID string, limit int) ([]practicedto.Session, error) {
	return h.usecase.ListSessions(ctx, practicedto.ListFilter{SongID: songID, Limit: limit})
}

// History lists sessions with the full filter set of the history view.
func (h CLIHandler) History(ctx context.Context, filter practicedto.ListFilter) ([]practicedto.Session, error) {
	return h.usecase.ListSessions(ctx, filter)
}

func (h CLIHandler) Journal(ctx context.Context, id string) (practicedto.JournalNote, error) {
	return h.usecase.JournalNote(ctx, id)
}

func (h CLIHandler) Get(ctx context.Context, id string) (practicedto.Session, error) {
	return h.usecase.GetSession(ctx, id)
}

func (h CLIHandler) Edit(ctx context.Context, input practicedto.UpdateInput) (practicedto.Session, error) {
	return h.usecase.UpdateSession(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.DeleteSession(ctx, id)
}
