package in

import (
	"context"

	"stringlog/internal/modules/practice/dto"
)

// SessionReader is the read side of the session store consumed by the
// statistics and goal modules.
type SessionReader interface {
	ListSessions(ctx context.Context, filter dto.ListFilter) ([]dto.Session, error)
}

type Usecase interface {
	SessionReader
	GetSession(ctx context.Context, id string) (dto.Session, error)
	LogSession(ctx context.Context, input dto.LogInput) (dto.Session, error)
	UpdateSession(ctx context.Context, input dto.UpdateInput) (dto.Session, error)
	DeleteSession(ctx context.Context, id string) error
	RestoreSessions(ctx context.Context, sessions []dto.Session) error
	JournalNote(ctx context.Context, id string) (dto.JournalNote, error)

	StartTimer(ctx context.Context) (dto.TimerOutput, error)
	PauseTimer(ctx context.Context) (dto.TimerOutput, error)
	ResumeTimer(ctx context.Context) (dto.TimerOutput, error)
	StopTimer(ctx context.Context, input dto.StopInput) (dto.StopOutput, error)
	ResetTimer(ctx context.Context) (dto.TimerOutput, error)
	TimerStatus(ctx context.Context) (dto.TimerOutput, error)
}
