package out

import (
	"context"

	"stringlog/internal/modules/practice/domain"
)

type SessionRepository interface {
	Append(ctx context.Context, session domain.Session) error
	Update(ctx context.Context, session domain.Session) error
	Remove(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
	ReplaceAll(ctx context.Context, sessions []domain.Session) error
}

type TimerStore interface {
	Load(ctx context.Context) (domain.Timer, error)
	Save(ctx context.Context, timer domain.Timer) error
}

// SessionJournal mirrors completed sessions into human-readable notes.
type SessionJournal interface {
	Write(ctx context.Context, session domain.Session, songTitle string) (string, error)
	Read(ctx context.Context, session domain.Session) (domain.JournalNote, error)
}

// SongLedger credits practice time to the repertoire.
type SongLedger interface {
	AddPracticeTime(ctx context.Context, songID string, seconds int) error
	SongTitle(ctx context.Context, songID string) (string, error)
	// MatchingSongs returns the ids of songs whose title or artist contains query.
	MatchingSongs(ctx context.Context, query string) ([]string, error)
}

// GoalRefresher recomputes cached goal progress after a store mutation.
type GoalRefresher interface {
	Refresh(ctx context.Context) error
}
