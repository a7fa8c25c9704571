package out

import (
	"context"

	"stringlog/internal/modules/transfer/domain"
)

type SessionArchive interface {
	Sessions(ctx context.Context) ([]domain.Session, error)
	RestoreSessions(ctx context.Context, sessions []domain.Session) error
}

type SongArchive interface {
	Songs(ctx context.Context) ([]domain.Song, error)
	RestoreSongs(ctx context.Context, songs []domain.Song) error
}

type GoalArchive interface {
	Goals(ctx context.Context) ([]domain.Goal, error)
	// RestoreGoals replaces goals and recomputes their progress.
	RestoreGoals(ctx context.Context, goals []domain.Goal) error
}
