package out

import (
	"context"

	"stringlog/internal/modules/repertoire/domain"
)

type SongRepository interface {
	Insert(ctx context.Context, song domain.Song) error
	Update(ctx context.Context, song domain.Song) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Song, error)
	List(ctx context.Context) ([]domain.Song, error)
	ReplaceAll(ctx context.Context, songs []domain.Song) error
}

// TrackSearcher queries an external music catalogue.
type TrackSearcher interface {
	Search(ctx context.Context, query string) ([]domain.Track, error)
}
