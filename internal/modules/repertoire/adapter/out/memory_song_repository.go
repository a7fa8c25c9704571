package out

import (
	"context"
	"fmt"
	"sync"

	"stringlog/internal/modules/repertoire/domain"
	apperrors "stringlog/internal/platform/errors"
)

type MemorySongRepository struct {
	mu    sync.RWMutex
	songs map[string]domain.Song
}

func NewMemorySongRepository() *MemorySongRepository {
	return &MemorySongRepository{songs: map[string]domain.Song{}}
}

func (r *MemorySongRepository) Insert(_ context.Context, song domain.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.songs[song.ID]; ok {
		return fmt.Errorf("%w: duplicate song id %s", apperrors.ErrInvalidInput, song.ID)
	}
	r.songs[song.ID] = song
	return nil
}

func (r *MemorySongRepository) Update(_ context.Context, song domain.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.songs[song.ID]; !ok {
		return fmt.Errorf("%w: song %s", apperrors.ErrNotFound, song.ID)
	}
	r.songs[song.ID] = song
	return nil
}

func (r *MemorySongRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.songs[id]; !ok {
		return fmt.Errorf("%w: song %s", apperrors.ErrNotFound, id)
	}
	delete(r.songs, id)
	return nil
}

func (r *MemorySongRepository) Get(_ context.Context, id string) (domain.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	song, ok := r.songs[id]
	if !ok {
		return domain.Song{}, fmt.Errorf("%w: song %s", apperrors.ErrNotFound, id)
	}
	return song, nil
}

func (r *MemorySongRepository) List(_ context.Context) ([]domain.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Song, 0, len(r.songs))
	for _, song := range r.songs {
		out = append(out, song)
	}
	return out, nil
}

func (r *MemorySongRepository) ReplaceAll(_ context.Context, songs []domain.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.songs = make(map[string]domain.Song, len(songs))
	for _, song := range songs {
		r.songs[song.ID] = song
	}
	return nil
}
