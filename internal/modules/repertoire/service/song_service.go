package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"stringlog/internal/modules/repertoire/domain"
	repertoireout "stringlog/internal/modules/repertoire/port/out"
	"stringlog/internal/platform/clock"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/id"
)

type SongService struct {
	clock    clock.Clock
	idGen    id.Generator
	repo     repertoireout.SongRepository
	searcher repertoireout.TrackSearcher
}

func NewSongService(clock clock.Clock, idGen id.Generator, repo repertoireout.SongRepository, searcher repertoireout.TrackSearcher) *SongService {
	return &SongService{clock: clock, idGen: idGen, repo: repo, searcher: searcher}
}

func (s *SongService) Add(ctx context.Context, draft domain.Song) (domain.Song, error) {
	draft.ID = s.idGen.New()
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Artist = strings.TrimSpace(draft.Artist)
	draft.CreatedAt = s.clock.Now()
	draft.TotalPracticeSec = 0
	draft.LastPracticedAt = nil
	if draft.Status == "" {
		draft.Status = domain.StatusLearning
	}
	if err := draft.Validate(); err != nil {
		return domain.Song{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.repo.Insert(ctx, draft); err != nil {
		return domain.Song{}, err
	}
	return draft, nil
}

// Update applies an edit. Practice totals are not editable here.
func (s *SongService) Update(ctx context.Context, id string, patch domain.SongPatch) (domain.Song, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Song{}, err
	}
	updated := patch.Apply(current)
	if err := updated.Validate(); err != nil {
		return domain.Song{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return domain.Song{}, err
	}
	return updated, nil
}

func (s *SongService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *SongService) Get(ctx context.Context, id string) (domain.Song, error) {
	return s.repo.Get(ctx, id)
}

func (s *SongService) List(ctx context.Context, status domain.Status, query string) ([]domain.Song, error) {
	if status != "" {
		if err := status.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortNewestFirst(all)
	out := make([]domain.Song, 0, len(all))
	for _, song := range all {
		if song.Matches(status, query) {
			out = append(out, song)
		}
	}
	return out, nil
}

func (s *SongService) IncrementPracticeTime(ctx context.Context, id string, seconds int) (domain.Song, error) {
	song, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Song{}, err
	}
	if err := song.Credit(seconds, s.clock.Now()); err != nil {
		return domain.Song{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.repo.Update(ctx, song); err != nil {
		return domain.Song{}, err
	}
	return song, nil
}

func (s *SongService) Stats(ctx context.Context) (domain.Stats, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.CountByStatus(all), nil
}

func (s *SongService) ReplaceAll(ctx context.Context, songs []domain.Song) error {
	seen := make(map[string]struct{}, len(songs))
	for _, song := range songs {
		if err := song.Validate(); err != nil {
			return fmt.Errorf("%w: song %s: %v", apperrors.ErrInvalidInput, song.ID, err)
		}
		if _, dup := seen[song.ID]; dup {
			return fmt.Errorf("%w: duplicate song id %s", apperrors.ErrInvalidInput, song.ID)
		}
		seen[song.ID] = struct{}{}
	}
	return s.repo.ReplaceAll(ctx, songs)
}

// Search returns no results for queries under two characters without
// contacting the catalogue.
func (s *SongService) Search(ctx context.Context, query string) ([]domain.Track, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < domain.MinSearchQuery {
		return []domain.Track{}, nil
	}
	if s.searcher == nil {
		return nil, fmt.Errorf("%w: no track catalogue configured", apperrors.ErrSearchUnavailable)
	}
	return s.searcher.Search(ctx, query)
}
