package service

import (
	"context"
	"fmt"
	"time"

	"stringlog/internal/modules/practice/domain"
	sessionout "stringlog/internal/modules/practice/port/out"
	"stringlog/internal/platform/clock"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/id"
)

type SessionService struct {
	clock   clock.Clock
	idGen   id.Generator
	repo    sessionout.SessionRepository
	journal sessionout.SessionJournal
}

func NewSessionService(clock clock.Clock, idGen id.Generator, repo sessionout.SessionRepository, journal sessionout.SessionJournal) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, repo: repo, journal: journal}
}

// Append stores a new session with a generated id and creation timestamp.
// A missing end time is derived from the duration.
func (s *SessionService) Append(ctx context.Context, draft domain.Session) (domain.Session, error) {
	draft.ID = s.idGen.New()
	draft.CreatedAt = s.clock.Now()
	if draft.EndedAt.IsZero() && !draft.StartedAt.IsZero() {
		draft.EndedAt = draft.StartedAt.Add(time.Duration(draft.DurationSec) * time.Second)
	}
	if err := draft.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.repo.Append(ctx, draft); err != nil {
		return domain.Session{}, err
	}
	return draft, nil
}

func (s *SessionService) Update(ctx context.Context, id string, patch domain.SessionPatch) (domain.Session, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	updated := patch.Apply(current)
	if err := updated.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return domain.Session{}, err
	}
	return updated, nil
}

func (s *SessionService) Remove(ctx context.Context, id string) error {
	return s.repo.Remove(ctx, id)
}

func (s *SessionService) Get(ctx context.Context, id string) (domain.Session, error) {
	return s.repo.Get(ctx, id)
}

// List returns sessions newest first, optionally narrowed to one song.
func (s *SessionService) List(ctx context.Context, filter domain.SessionFilter) ([]domain.Session, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortNewestFirst(all)
	out := make([]domain.Session, 0, len(all))
	for _, session := range all {
		if !filter.Matches(session) {
			continue
		}
		out = append(out, session)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// ReplaceAll swaps the whole collection, keeping the given ids.
func (s *SessionService) ReplaceAll(ctx context.Context, sessions []domain.Session) error {
	seen := make(map[string]struct{}, len(sessions))
	for _, session := range sessions {
		if err := session.Validate(); err != nil {
			return fmt.Errorf("%w: session %s: %v", apperrors.ErrInvalidInput, session.ID, err)
		}
		if _, dup := seen[session.ID]; dup {
			return fmt.Errorf("%w: duplicate session id %s", apperrors.ErrInvalidInput, session.ID)
		}
		seen[session.ID] = struct{}{}
	}
	return s.repo.ReplaceAll(ctx, sessions)
}

func (s *SessionService) ReadJournal(ctx context.Context, id string) (domain.JournalNote, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return domain.JournalNote{}, err
	}
	if s.journal == nil {
		return domain.JournalNote{}, fmt.Errorf("%w: journal is disabled", apperrors.ErrNotFound)
	}
	return s.journal.Read(ctx, session)
}

func (s *SessionService) WriteJournal(ctx context.Context, session domain.Session, songTitle string) (string, error) {
	if s.journal == nil {
		return "", nil
	}
	return s.journal.Write(ctx, session, songTitle)
}
