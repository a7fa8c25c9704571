package out

import (
	"context"
	"fmt"
	"sync"

	"stringlog/internal/modules/practice/domain"
	apperrors "stringlog/internal/platform/errors"
)

// MemorySessionRepository keeps sessions in process memory. It backs tests
// and dry runs.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: map[string]domain.Session{}}
}

func (r *MemorySessionRepository) Append(_ context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; ok {
		return fmt.Errorf("%w: duplicate session id %s", apperrors.ErrInvalidInput, session.ID)
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *MemorySessionRepository) Update(_ context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; !ok {
		return fmt.Errorf("%w: session %s", apperrors.ErrNotFound, session.ID)
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *MemorySessionRepository) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: session %s", apperrors.ErrNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

func (r *MemorySessionRepository) Get(_ context.Context, id string) (domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, id)
	}
	return session, nil
}

func (r *MemorySessionRepository) List(_ context.Context) ([]domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		out = append(out, session)
	}
	return out, nil
}

func (r *MemorySessionRepository) ReplaceAll(_ context.Context, sessions []domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make(map[string]domain.Session, len(sessions))
	for _, session := range sessions {
		r.sessions[session.ID] = session
	}
	return nil
}
