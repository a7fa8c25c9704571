package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"stringlog/internal/modules/transfer/domain"
	transferout "stringlog/internal/modules/transfer/port/out"
	"stringlog/internal/platform/clock"
	apperrors "stringlog/internal/platform/errors"
)

type TransferService struct {
	clock    clock.Clock
	sessions transferout.SessionArchive
	songs    transferout.SongArchive
	goals    transferout.GoalArchive
	logger   *zap.Logger
}

func NewTransferService(clk clock.Clock, sessions transferout.SessionArchive, songs transferout.SongArchive, goals transferout.GoalArchive, logger *zap.Logger) *TransferService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransferService{clock: clk, sessions: sessions, songs: songs, goals: goals, logger: logger}
}

func (s *TransferService) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	sessions, err := s.sessions.Sessions(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read sessions: %w", err)
	}
	songs, err := s.songs.Songs(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read songs: %w", err)
	}
	goals, err := s.goals.Goals(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read goals: %w", err)
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	if songs == nil {
		songs = []domain.Song{}
	}
	if goals == nil {
		goals = []domain.Goal{}
	}
	return domain.Snapshot{
		Version:    domain.Version,
		ExportedAt: domain.NewTimestamp(s.clock.Now()),
		Sessions:   sessions,
		Songs:      songs,
		Goals:      goals,
	}, nil
}

func (s *TransferService) WriteJSON(ctx context.Context, w io.Writer) (domain.Snapshot, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	s.logger.Info("exported snapshot",
		zap.Int("sessions", len(snapshot.Sessions)),
		zap.Int("songs", len(snapshot.Songs)),
		zap.Int("goals", len(snapshot.Goals)),
	)
	return snapshot, nil
}

// ReadJSON decodes and validates a snapshot without touching stored data.
func (s *TransferService) ReadJSON(r io.Reader) (domain.Snapshot, error) {
	var snapshot domain.Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: decode snapshot: %v", apperrors.ErrInvalidInput, err)
	}
	if err := snapshot.Validate(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return snapshot, nil
}

// Restore replaces sessions, songs and goals. When a later step fails the
// collections already replaced are put back as they were.
func (s *TransferService) Restore(ctx context.Context, snapshot domain.Snapshot) error {
	previous, err := s.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("read current data: %w", err)
	}
	if err := s.sessions.RestoreSessions(ctx, snapshot.Sessions); err != nil {
		return fmt.Errorf("restore sessions: %w", err)
	}
	if err := s.songs.RestoreSongs(ctx, snapshot.Songs); err != nil {
		return s.rollback(ctx, previous, fmt.Errorf("restore songs: %w", err), 1)
	}
	if err := s.goals.RestoreGoals(ctx, snapshot.Goals); err != nil {
		return s.rollback(ctx, previous, fmt.Errorf("restore goals: %w", err), 2)
	}
	s.logger.Info("imported snapshot",
		zap.Int("sessions", len(snapshot.Sessions)),
		zap.Int("songs", len(snapshot.Songs)),
		zap.Int("goals", len(snapshot.Goals)),
	)
	return nil
}

// rollback reinstates the first n collections, in restore order, from previous.
func (s *TransferService) rollback(ctx context.Context, previous domain.Snapshot, cause error, n int) error {
	errs := []error{cause}
	if n >= 2 {
		if err := s.songs.RestoreSongs(ctx, previous.Songs); err != nil {
			errs = append(errs, fmt.Errorf("roll back songs: %w", err))
		}
	}
	if err := s.sessions.RestoreSessions(ctx, previous.Sessions); err != nil {
		errs = append(errs, fmt.Errorf("roll back sessions: %w", err))
	}
	if len(errs) > 1 {
		s.logger.Error("import rollback incomplete", zap.Error(errors.Join(errs[1:]...)))
	} else {
		s.logger.Warn("import rolled back", zap.Error(cause))
	}
	return errors.Join(errs...)
}

// Clear restores an empty snapshot and returns what was there before.
func (s *TransferService) Clear(ctx context.Context) (domain.Snapshot, error) {
	previous, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	empty := domain.Snapshot{
		Version:  domain.Version,
		Sessions: []domain.Session{},
		Songs:    []domain.Song{},
		Goals:    []domain.Goal{},
	}
	if err := s.Restore(ctx, empty); err != nil {
		return domain.Snapshot{}, err
	}
	return previous, nil
}

// WriteCSV writes one header row followed by one row per record.
func (s *TransferService) WriteCSV(ctx context.Context, kind domain.Kind, w io.Writer) (int, error) {
	var (
		header []string
		rows   [][]string
	)
	switch kind {
	case domain.KindSessions:
		sessions, err := s.sessions.Sessions(ctx)
		if err != nil {
			return 0, fmt.Errorf("read sessions: %w", err)
		}
		header = domain.SessionHeader
		for _, session := range sessions {
			rows = append(rows, session.Row())
		}
	case domain.KindSongs:
		songs, err := s.songs.Songs(ctx)
		if err != nil {
			return 0, fmt.Errorf("read songs: %w", err)
		}
		header = domain.SongHeader
		for _, song := range songs {
			rows = append(rows, song.Row())
		}
	default:
		return 0, fmt.Errorf("%w: unsupported export kind %q", apperrors.ErrInvalidInput, kind)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: no %s to export", apperrors.ErrInvalidInput, kind)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return 0, err
	}
	if err := cw.WriteAll(rows); err != nil {
		return 0, fmt.Errorf("write csv: %w", err)
	}
	return len(rows), nil
}
