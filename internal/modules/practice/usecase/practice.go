package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"stringlog/internal/modules/practice/domain"
	practicedto "stringlog/internal/modules/practice/dto"
	practicein "stringlog/internal/modules/practice/port/in"
	practiceout "stringlog/internal/modules/practice/port/out"
	"stringlog/internal/modules/practice/service"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/tx"
)

type Interactor struct {
	sessions *service.SessionService
	timer    *service.TimerService
	songs    practiceout.SongLedger
	goals    practiceout.GoalRefresher
	tx       tx.Manager
	logger   *zap.Logger
}

func NewInteractor(
	sessions *service.SessionService,
	timer *service.TimerService,
	songs practiceout.SongLedger,
	goals practiceout.GoalRefresher,
	txm tx.Manager,
	logger *zap.Logger,
) practicein.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{sessions: sessions, timer: timer, songs: songs, goals: goals, tx: txm, logger: logger}
}

// Reader exposes the read side only; it has no dependency on other modules
// so it can be handed to them before the full interactor exists.
type Reader struct {
	sessions *service.SessionService
}

func NewReader(sessions *service.SessionService) practicein.SessionReader {
	return &Reader{sessions: sessions}
}

func (r *Reader) ListSessions(ctx context.Context, filter practicedto.ListFilter) ([]practicedto.Session, error) {
	return listSessions(ctx, r.sessions, nil, filter)
}

func (i *Interactor) ListSessions(ctx context.Context, filter practicedto.ListFilter) ([]practicedto.Session, error) {
	return listSessions(ctx, i.sessions, i.songs, filter)
}

// listSessions resolves a text query through songs; a nil ledger cannot
// serve one.
func listSessions(ctx context.Context, sessions *service.SessionService, songs practiceout.SongLedger, filter practicedto.ListFilter) ([]practicedto.Session, error) {
	criteria := domain.SessionFilter{
		SongID:     filter.SongID,
		Instrument: domain.Instrument(strings.ToLower(strings.TrimSpace(filter.Instrument))),
		Limit:      filter.Limit,
	}
	if err := criteria.Instrument.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		if songs == nil {
			return nil, fmt.Errorf("%w: song search is not available here", apperrors.ErrInvalidInput)
		}
		ids, err := songs.MatchingSongs(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("match songs: %w", err)
		}
		criteria.SongIDs = make(map[string]bool, len(ids))
		for _, id := range ids {
			criteria.SongIDs[id] = true
		}
	}
	items, err := sessions.List(ctx, criteria)
	if err != nil {
		return nil, err
	}
	out := make([]practicedto.Session, 0, len(items))
	for _, s := range items {
		out = append(out, toDTO(s))
	}
	return out, nil
}

func (i *Interactor) GetSession(ctx context.Context, id string) (practicedto.Session, error) {
	s, err := i.sessions.Get(ctx, id)
	if err != nil {
		return practicedto.Session{}, err
	}
	return toDTO(s), nil
}

func (i *Interactor) LogSession(ctx context.Context, input practicedto.LogInput) (practicedto.Session, error) {
	draft := domain.Session{
		StartedAt:   input.StartedAt,
		EndedAt:     input.EndedAt,
		DurationSec: input.DurationSec,
		Notes:       input.Notes,
		SongID:      input.SongID,
		Instrument:  domain.Instrument(input.Instrument),
	}
	if draft.DurationSec == 0 && !draft.EndedAt.IsZero() && draft.EndedAt.After(draft.StartedAt) {
		draft.DurationSec = int(draft.EndedAt.Sub(draft.StartedAt).Seconds())
	}
	var stored domain.Session
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		stored, err = i.record(ctx, draft)
		return err
	})
	if err != nil {
		return practicedto.Session{}, err
	}
	return toDTO(stored), nil
}

func (i *Interactor) UpdateSession(ctx context.Context, input practicedto.UpdateInput) (practicedto.Session, error) {
	patch := domain.SessionPatch{
		StartedAt:   input.StartedAt,
		EndedAt:     input.EndedAt,
		DurationSec: input.DurationSec,
		Notes:       input.Notes,
		SongID:      input.SongID,
	}
	if input.Instrument != nil {
		instrument := domain.Instrument(*input.Instrument)
		patch.Instrument = &instrument
	}
	var updated domain.Session
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		updated, err = i.sessions.Update(ctx, input.ID, patch)
		if err != nil {
			return err
		}
		i.refreshGoals(ctx)
		return nil
	})
	if err != nil {
		return practicedto.Session{}, err
	}
	return toDTO(updated), nil
}

func (i *Interactor) DeleteSession(ctx context.Context, id string) error {
	return i.tx.Within(ctx, func(ctx context.Context) error {
		if err := i.sessions.Remove(ctx, id); err != nil {
			return err
		}
		i.refreshGoals(ctx)
		return nil
	})
}

func (i *Interactor) RestoreSessions(ctx context.Context, sessions []practicedto.Session) error {
	items := make([]domain.Session, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, fromDTO(s))
	}
	return i.tx.Within(ctx, func(ctx context.Context) error {
		if err := i.sessions.ReplaceAll(ctx, items); err != nil {
			return err
		}
		i.refreshGoals(ctx)
		return nil
	})
}

func (i *Interactor) JournalNote(ctx context.Context, id string) (practicedto.JournalNote, error) {
	note, err := i.sessions.ReadJournal(ctx, id)
	if err != nil {
		return practicedto.JournalNote{}, err
	}
	return practicedto.JournalNote{Path: note.Path, Song: note.Song, Body: note.Body}, nil
}

func (i *Interactor) StartTimer(ctx context.Context) (practicedto.TimerOutput, error) {
	return timerOutput(i.timer.Start(ctx))
}

func (i *Interactor) PauseTimer(ctx context.Context) (practicedto.TimerOutput, error) {
	return timerOutput(i.timer.Pause(ctx))
}

func (i *Interactor) ResumeTimer(ctx context.Context) (practicedto.TimerOutput, error) {
	return timerOutput(i.timer.Resume(ctx))
}

func (i *Interactor) ResetTimer(ctx context.Context) (practicedto.TimerOutput, error) {
	return timerOutput(i.timer.Reset(ctx))
}

func (i *Interactor) TimerStatus(ctx context.Context) (practicedto.TimerOutput, error) {
	return timerOutput(i.timer.Status(ctx))
}

// StopTimer turns the running timer into a stored session, credits the song,
// refreshes goal progress and finally resets the timer.
func (i *Interactor) StopTimer(ctx context.Context, input practicedto.StopInput) (practicedto.StopOutput, error) {
	instrument := domain.Instrument(input.Instrument)
	if err := instrument.Validate(); err != nil {
		return practicedto.StopOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	var out practicedto.StopOutput
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		_, err := i.timer.StopWith(ctx, func(result domain.TimerResult) error {
			stored, err := i.record(ctx, domain.Session{
				StartedAt:   result.StartedAt,
				EndedAt:     result.EndedAt,
				DurationSec: result.ElapsedSec,
				Notes:       input.Notes,
				SongID:      input.SongID,
				Instrument:  instrument,
			})
			if err != nil {
				return err
			}
			out.Session = toDTO(stored)
			out.JournalPath = i.journal(ctx, stored)
			return nil
		})
		return err
	})
	if err != nil {
		return practicedto.StopOutput{}, err
	}
	return out, nil
}

// record appends a session and applies its side effects. Callers hold the
// transaction. Once the append succeeds nothing else can fail the call: a
// caller that retried would store the same practice twice.
func (i *Interactor) record(ctx context.Context, draft domain.Session) (domain.Session, error) {
	stored, err := i.sessions.Append(ctx, draft)
	if err != nil {
		return domain.Session{}, err
	}
	if stored.SongID != "" && i.songs != nil {
		err := i.songs.AddPracticeTime(ctx, stored.SongID, stored.DurationSec)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			i.logger.Warn("session references unknown song", zap.String("session_id", stored.ID), zap.String("song_id", stored.SongID))
		case err != nil:
			i.logger.Error("credit song practice time", zap.String("session_id", stored.ID), zap.String("song_id", stored.SongID), zap.Error(err))
		}
	}
	i.refreshGoals(ctx)
	i.logger.Info("session recorded",
		zap.String("session_id", stored.ID),
		zap.Int("duration_seconds", stored.DurationSec),
		zap.String("song_id", stored.SongID))
	return stored, nil
}

// journal failures never undo a stored session.
func (i *Interactor) journal(ctx context.Context, session domain.Session) string {
	title := ""
	if session.SongID != "" && i.songs != nil {
		if t, err := i.songs.SongTitle(ctx, session.SongID); err == nil {
			title = t
		}
	}
	path, err := i.sessions.WriteJournal(ctx, session, title)
	if err != nil {
		i.logger.Warn("write journal note", zap.String("session_id", session.ID), zap.Error(err))
		return ""
	}
	return path
}

// refreshGoals runs after a committed write. Progress is derived data, so a
// failure is logged and left for the next write or "goal recompute".
func (i *Interactor) refreshGoals(ctx context.Context) {
	if i.goals == nil {
		return
	}
	if err := i.goals.Refresh(ctx); err != nil {
		i.logger.Warn("refresh goals", zap.Error(err))
	}
}

func timerOutput(timer domain.Timer, elapsed int, err error) (practicedto.TimerOutput, error) {
	if err != nil {
		return practicedto.TimerOutput{}, err
	}
	return practicedto.TimerOutput{
		State:      string(timer.Current()),
		StartedAt:  timer.StartedAt,
		ElapsedSec: elapsed,
		Running:    timer.Running(),
	}, nil
}

func toDTO(s domain.Session) practicedto.Session {
	return practicedto.Session{
		ID:          s.ID,
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
		DurationSec: s.DurationSec,
		Notes:       s.Notes,
		SongID:      s.SongID,
		Instrument:  string(s.Instrument),
		CreatedAt:   s.CreatedAt,
	}
}

func fromDTO(s practicedto.Session) domain.Session {
	return domain.Session{
		ID:          s.ID,
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
		DurationSec: s.DurationSec,
		Notes:       s.Notes,
		SongID:      s.SongID,
		Instrument:  domain.Instrument(s.Instrument),
		CreatedAt:   s.CreatedAt,
	}
}
