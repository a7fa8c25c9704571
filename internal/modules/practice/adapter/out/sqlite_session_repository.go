package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stringlog/internal/modules/practice/domain"
	practiceout "stringlog/internal/modules/practice/port/out"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/sqlite"
)

type SQLiteSessionRepository struct {
	db *sql.DB
}

func NewSQLiteSessionRepository(ctx context.Context, db *sql.DB) (practiceout.SessionRepository, error) {
	repo := &SQLiteSessionRepository{db: db}
	if err := repo.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteSessionRepository) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL,
  duration_seconds INTEGER NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  song_id TEXT NOT NULL DEFAULT '',
  instrument TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_song ON sessions(song_id);
`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

const sessionColumns = `id, started_at, ended_at, duration_seconds, notes, song_id, instrument, created_at`

func (r *SQLiteSessionRepository) Append(ctx context.Context, session domain.Session) error {
	return insertSession(ctx, r.db, session)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertSession(ctx context.Context, db execer, session domain.Session) error {
	_, err := db.ExecContext(ctx, `INSERT INTO sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		sqlite.FormatTime(session.StartedAt),
		sqlite.FormatTime(session.EndedAt),
		session.DurationSec,
		session.Notes,
		session.SongID,
		string(session.Instrument),
		sqlite.FormatTime(session.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepository) Update(ctx context.Context, session domain.Session) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE sessions SET started_at = ?, ended_at = ?, duration_seconds = ?, notes = ?, song_id = ?, instrument = ?
WHERE id = ?`,
		sqlite.FormatTime(session.StartedAt),
		sqlite.FormatTime(session.EndedAt),
		session.DurationSec,
		session.Notes,
		session.SongID,
		string(session.Instrument),
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return requireRow(res, session.ID)
}

func (r *SQLiteSessionRepository) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteSessionRepository) Get(ctx context.Context, id string) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, id)
	}
	return session, err
}

func (r *SQLiteSessionRepository) List(ctx context.Context) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM sessions`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()
	out := []domain.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func (r *SQLiteSessionRepository) ReplaceAll(ctx context.Context, sessions []domain.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace sessions: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	for _, session := range sessions {
		if err := insertSession(ctx, tx, session); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace sessions: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (domain.Session, error) {
	var (
		session                     domain.Session
		startedAt, endedAt, created string
		instrument                  string
	)
	if err := row.Scan(&session.ID, &startedAt, &endedAt, &session.DurationSec, &session.Notes, &session.SongID, &instrument, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("scan session: %w", err)
	}
	var err error
	if session.StartedAt, err = sqlite.ParseTime(startedAt); err != nil {
		return domain.Session{}, fmt.Errorf("%w: session %s: %v", apperrors.ErrDataIntegrity, session.ID, err)
	}
	if session.EndedAt, err = sqlite.ParseTime(endedAt); err != nil {
		return domain.Session{}, fmt.Errorf("%w: session %s: %v", apperrors.ErrDataIntegrity, session.ID, err)
	}
	if session.CreatedAt, err = sqlite.ParseTime(created); err != nil {
		return domain.Session{}, fmt.Errorf("%w: session %s: %v", apperrors.ErrDataIntegrity, session.ID, err)
	}
	session.Instrument = domain.Instrument(instrument)
	return session, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: session %s", apperrors.ErrNotFound, id)
	}
	return nil
}
