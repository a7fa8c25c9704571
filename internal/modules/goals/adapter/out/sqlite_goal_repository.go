package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stringlog/internal/modules/goals/domain"
	goalsout "stringlog/internal/modules/goals/port/out"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/sqlite"
)

type SQLiteGoalRepository struct {
	db *sql.DB
}

func NewSQLiteGoalRepository(ctx context.Context, db *sql.DB) (goalsout.GoalRepository, error) {
	repo := &SQLiteGoalRepository{db: db}
	if err := repo.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteGoalRepository) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS goals (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  target_hours REAL NOT NULL,
  period TEXT NOT NULL,
  progress REAL NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  completed_at TEXT
);
`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create goals table: %w", err)
	}
	return nil
}

const goalColumns = `id, title, target_hours, period, progress, created_at, completed_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SQLiteGoalRepository) Insert(ctx context.Context, goal domain.Goal) error {
	return insertGoal(ctx, r.db, goal)
}

func insertGoal(ctx context.Context, db execer, goal domain.Goal) error {
	_, err := db.ExecContext(ctx, `INSERT INTO goals (`+goalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		goal.ID,
		goal.Title,
		goal.TargetHours,
		string(goal.Period),
		goal.Progress,
		sqlite.FormatTime(goal.CreatedAt),
		sqlite.FormatOptionalTime(goal.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepository) Update(ctx context.Context, goal domain.Goal) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE goals SET title = ?, target_hours = ?, period = ?, progress = ?, completed_at = ?
WHERE id = ?`,
		goal.Title,
		goal.TargetHours,
		string(goal.Period),
		goal.Progress,
		sqlite.FormatOptionalTime(goal.CompletedAt),
		goal.ID,
	)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireRow(res, goal.ID)
}

func (r *SQLiteGoalRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteGoalRepository) Get(ctx context.Context, id string) (domain.Goal, error) {
	goal, err := scanGoal(r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Goal{}, fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, id)
	}
	return goal, err
}

func (r *SQLiteGoalRepository) List(ctx context.Context) ([]domain.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+goalColumns+` FROM goals`)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()
	out := []domain.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return out, nil
}

func (r *SQLiteGoalRepository) ReplaceAll(ctx context.Context, goals []domain.Goal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace goals: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM goals`); err != nil {
		return fmt.Errorf("clear goals: %w", err)
	}
	for _, goal := range goals {
		if err := insertGoal(ctx, tx, goal); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace goals: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(row scanner) (domain.Goal, error) {
	var (
		goal      domain.Goal
		period    string
		createdAt string
		completed sql.NullString
	)
	err := row.Scan(&goal.ID, &goal.Title, &goal.TargetHours, &period, &goal.Progress, &createdAt, &completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Goal{}, err
		}
		return domain.Goal{}, fmt.Errorf("scan goal: %w", err)
	}
	goal.Period = domain.Period(period)
	if goal.CreatedAt, err = sqlite.ParseTime(createdAt); err != nil {
		return domain.Goal{}, fmt.Errorf("%w: goal %s: %v", apperrors.ErrDataIntegrity, goal.ID, err)
	}
	if goal.CompletedAt, err = sqlite.ParseOptionalTime(completed); err != nil {
		return domain.Goal{}, fmt.Errorf("%w: goal %s: %v", apperrors.ErrDataIntegrity, goal.ID, err)
	}
	return goal, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, id)
	}
	return nil
}
