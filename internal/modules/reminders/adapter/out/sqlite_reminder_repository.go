package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stringlog/internal/modules/reminders/domain"
	remindersout "stringlog/internal/modules/reminders/port/out"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/sqlite"
)

type SQLiteReminderRepository struct {
	db *sql.DB
}

func NewSQLiteReminderRepository(ctx context.Context, db *sql.DB) (remindersout.ReminderRepository, error) {
	repo := &SQLiteReminderRepository{db: db}
	const ddl = `
CREATE TABLE IF NOT EXISTS reminders (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  time_of_day TEXT NOT NULL,
  days TEXT NOT NULL,
  enabled INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL
);
`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create reminders table: %w", err)
	}
	return repo, nil
}

const reminderColumns = `id, title, time_of_day, days, enabled, created_at`

func (r *SQLiteReminderRepository) Insert(ctx context.Context, reminder domain.Reminder) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO reminders (`+reminderColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		reminder.ID,
		reminder.Title,
		reminder.Time,
		domain.FormatDays(reminder.Days),
		reminder.Enabled,
		sqlite.FormatTime(reminder.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

func (r *SQLiteReminderRepository) Update(ctx context.Context, reminder domain.Reminder) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reminders SET title = ?, time_of_day = ?, days = ?, enabled = ? WHERE id = ?`,
		reminder.Title,
		reminder.Time,
		domain.FormatDays(reminder.Days),
		reminder.Enabled,
		reminder.ID,
	)
	if err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}
	return requireRow(res, reminder.ID)
}

func (r *SQLiteReminderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteReminderRepository) Get(ctx context.Context, id string) (domain.Reminder, error) {
	reminder, err := scanReminder(r.db.QueryRowContext(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Reminder{}, fmt.Errorf("%w: reminder %s", apperrors.ErrNotFound, id)
	}
	return reminder, err
}

func (r *SQLiteReminderRepository) List(ctx context.Context) ([]domain.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+reminderColumns+` FROM reminders`)
	if err != nil {
		return nil, fmt.Errorf("query reminders: %w", err)
	}
	defer rows.Close()
	out := []domain.Reminder{}
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminders: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReminder(row scanner) (domain.Reminder, error) {
	var (
		reminder  domain.Reminder
		days      string
		createdAt string
	)
	err := row.Scan(&reminder.ID, &reminder.Title, &reminder.Time, &days, &reminder.Enabled, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reminder{}, err
		}
		return domain.Reminder{}, fmt.Errorf("scan reminder: %w", err)
	}
	if reminder.Days, err = domain.ParseDays(days); err != nil {
		return domain.Reminder{}, fmt.Errorf("%w: reminder %s: %v", apperrors.ErrDataIntegrity, reminder.ID, err)
	}
	if reminder.CreatedAt, err = sqlite.ParseTime(createdAt); err != nil {
		return domain.Reminder{}, fmt.Errorf("%w: reminder %s: %v", apperrors.ErrDataIntegrity, reminder.ID, err)
	}
	return reminder, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: reminder %s", apperrors.ErrNotFound, id)
	}
	return nil
}
