package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	remindersadapter "stringlog/internal/modules/reminders/adapter/out"
	"stringlog/internal/modules/reminders/domain"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/sqlite"
)

func TestSQLiteReminderRepositoryRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "stringlog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo, err := remindersadapter.NewSQLiteReminderRepository(ctx, db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	created := time.Date(2026, 3, 1, 10, 0, 0, 500_000_000, time.UTC)
	reminder := domain.Reminder{ID: "r-1", Title: "Scales", Time: "18:45", Days: []int{1, 3, 5}, Enabled: true, CreatedAt: created}
	if err := repo.Insert(ctx, reminder); err != nil {
		t.Fatalf("insert: %v", err)
	}
	reminder.Enabled = false
	reminder.Days = []int{0}
	if err := repo.Update(ctx, reminder); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.Get(ctx, "r-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Enabled || len(got.Days) != 1 || got.Days[0] != 0 || got.Time != "18:45" || !got.CreatedAt.Equal(created) {
		t.Fatalf("round trip mismatch %+v", got)
	}
	if err := repo.Delete(ctx, "r-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "r-1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
