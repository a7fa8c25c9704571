package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	practiceadapter "stringlog/internal/modules/practice/adapter/out"
	"stringlog/internal/modules/practice/domain"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/sqlite"
)

func TestSQLiteSessionRepositoryRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "stringlog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo, err := practiceadapter.NewSQLiteSessionRepository(ctx, db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	zone := time.FixedZone("CET", 3600)
	start := time.Date(2026, 5, 10, 7, 30, 15, 123_000_000, zone)
	session := domain.Session{
		ID:          "s-1",
		StartedAt:   start,
		EndedAt:     start.Add(25 * time.Minute),
		DurationSec: 1500,
		Notes:       "tremolo",
		SongID:      "song-1",
		Instrument:  domain.InstrumentViolin,
		CreatedAt:   start.Add(25 * time.Minute),
	}
	if err := repo.Append(ctx, session); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := repo.Get(ctx, "s-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.StartedAt.Equal(start) || got.DurationSec != 1500 || got.Instrument != domain.InstrumentViolin || got.Notes != "tremolo" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	got.Notes = "tremolo, spiccato"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.Update(ctx, domain.Session{ID: "missing", StartedAt: start, EndedAt: start, CreatedAt: start}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}

	replacement := []domain.Session{
		{ID: "r-1", StartedAt: start, EndedAt: start, CreatedAt: start},
		{ID: "r-2", StartedAt: start.Add(time.Hour), EndedAt: start.Add(time.Hour), DurationSec: 30, CreatedAt: start},
	}
	if err := repo.ReplaceAll(ctx, replacement); err != nil {
		t.Fatalf("replace all: %v", err)
	}
	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 sessions after replace, got %d", len(all))
	}
	if _, err := repo.Get(ctx, "s-1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("replaced session must be gone, got %v", err)
	}
	if err := repo.Remove(ctx, "r-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := repo.Remove(ctx, "r-1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestSQLiteSessionRepositoryFlagsCorruptRows(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "stringlog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo, err := practiceadapter.NewSQLiteSessionRepository(ctx, db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO sessions (id, started_at, ended_at, duration_seconds, created_at) VALUES ('bad', 'yesterday', 'today', 10, 'now')`); err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}
	if _, err := repo.List(ctx); !errors.Is(err, apperrors.ErrDataIntegrity) {
		t.Fatalf("expected ErrDataIntegrity, got %v", err)
	}
}

func TestFileTimerStorePersistsAcrossInstances(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".stringlog", "timer.json")

	first := practiceadapter.NewFileTimerStore(path)
	loaded, err := first.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if loaded.Current() != domain.TimerIdle {
		t.Fatalf("missing file must load as idle, got %s", loaded.Current())
	}
	start := time.Date(2026, 5, 10, 7, 0, 0, 0, time.UTC)
	if err := loaded.Start(start); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := first.Save(ctx, loaded); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := practiceadapter.NewFileTimerStore(path)
	restored, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !restored.Running() || restored.Elapsed(start.Add(42*time.Second)) != 42 {
		t.Fatalf("restored timer mismatch: %+v", restored)
	}
}
