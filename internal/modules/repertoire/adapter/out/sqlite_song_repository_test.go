package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	repertoireadapter "stringlog/internal/modules/repertoire/adapter/out"
	"stringlog/internal/modules/repertoire/domain"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/sqlite"
)

func TestSQLiteSongRepositoryRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "stringlog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo, err := repertoireadapter.NewSQLiteSongRepository(ctx, db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	created := time.Date(2026, 6, 1, 12, 0, 0, 500_000_000, time.UTC)
	song := domain.Song{ID: "s-1", Title: "Asturias", Artist: "Albéniz", Status: domain.StatusLearning, Difficulty: 5, CreatedAt: created}
	if err := repo.Insert(ctx, song); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := repo.Get(ctx, "s-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LastPracticedAt != nil || !got.CreatedAt.Equal(created) || got.Artist != "Albéniz" {
		t.Fatalf("round trip mismatch %+v", got)
	}

	if err := got.Credit(600, created.Add(time.Hour)); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	reloaded, err := repo.Get(ctx, "s-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.TotalPracticeSec != 600 || reloaded.LastPracticedAt == nil || !reloaded.LastPracticedAt.Equal(created.Add(time.Hour)) {
		t.Fatalf("credit not persisted %+v", reloaded)
	}

	if err := repo.Delete(ctx, "s-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "s-1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
