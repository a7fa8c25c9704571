package sqlite_test

import (
	"path/filepath"
	"testing"
	"time"

	"stringlog/internal/platform/sqlite"
)

func TestOpenCreatesDirectory(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "nested", "x.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestOpenWaitsForLockedDatabase(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "x.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var timeout int64
	if err := db.QueryRow(`PRAGMA busy_timeout;`).Scan(&timeout); err != nil {
		t.Fatalf("read busy_timeout: %v", err)
	}
	if timeout != sqlite.BusyTimeout.Milliseconds() {
		t.Fatalf("busy_timeout = %d, want %d", timeout, sqlite.BusyTimeout.Milliseconds())
	}
	var mode string
	if err := db.QueryRow(`PRAGMA journal_mode;`).Scan(&mode); err != nil {
		t.Fatalf("read journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Fatalf("journal_mode = %q, want wal", mode)
	}
}

func TestTimeRoundTripKeepsMilliseconds(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 3, 1, 9, 30, 15, 123_000_000, time.FixedZone("CET", 3600))
	got, err := sqlite.ParseTime(sqlite.FormatTime(at))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !got.Equal(at) {
		t.Fatalf("expected %v, got %v", at, got)
	}
	none, err := sqlite.ParseOptionalTime(sqlite.FormatOptionalTime(nil))
	if err != nil || none != nil {
		t.Fatalf("expected nil optional time, got %v (%v)", none, err)
	}
	if _, err := sqlite.ParseTime("yesterday"); err == nil {
		t.Fatalf("garbage time must fail")
	}
}
