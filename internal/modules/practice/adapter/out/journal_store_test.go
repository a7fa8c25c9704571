package out_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	practiceadapter "stringlog/internal/modules/practice/adapter/out"
	"stringlog/internal/modules/practice/domain"
	apperrors "stringlog/internal/platform/errors"
)

func TestMarkdownJournalKeepsSessionsStartedTogether(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	journal := practiceadapter.NewMarkdownJournal(t.TempDir())
	started := time.Date(2026, 3, 2, 19, 5, 0, 0, time.UTC)

	first := domain.Session{ID: "4f1c2a9e-0000-4000-8000-000000000001", StartedAt: started, DurationSec: 60, Notes: "first take"}
	second := domain.Session{ID: "9b7d3e10-0000-4000-8000-000000000002", StartedAt: started, DurationSec: 90, Notes: "second take"}

	firstPath, err := journal.Write(ctx, first, "Blackbird")
	if err != nil {
		t.Fatalf("write first: %v", err)
	}
	secondPath, err := journal.Write(ctx, second, "Blackbird")
	if err != nil {
		t.Fatalf("write second: %v", err)
	}
	if firstPath == secondPath {
		t.Fatalf("both notes written to %s", firstPath)
	}
	if !strings.HasSuffix(firstPath, "190500-blackbird-4f1c2a9e.md") {
		t.Fatalf("unexpected path %s", firstPath)
	}

	for _, tc := range []struct {
		session domain.Session
		path    string
		notes   string
	}{
		{first, firstPath, "first take"},
		{second, secondPath, "second take"},
	} {
		note, err := journal.Read(ctx, tc.session)
		if err != nil {
			t.Fatalf("read %s: %v", tc.session.ID, err)
		}
		if note.Path != tc.path || note.SessionID != tc.session.ID || note.Song != "Blackbird" {
			t.Fatalf("unexpected note %+v", note)
		}
		if !strings.Contains(note.Body, tc.notes) {
			t.Fatalf("note body missing %q:\n%s", tc.notes, note.Body)
		}
	}
}

func TestMarkdownJournalReadMissing(t *testing.T) {
	t.Parallel()
	journal := practiceadapter.NewMarkdownJournal(t.TempDir() + "/never-created")
	_, err := journal.Read(context.Background(), domain.Session{ID: "sess-1", StartedAt: time.Now()})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
