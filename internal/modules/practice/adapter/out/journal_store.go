package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stringlog/internal/modules/practice/domain"
	practiceout "stringlog/internal/modules/practice/port/out"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/markdown"
	"stringlog/internal/platform/slug"
)

type journalHeader struct {
	SchemaVersion   int    `yaml:"schema_version"`
	ID              string `yaml:"id"`
	StartedAt       string `yaml:"started_at"`
	EndedAt         string `yaml:"ended_at"`
	DurationSeconds int    `yaml:"duration_seconds"`
	SongID          string `yaml:"song_id,omitempty"`
	Song            string `yaml:"song,omitempty"`
	Instrument      string `yaml:"instrument,omitempty"`
}

type MarkdownJournal struct {
	dir string
}

func NewMarkdownJournal(dir string) practiceout.SessionJournal {
	return &MarkdownJournal{dir: dir}
}

func (j *MarkdownJournal) Write(_ context.Context, session domain.Session, songTitle string) (string, error) {
	date := session.StartedAt
	dir := filepath.Join(j.dir, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s-%s.md", date.Format("150405"), slug.Make(songTitle, "practice"), noteSuffix(session.ID))
	path := filepath.Join(dir, name)

	header := journalHeader{
		SchemaVersion:   domain.SchemaVersion,
		ID:              session.ID,
		StartedAt:       session.StartedAt.Format(time.RFC3339),
		EndedAt:         session.EndedAt.Format(time.RFC3339),
		DurationSeconds: session.DurationSec,
		SongID:          session.SongID,
		Song:            songTitle,
		Instrument:      string(session.Instrument),
	}
	rendered, err := markdown.RenderFrontmatter(header, journalBody(session, songTitle))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}

// Read returns the note written for session. Notes are matched on the id
// suffix and the header id, so a later song rename or an edited start time
// does not hide them.
func (j *MarkdownJournal) Read(_ context.Context, session domain.Session) (domain.JournalNote, error) {
	suffix := "-" + noteSuffix(session.ID) + ".md"
	found := errors.New("found")
	var note domain.JournalNote
	err := filepath.WalkDir(j.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read journal note: %w", err)
		}
		var header journalHeader
		body, err := markdown.SplitFrontmatter(string(raw), &header)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if header.ID != session.ID {
			return nil
		}
		note = domain.JournalNote{Path: path, SessionID: header.ID, Song: header.Song, Body: body}
		return found
	})
	switch {
	case errors.Is(err, found):
		return note, nil
	case err == nil, errors.Is(err, fs.ErrNotExist):
		return domain.JournalNote{}, fmt.Errorf("%w: no journal note for session %s", apperrors.ErrNotFound, session.ID)
	default:
		return domain.JournalNote{}, err
	}
}

// noteSuffix keeps file names short while separating sessions that start in
// the same second on the same song.
func noteSuffix(id string) string {
	s := slug.Make(id, "session")
	if len(s) > 8 {
		s = strings.TrimRight(s[:8], "-")
	}
	return s
}

func journalBody(session domain.Session, songTitle string) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# Practice %s\n\n", session.StartedAt.Format("2006-01-02 15:04"))
	if songTitle != "" {
		fmt.Fprintf(&b, "- Song: %s\n", songTitle)
	}
	if session.Instrument != "" {
		fmt.Fprintf(&b, "- Instrument: %s\n", session.Instrument)
	}
	fmt.Fprintf(&b, "- Duration: %s\n\n## Notes\n\n", time.Duration(session.DurationSec)*time.Second)
	if notes := strings.TrimSpace(session.Notes); notes != "" {
		b.WriteString(notes)
		b.WriteString("\n")
	}
	return b.String()
}
