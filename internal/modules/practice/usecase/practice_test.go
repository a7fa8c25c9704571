package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	practiceadapter "stringlog/internal/modules/practice/adapter/out"
	"stringlog/internal/modules/practice/domain"
	practicedto "stringlog/internal/modules/practice/dto"
	practicein "stringlog/internal/modules/practice/port/in"
	practiceout "stringlog/internal/modules/practice/port/out"
	"stringlog/internal/modules/practice/service"
	"stringlog/internal/modules/practice/usecase"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/tx"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

type seqID struct {
	n int
}

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("sess-%d", s.n)
}

type fakeLedger struct {
	added   map[string]int
	titles  map[string]string
	artists map[string]string
	missing bool
}

func (f *fakeLedger) AddPracticeTime(_ context.Context, songID string, seconds int) error {
	if f.missing {
		return fmt.Errorf("%w: song %s", apperrors.ErrNotFound, songID)
	}
	if f.added == nil {
		f.added = map[string]int{}
	}
	f.added[songID] += seconds
	return nil
}

func (f *fakeLedger) SongTitle(_ context.Context, songID string) (string, error) {
	title, ok := f.titles[songID]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return title, nil
}

func (f *fakeLedger) MatchingSongs(_ context.Context, query string) ([]string, error) {
	query = strings.ToLower(query)
	var ids []string
	for id, title := range f.titles {
		if strings.Contains(strings.ToLower(title), query) || strings.Contains(strings.ToLower(f.artists[id]), query) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type countingRefresher struct {
	calls    int
	failures int
}

func (c *countingRefresher) Refresh(context.Context) error {
	c.calls++
	if c.failures > 0 {
		c.failures--
		return errors.New("goal store unavailable")
	}
	return nil
}

type countingRepository struct {
	*practiceadapter.MemorySessionRepository
	appends int
}

func (r *countingRepository) Append(ctx context.Context, s domain.Session) error {
	r.appends++
	return r.MemorySessionRepository.Append(ctx, s)
}

type failingRepository struct {
	*practiceadapter.MemorySessionRepository
}

func (failingRepository) Append(context.Context, domain.Session) error {
	return errors.New("disk full")
}

type harness struct {
	clock   *fakeClock
	ledger  *fakeLedger
	goals   *countingRefresher
	journal string
	uc      practicein.Usecase
}

func newHarness(t *testing.T, repo practiceout.SessionRepository) harness {
	t.Helper()
	ledger := &fakeLedger{
		titles:  map[string]string{"song-1": "Blackbird", "song-2": "Libertango"},
		artists: map[string]string{"song-1": "The Beatles", "song-2": "Astor Piazzolla"},
	}
	h := harness{
		clock:   &fakeClock{now: time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)},
		ledger:  ledger,
		goals:   &countingRefresher{},
		journal: t.TempDir(),
	}
	sessions := service.NewSessionService(h.clock, &seqID{}, repo, practiceadapter.NewMarkdownJournal(h.journal))
	timer := service.NewTimerService(h.clock, practiceadapter.NewMemoryTimerStore())
	h.uc = usecase.NewInteractor(sessions, timer, h.ledger, h.goals, tx.NewSerialManager(), nil)
	return h
}

func TestStopTimerStoresSessionCreditsSongAndRefreshesGoals(t *testing.T) {
	t.Parallel()
	h := newHarness(t, practiceadapter.NewMemorySessionRepository())
	ctx := context.Background()

	if _, err := h.uc.StartTimer(ctx); err != nil {
		t.Fatalf("start timer: %v", err)
	}
	h.clock.advance(45 * time.Minute)
	status, err := h.uc.TimerStatus(ctx)
	if err != nil {
		t.Fatalf("timer status: %v", err)
	}
	if !status.Running || status.ElapsedSec != 2700 {
		t.Fatalf("expected running timer at 2700s, got %+v", status)
	}

	out, err := h.uc.StopTimer(ctx, practicedto.StopInput{Notes: "slow arpeggios", SongID: "song-1", Instrument: "guitar"})
	if err != nil {
		t.Fatalf("stop timer: %v", err)
	}
	if out.Session.DurationSec != 2700 || out.Session.ID != "sess-1" {
		t.Fatalf("unexpected session: %+v", out.Session)
	}
	if !out.Session.EndedAt.Equal(h.clock.now) {
		t.Fatalf("expected end time %s, got %s", h.clock.now, out.Session.EndedAt)
	}
	if h.ledger.added["song-1"] != 2700 {
		t.Fatalf("expected song credited 2700s, got %d", h.ledger.added["song-1"])
	}
	if h.goals.calls != 1 {
		t.Fatalf("expected one goal refresh, got %d", h.goals.calls)
	}
	note, err := os.ReadFile(out.JournalPath)
	if err != nil {
		t.Fatalf("read journal note: %v", err)
	}
	if !strings.Contains(string(note), "duration_seconds: 2700") || !strings.Contains(string(note), "song: Blackbird") {
		t.Fatalf("journal note missing fields: %s", note)
	}
	if !strings.HasSuffix(out.JournalPath, "100000-blackbird-sess-1.md") {
		t.Fatalf("unexpected journal path %s", out.JournalPath)
	}
	read, err := h.uc.JournalNote(ctx, out.Session.ID)
	if err != nil {
		t.Fatalf("read back journal note: %v", err)
	}
	if read.Path != out.JournalPath || read.Song != "Blackbird" || !strings.Contains(read.Body, "slow arpeggios") {
		t.Fatalf("unexpected journal note %+v", read)
	}

	after, err := h.uc.TimerStatus(ctx)
	if err != nil {
		t.Fatalf("timer status after stop: %v", err)
	}
	if after.State != "idle" || after.ElapsedSec != 0 || after.Running {
		t.Fatalf("expected reset idle timer, got %+v", after)
	}
}

func TestPausedIntervalIsExcluded(t *testing.T) {
	t.Parallel()
	h := newHarness(t, practiceadapter.NewMemorySessionRepository())
	ctx := context.Background()

	if _, err := h.uc.StartTimer(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.advance(10 * time.Second)
	if _, err := h.uc.PauseTimer(ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}
	h.clock.advance(time.Minute)
	paused, err := h.uc.TimerStatus(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if paused.ElapsedSec != 10 || paused.Running {
		t.Fatalf("paused timer must hold 10s, got %+v", paused)
	}
	if _, err := h.uc.ResumeTimer(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	h.clock.advance(5*time.Second + 900*time.Millisecond)
	out, err := h.uc.StopTimer(ctx, practicedto.StopInput{})
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if out.Session.DurationSec != 15 {
		t.Fatalf("expected 15s, got %d", out.Session.DurationSec)
	}
	if len(h.ledger.added) != 0 {
		t.Fatalf("session without song must not credit songs")
	}
}

func TestStopTimerErrors(t *testing.T) {
	t.Parallel()
	h := newHarness(t, practiceadapter.NewMemorySessionRepository())
	ctx := context.Background()

	if _, err := h.uc.StopTimer(ctx, practicedto.StopInput{}); !errors.Is(err, apperrors.ErrTimerNotRunning) {
		t.Fatalf("expected ErrTimerNotRunning, got %v", err)
	}
	if _, err := h.uc.StartTimer(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := h.uc.StartTimer(ctx); !errors.Is(err, apperrors.ErrTimerRunning) {
		t.Fatalf("expected ErrTimerRunning, got %v", err)
	}
	if _, err := h.uc.ResumeTimer(ctx); !errors.Is(err, apperrors.ErrTimerNotPaused) {
		t.Fatalf("expected ErrTimerNotPaused, got %v", err)
	}
	if _, err := h.uc.StopTimer(ctx, practicedto.StopInput{Instrument: "kazoo"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	status, err := h.uc.TimerStatus(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Running {
		t.Fatalf("rejected stop must leave the timer running")
	}
}

func TestFailedSaveKeepsTimerRunning(t *testing.T) {
	t.Parallel()
	h := newHarness(t, failingRepository{practiceadapter.NewMemorySessionRepository()})
	ctx := context.Background()

	if _, err := h.uc.StartTimer(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.advance(time.Minute)
	if _, err := h.uc.StopTimer(ctx, practicedto.StopInput{SongID: "song-1"}); err == nil {
		t.Fatalf("stop must fail when the session cannot be stored")
	}
	status, err := h.uc.TimerStatus(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Running || status.ElapsedSec != 60 {
		t.Fatalf("timer must survive a failed save, got %+v", status)
	}
	if len(h.ledger.added) != 0 || h.goals.calls != 0 {
		t.Fatalf("failed save must not have side effects")
	}
}

func TestGoalRefreshFailureDoesNotDuplicateSession(t *testing.T) {
	t.Parallel()
	repo := &countingRepository{MemorySessionRepository: practiceadapter.NewMemorySessionRepository()}
	h := newHarness(t, repo)
	h.goals.failures = 1
	ctx := context.Background()

	if _, err := h.uc.StartTimer(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.advance(10 * time.Minute)
	if _, err := h.uc.StopTimer(ctx, practicedto.StopInput{SongID: "song-1"}); err != nil {
		t.Fatalf("stop must succeed once the session is stored: %v", err)
	}
	status, err := h.uc.TimerStatus(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Running || status.State != string(domain.TimerIdle) {
		t.Fatalf("timer must be reset after a stored session, got %+v", status)
	}
	if _, err := h.uc.StopTimer(ctx, practicedto.StopInput{SongID: "song-1"}); !errors.Is(err, apperrors.ErrTimerNotRunning) {
		t.Fatalf("expected ErrTimerNotRunning on retry, got %v", err)
	}
	sessions, err := h.uc.ListSessions(ctx, practicedto.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 1 || repo.appends != 1 {
		t.Fatalf("expected one stored session, got %d (appends %d)", len(sessions), repo.appends)
	}
	if h.ledger.added["song-1"] != 600 {
		t.Fatalf("song credited %ds, want 600", h.ledger.added["song-1"])
	}
}

func TestStopTimerToleratesDeletedSong(t *testing.T) {
	t.Parallel()
	h := newHarness(t, practiceadapter.NewMemorySessionRepository())
	h.ledger.missing = true
	ctx := context.Background()

	if _, err := h.uc.StartTimer(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.advance(30 * time.Second)
	out, err := h.uc.StopTimer(ctx, practicedto.StopInput{SongID: "gone"})
	if err != nil {
		t.Fatalf("stop with deleted song: %v", err)
	}
	if out.Session.SongID != "gone" || out.Session.DurationSec != 30 {
		t.Fatalf("unexpected session %+v", out.Session)
	}
}

func TestLogListUpdateDelete(t *testing.T) {
	t.Parallel()
	h := newHarness(t, practiceadapter.NewMemorySessionRepository())
	ctx := context.Background()
	base := time.Date(2026, 2, 20, 18, 0, 0, 0, time.UTC)

	older, err := h.uc.LogSession(ctx, practicedto.LogInput{StartedAt: base, DurationSec: 600, SongID: "song-1"})
	if err != nil {
		t.Fatalf("log older: %v", err)
	}
	newer, err := h.uc.LogSession(ctx, practicedto.LogInput{StartedAt: base.Add(24 * time.Hour), EndedAt: base.Add(24*time.Hour + 20*time.Minute)})
	if err != nil {
		t.Fatalf("log newer: %v", err)
	}
	if newer.DurationSec != 1200 {
		t.Fatalf("duration must be derived from end time, got %d", newer.DurationSec)
	}
	if !older.EndedAt.Equal(base.Add(10 * time.Minute)) {
		t.Fatalf("end time must be derived from duration, got %s", older.EndedAt)
	}
	if _, err := h.uc.LogSession(ctx, practicedto.LogInput{StartedAt: base, DurationSec: -1}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("negative duration must be rejected, got %v", err)
	}

	list, err := h.uc.ListSessions(ctx, practicedto.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}
	bySong, err := h.uc.ListSessions(ctx, practicedto.ListFilter{SongID: "song-1"})
	if err != nil {
		t.Fatalf("list by song: %v", err)
	}
	if len(bySong) != 1 || bySong[0].ID != older.ID {
		t.Fatalf("expected only the song session, got %+v", bySong)
	}

	notes := "metronome at 80"
	updated, err := h.uc.UpdateSession(ctx, practicedto.UpdateInput{ID: older.ID, Notes: &notes})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Notes != notes || updated.DurationSec != 600 {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if err := h.uc.DeleteSession(ctx, newer.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := h.uc.DeleteSession(ctx, newer.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("second delete must report not found, got %v", err)
	}
	// two logs, one update and one delete
	if h.goals.calls != 4 {
		t.Fatalf("expected 4 goal refreshes, got %d", h.goals.calls)
	}
}

func TestReaderListsWithoutSideEffects(t *testing.T) {
	t.Parallel()
	repo := practiceadapter.NewMemorySessionRepository()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc := service.NewSessionService(clk, &seqID{}, repo, nil)
	if _, err := svc.Append(context.Background(), domain.Session{StartedAt: clk.now, DurationSec: 60}); err != nil {
		t.Fatalf("append: %v", err)
	}
	reader := usecase.NewReader(svc)
	list, err := reader.ListSessions(context.Background(), practicedto.ListFilter{Limit: 5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].DurationSec != 60 {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestListSessionsFiltersByInstrumentAndSongText(t *testing.T) {
	t.Parallel()
	h := newHarness(t, practiceadapter.NewMemorySessionRepository())
	ctx := context.Background()
	base := time.Date(2026, 2, 20, 18, 0, 0, 0, time.UTC)

	logs := []practicedto.LogInput{
		{StartedAt: base, DurationSec: 600, SongID: "song-1", Instrument: "guitar"},
		{StartedAt: base.Add(time.Hour), DurationSec: 600, SongID: "song-2", Instrument: "cello"},
		{StartedAt: base.Add(2 * time.Hour), DurationSec: 600, Instrument: "cello"},
	}
	ids := make([]string, 0, len(logs))
	for _, in := range logs {
		s, err := h.uc.LogSession(ctx, in)
		if err != nil {
			t.Fatalf("log: %v", err)
		}
		ids = append(ids, s.ID)
	}

	cases := []struct {
		name   string
		filter practicedto.ListFilter
		want   []string
	}{
		{"instrument", practicedto.ListFilter{Instrument: "Cello"}, []string{ids[2], ids[1]}},
		{"artist text", practicedto.ListFilter{Query: "beatles"}, []string{ids[0]}},
		{"title text", practicedto.ListFilter{Query: "TANGO"}, []string{ids[1]}},
		{"text and instrument", practicedto.ListFilter{Query: "tango", Instrument: "guitar"}, nil},
		{"no match", practicedto.ListFilter{Query: "zz"}, nil},
	}
	for _, tc := range cases {
		got, err := h.uc.ListSessions(ctx, tc.filter)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("%s: got %d sessions, want %d", tc.name, len(got), len(tc.want))
		}
		for i := range got {
			if got[i].ID != tc.want[i] {
				t.Fatalf("%s: session %d = %s, want %s", tc.name, i, got[i].ID, tc.want[i])
			}
		}
	}

	if _, err := h.uc.ListSessions(ctx, practicedto.ListFilter{Instrument: "kazoo"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown instrument, got %v", err)
	}
}
