package practice_test

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	metronomedto "stringlog/internal/modules/metronome/dto"
	practicedto "stringlog/internal/modules/practice/dto"
	practiceview "stringlog/internal/ui/views/practice"
)

type fakeTimer struct {
	calls []string
	notes string
}

func (f *fakeTimer) op(name string, out practicedto.TimerOutput) (practicedto.TimerOutput, error) {
	f.calls = append(f.calls, name)
	return out, nil
}

func (f *fakeTimer) Start(context.Context) (practicedto.TimerOutput, error) {
	return f.op("start", practicedto.TimerOutput{State: "running", Running: true})
}
func (f *fakeTimer) Pause(context.Context) (practicedto.TimerOutput, error) {
	return f.op("pause", practicedto.TimerOutput{State: "paused"})
}
func (f *fakeTimer) Resume(context.Context) (practicedto.TimerOutput, error) {
	return f.op("resume", practicedto.TimerOutput{State: "running", Running: true})
}
func (f *fakeTimer) Reset(context.Context) (practicedto.TimerOutput, error) {
	return f.op("reset", practicedto.TimerOutput{State: "idle"})
}
func (f *fakeTimer) Status(context.Context) (practicedto.TimerOutput, error) {
	return f.op("status", practicedto.TimerOutput{State: "idle"})
}
func (f *fakeTimer) Stop(_ context.Context, notes, _, _ string) (practicedto.StopOutput, error) {
	f.calls = append(f.calls, "stop")
	f.notes = notes
	return practicedto.StopOutput{}, nil
}

type fakeMetronome struct {
	state metronomedto.State
}

func (f *fakeMetronome) Toggle(context.Context) (metronomedto.State, error) {
	f.state.Running = !f.state.Running
	return f.state, nil
}
func (f *fakeMetronome) Nudge(_ context.Context, delta int) metronomedto.State {
	f.state.BPM += delta
	return f.state
}
func (f *fakeMetronome) SetBPM(_ context.Context, bpm int) metronomedto.State {
	f.state.BPM = bpm
	return f.state
}
func (f *fakeMetronome) ToggleMute(context.Context) metronomedto.State {
	f.state.Muted = !f.state.Muted
	return f.state
}
func (f *fakeMetronome) State(context.Context) metronomedto.State { return f.state }

func key(k string) tea.KeyMsg {
	if k == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// drive runs the command and feeds its message back, like the runtime would.
func drive(t *testing.T, m practiceview.Model, cmd tea.Cmd) practiceview.Model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	m, _ = m.Update(cmd())
	return m
}

func TestElapsedExtrapolatesBetweenTicks(t *testing.T) {
	t.Parallel()
	m := practiceview.New(&fakeTimer{}, nil, "guitar")
	at := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
	m, _ = m.Update(practiceview.TimerMsg{Timer: practicedto.TimerOutput{State: "running", Running: true, ElapsedSec: 61}, At: at})
	if got := m.Elapsed(); got != 61 {
		t.Fatalf("expected 61 right after sync, got %d", got)
	}
	for i := 1; i <= 3; i++ {
		m, _ = m.Update(practiceview.TickMsg(at.Add(time.Duration(i)*time.Second + 300*time.Millisecond)))
	}
	if got := m.Elapsed(); got != 64 {
		t.Fatalf("expected 64 after three ticks, got %d", got)
	}
	if !strings.Contains(m.View(), "00:01:04") {
		t.Fatalf("clock not rendered:\n%s", m.View())
	}
}

func TestPausedTimerDoesNotAdvance(t *testing.T) {
	t.Parallel()
	m := practiceview.New(&fakeTimer{}, nil, "")
	at := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
	m, _ = m.Update(practiceview.TimerMsg{Timer: practicedto.TimerOutput{State: "paused", ElapsedSec: 42}, At: at})
	m, _ = m.Update(practiceview.TickMsg(at.Add(time.Minute)))
	if got := m.Elapsed(); got != 42 {
		t.Fatalf("paused timer moved to %d", got)
	}
}

func TestSpaceCyclesStartPauseResume(t *testing.T) {
	t.Parallel()
	timer := &fakeTimer{}
	m := practiceview.New(timer, nil, "")
	for range 3 {
		var cmd tea.Cmd
		m, cmd = m.Update(key(" "))
		m = drive(t, m, cmd)
	}
	want := []string{"start", "pause", "resume"}
	if strings.Join(timer.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, timer.calls)
	}
	if !m.Running() {
		t.Fatalf("timer should be running after resume")
	}
}

func TestEnterSavesTypedNotes(t *testing.T) {
	t.Parallel()
	timer := &fakeTimer{}
	m := practiceview.New(timer, nil, "")
	m, _ = m.Update(key("n"))
	if !m.Editing() {
		t.Fatalf("n should focus notes")
	}
	m, _ = m.Update(key("scales"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Editing() {
		t.Fatalf("enter should leave the notes field")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd()
	if _, ok := msg.(practiceview.StoppedMsg); !ok {
		t.Fatalf("expected StoppedMsg, got %T", msg)
	}
	if timer.notes != "scales" {
		t.Fatalf("expected notes to be saved, got %q", timer.notes)
	}
}

func TestMetronomeKeys(t *testing.T) {
	t.Parallel()
	metro := &fakeMetronome{state: metronomedto.State{BPM: 120, BeatsPerMeasure: 4, Volume: 75}}
	m := practiceview.New(&fakeTimer{}, metro, "")
	for _, k := range []string{"+", "+", "]", "-", "[", "["} {
		m, _ = m.Update(key(k))
	}
	if metro.state.BPM != 111 {
		t.Fatalf("expected bpm 111, got %d", metro.state.BPM)
	}
	m, _ = m.Update(key("v"))
	if !metro.state.Muted || !strings.Contains(m.View(), "muted") {
		t.Fatalf("v should mute")
	}
	_, cmd := m.Update(key("m"))
	msg := cmd()
	toggled, ok := msg.(practiceview.MetronomeToggledMsg)
	if !ok || !toggled.State.Running {
		t.Fatalf("expected running toggle result, got %#v", msg)
	}
}

func TestBeatIndicatorLightsCurrentBeat(t *testing.T) {
	t.Parallel()
	got := practiceview.BeatIndicator(metronomedto.State{Running: true, CurrentBeat: 2, BeatsPerMeasure: 4})
	if strings.Count(got, "●") != 1 || strings.Count(got, "○") != 3 {
		t.Fatalf("unexpected indicator %q", got)
	}
	idle := practiceview.BeatIndicator(metronomedto.State{CurrentBeat: -1, BeatsPerMeasure: 4})
	if strings.Count(idle, "○") != 4 {
		t.Fatalf("stopped metronome should show no lit beat: %q", idle)
	}
}

func TestFormatElapsed(t *testing.T) {
	t.Parallel()
	cases := map[int]string{0: "00:00:00", 59: "00:00:59", 3661: "01:01:01", -5: "00:00:00"}
	for in, want := range cases {
		if got := practiceview.FormatElapsed(in); got != want {
			t.Fatalf("FormatElapsed(%d) = %q, want %q", in, got, want)
		}
	}
}
