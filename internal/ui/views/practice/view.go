package practice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	metronomedto "stringlog/internal/modules/metronome/dto"
	practicedto "stringlog/internal/modules/practice/dto"
	"stringlog/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type TimerPort interface {
	Start(ctx context.Context) (practicedto.TimerOutput, error)
	Pause(ctx context.Context) (practicedto.TimerOutput, error)
	Resume(ctx context.Context) (practicedto.TimerOutput, error)
	Reset(ctx context.Context) (practicedto.TimerOutput, error)
	Status(ctx context.Context) (practicedto.TimerOutput, error)
	Stop(ctx context.Context, notes, songID, instrument string) (practicedto.StopOutput, error)
}

type MetronomePort interface {
	Toggle(ctx context.Context) (metronomedto.State, error)
	Nudge(ctx context.Context, delta int) metronomedto.State
	SetBPM(ctx context.Context, bpm int) metronomedto.State
	ToggleMute(ctx context.Context) metronomedto.State
	State(ctx context.Context) metronomedto.State
}

// ─── messages ────────────────────────────────────────────────────────────────

// TimerMsg carries the timer state after any timer operation.
type TimerMsg struct {
	Timer practicedto.TimerOutput
	At    time.Time
	Err   error
}

// StoppedMsg is emitted once a session has been saved from the timer.
type StoppedMsg struct {
	Output practicedto.StopOutput
	Err    error
}

// MetronomeToggledMsg reports a start or stop of the click track.
type MetronomeToggledMsg struct {
	State metronomedto.State
	Err   error
}

// TickMsg drives the once-per-second clock refresh.
type TickMsg time.Time

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	timer     TimerPort
	metronome MetronomePort

	state    practicedto.TimerOutput
	syncedAt time.Time
	now      time.Time
	beat     metronomedto.State

	notes      textinput.Model
	editing    bool
	songID     string
	instrument string
	err        error
	width      int
	height     int
}

func New(timer TimerPort, metronome MetronomePort, instrument string) Model {
	ti := textinput.New()
	ti.Placeholder = "session notes"
	ti.CharLimit = 500
	m := Model{timer: timer, metronome: metronome, notes: ti, instrument: instrument}
	if metronome != nil {
		m.beat = metronome.State(context.Background())
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.run(m.timer.Status), tick())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.notes.Width = max(msg.Width-20, 20)

	case TickMsg:
		m.now = time.Time(msg)
		return m, tick()

	case TimerMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.state = msg.Timer
			m.syncedAt = msg.At
			m.now = msg.At
		}

	case StoppedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.state = practicedto.TimerOutput{State: "idle"}
			m.notes.SetValue("")
		}

	case metronomedto.State:
		m.beat = msg

	case MetronomeToggledMsg:
		m.err = msg.Err
		m.beat = msg.State

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "enter", "esc":
				m.editing = false
				m.notes.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.notes, cmd = m.notes.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m Model) handleKey(k string) (Model, tea.Cmd) {
	switch k {
	case " ":
		return m, m.Toggle()
	case "enter":
		return m, m.StopCmd(m.notes.Value())
	case "r":
		return m, m.run(m.timer.Reset)
	case "n":
		m.editing = true
		cmd := m.notes.Focus()
		return m, cmd
	}
	if m.metronome == nil {
		return m, nil
	}
	ctx := context.Background()
	switch k {
	case "m":
		metronome := m.metronome
		return m, func() tea.Msg {
			state, err := metronome.Toggle(ctx)
			return MetronomeToggledMsg{State: state, Err: err}
		}
	case "+", "=":
		m.beat = m.metronome.Nudge(ctx, 1)
	case "-":
		m.beat = m.metronome.Nudge(ctx, -1)
	case "]":
		m.beat = m.metronome.Nudge(ctx, 10)
	case "[":
		m.beat = m.metronome.Nudge(ctx, -10)
	case "v":
		m.beat = m.metronome.ToggleMute(ctx)
	}
	return m, nil
}

// Toggle starts, pauses or resumes the timer depending on its state.
func (m Model) Toggle() tea.Cmd {
	switch m.state.State {
	case "running":
		return m.run(m.timer.Pause)
	case "paused":
		return m.run(m.timer.Resume)
	default:
		return m.run(m.timer.Start)
	}
}

// Run wraps one timer operation as a command.
func (m Model) Run(op func(context.Context) (practicedto.TimerOutput, error)) tea.Cmd {
	return m.run(op)
}

// StopCmd saves the running or paused session with the given notes.
func (m Model) StopCmd(notes string) tea.Cmd {
	timer, songID, instrument := m.timer, m.songID, m.instrument
	return func() tea.Msg {
		out, err := timer.Stop(context.Background(), strings.TrimSpace(notes), songID, instrument)
		return StoppedMsg{Output: out, Err: err}
	}
}

// SetBPM applies a tempo typed into the palette.
func (m *Model) SetBPM(bpm int) {
	if m.metronome != nil {
		m.beat = m.metronome.SetBPM(context.Background(), bpm)
	}
}

func (m *Model) SetSong(id string)         { m.songID = id }
func (m *Model) SetInstrument(name string) { m.instrument = name }

// Running reports whether unsaved practice time is accumulating.
func (m Model) Running() bool { return m.state.Running }

// Editing reports whether the notes field holds the keyboard.
func (m Model) Editing() bool { return m.editing }

// Elapsed is the timer value extrapolated from the last sync.
func (m Model) Elapsed() int {
	if !m.state.Running || m.now.Before(m.syncedAt) {
		return m.state.ElapsedSec
	}
	return m.state.ElapsedSec + int(m.now.Sub(m.syncedAt)/time.Second)
}

func (m Model) View() string {
	clock := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render(FormatElapsed(m.Elapsed()))
	state := m.state.State
	if state == "" {
		state = "idle"
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Practice timer") + "\n\n")
	sb.WriteString(clock + "  " + theme.Muted.Render(state) + "\n\n")
	instrument := m.instrument
	if instrument == "" {
		instrument = "unspecified"
	}
	sb.WriteString(theme.Muted.Render("instrument: ") + instrument + "\n")
	if m.songID != "" {
		sb.WriteString(theme.Muted.Render("song:       ") + m.songID + "\n")
	}
	sb.WriteString(theme.Muted.Render("notes:      ") + m.notes.View() + "\n")
	if m.err != nil {
		sb.WriteString("\n" + theme.Warn.Render(m.err.Error()) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("space: start/pause  enter: save  r: reset  n: notes"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		theme.PaneActive.Width(max(m.width/2-2, 40)).Render(sb.String()),
		theme.Pane.Render(m.metronomeView()),
	)
}

func (m Model) metronomeView() string {
	b := m.beat
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Metronome") + "\n\n")
	sb.WriteString(fmt.Sprintf("%s BPM\n\n", theme.Hot.Render(fmt.Sprintf("%d", b.BPM))))
	sb.WriteString(BeatIndicator(b) + "\n\n")
	volume := fmt.Sprintf("volume %d%%", b.Volume)
	if b.Muted {
		volume = "muted"
	}
	sb.WriteString(theme.Muted.Render(volume) + "\n\n")
	sb.WriteString(theme.Muted.Render("m: start/stop  +/-: 1 bpm  [/]: 10 bpm  v: mute"))
	return sb.String()
}

// BeatIndicator draws one dot per beat of the measure with the current beat lit.
func BeatIndicator(s metronomedto.State) string {
	n := s.BeatsPerMeasure
	if n <= 0 {
		n = 4
	}
	dots := make([]string, n)
	for i := range dots {
		switch {
		case s.Running && i == s.CurrentBeat && i == 0:
			dots[i] = theme.Warn.Render("●")
		case s.Running && i == s.CurrentBeat:
			dots[i] = theme.Hot.Render("●")
		default:
			dots[i] = theme.Muted.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

// FormatElapsed renders seconds as HH:MM:SS.
func FormatElapsed(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, sec%3600/60, sec%60)
}

func (m Model) run(op func(context.Context) (practicedto.TimerOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := op(context.Background())
		return TimerMsg{Timer: out, At: time.Now(), Err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}
