package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goalsdto "stringlog/internal/modules/goals/dto"
	metronomedto "stringlog/internal/modules/metronome/dto"
	practicedto "stringlog/internal/modules/practice/dto"
	repertoiredto "stringlog/internal/modules/repertoire/dto"
	statsdto "stringlog/internal/modules/stats/dto"
	"stringlog/internal/platform/config"
	"stringlog/internal/ui/components"
	"stringlog/internal/ui/theme"
	dashboardview "stringlog/internal/ui/views/dashboard"
	goalsview "stringlog/internal/ui/views/goals"
	practiceview "stringlog/internal/ui/views/practice"
	repertoireview "stringlog/internal/ui/views/repertoire"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type PracticePort interface {
	practiceview.TimerPort
	List(ctx context.Context, songID string, limit int) ([]practicedto.Session, error)
}

type StatsPort interface {
	Summary(ctx context.Context, weeks int) (statsdto.Summary, error)
}

type GoalsPort interface {
	goalsview.Port
	Add(ctx context.Context, title string, targetHours float64, period string) (goalsdto.Goal, error)
}

type SongsPort interface {
	repertoireview.SongPort
	Add(ctx context.Context, input repertoiredto.AddSongInput) (repertoiredto.Song, error)
}

// Deps carries everything the root model needs from bootstrap.
type Deps struct {
	Practice    PracticePort
	Stats       StatsPort
	Goals       GoalsPort
	Songs       SongsPort
	Metronome   practiceview.MetronomePort
	Search      repertoireview.SearchPort
	Preferences config.Preferences
}

// SearchResultMsg is sent by the search coordinator from its own goroutine.
type SearchResultMsg = repertoireview.SearchResultMsg

// MetronomeMsg is sent on every metronome state change, including beats.
type MetronomeMsg metronomedto.State

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabPractice
	tabGoals
	tabRepertoire
	tabCount
)

var tabLabels = [tabCount]string{
	"Dashboard", "Practice", "Goals", "Repertoire",
}

const quitWarning = "timer running: enter saves it, press q again to quit (it keeps running in the background)"

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Timer    key.Binding
	Save     key.Binding
	Reset    key.Binding
	Notes    key.Binding
	Click    key.Binding
	Tempo    key.Binding
	TempoBig key.Binding
	Mute     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Timer:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause timer")),
		Save:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save session")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset timer")),
		Notes:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "edit notes")),
		Click:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "metronome")),
		Tempo:    key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "tempo ±1")),
		TempoBig: key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "tempo ±10")),
		Mute:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "mute")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Timer, k.Save, k.Reset, k.Notes},
		{k.Click, k.Tempo, k.TempoBig, k.Mute},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the quit guard,
// the help overlay and the command palette. Rendering is delegated to the
// sub-views.
type Model struct {
	deps Deps

	dashView     dashboardview.Model
	practiceView practiceview.Model
	goalsView    goalsview.Model
	repView      repertoireview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	quitArmed bool
	status    string
	width     int
	height    int
}

func NewModel(deps Deps) Model {
	prefs := deps.Preferences.Normalize()
	theme.SetAccent(prefs.Accent)

	return Model{
		deps:         deps,
		dashView:     dashboardview.New(dashboardPortBridge{stats: deps.Stats, practice: deps.Practice}, prefs.DashboardWeeks),
		practiceView: practiceview.New(deps.Practice, deps.Metronome, prefs.DefaultInstrument),
		goalsView:    goalsview.New(deps.Goals),
		repView:      repertoireview.New(deps.Songs, deps.Search),
		activeTab:    tabDashboard,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashView.Init(),
		m.practiceView.Init(),
		m.goalsView.Init(),
		m.repView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts keys while open; async results still flow.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case MetronomeMsg:
		return m.broadcast(metronomedto.State(msg))

	case practiceview.MetronomeToggledMsg:
		if msg.Err != nil {
			m.status = "metronome: " + msg.Err.Error()
		}

	case practiceview.StoppedMsg:
		if msg.Err != nil {
			m.status = "save failed: " + msg.Err.Error()
		} else {
			m.quitArmed = false
			m.status = fmt.Sprintf("saved %d min session", msg.Output.Session.DurationSec/60)
			next, cmd := m.broadcast(msg)
			return next, tea.Batch(cmd, m.dashView.Reload(), m.goalsView.Reload(), m.repView.Reload())
		}

	case practiceview.TimerMsg:
		if msg.Err != nil {
			m.status = "timer: " + msg.Err.Error()
		} else if !msg.Timer.Running {
			m.quitArmed = false
		}

	case repertoireview.UseSongMsg:
		m.practiceView.SetSong(msg.Song.ID)
		m.activeTab = tabPractice
		m.status = "practicing " + msg.Song.Title
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.broadcast(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k := msg.String(); m.quitArmed && k != "q" && k != "ctrl+c" {
		m.quitArmed = false
		m.status = "ready"
	}
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	if !m.subViewCapturing() {
		switch msg.String() {
		case "ctrl+c", "q":
			if m.practiceView.Running() && !m.quitArmed {
				m.quitArmed = true
				m.status = quitWarning
				return m, nil
			}
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	case tabPractice:
		m.practiceView, cmd = m.practiceView.Update(msg)
	case tabGoals:
		m.goalsView, cmd = m.goalsView.Update(msg)
	case tabRepertoire:
		m.repView, cmd = m.repView.Update(msg)
	}
	return m, cmd
}

// broadcast hands a non-key message to every sub-view; each ignores what it
// does not own.
func (m Model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 4)
	m.dashView, cmds[0] = m.dashView.Update(msg)
	m.practiceView, cmds[1] = m.practiceView.Update(msg)
	m.goalsView, cmds[2] = m.goalsView.Update(msg)
	m.repView, cmds[3] = m.repView.Update(msg)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabPractice:
		return m.practiceView.View()
	case tabGoals:
		return m.goalsView.View()
	case tabRepertoire:
		return m.repView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "stringlog  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.quitArmed {
		left = theme.Warn.Render(m.status)
	}
	if m.practiceView.Running() {
		left = theme.Hot.Render("● "+practiceview.FormatElapsed(m.practiceView.Elapsed())) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := func(n int) string {
		return strings.TrimSpace(strings.Join(parts[n:], " "))
	}

	switch parts[0] {
	case "timer:start":
		m.activeTab = tabPractice
		return m, m.practiceView.Run(m.deps.Practice.Start)
	case "timer:pause":
		return m, m.practiceView.Run(m.deps.Practice.Pause)
	case "timer:resume":
		return m, m.practiceView.Run(m.deps.Practice.Resume)
	case "timer:reset":
		return m, m.practiceView.Run(m.deps.Practice.Reset)
	case "timer:stop":
		return m, m.practiceView.StopCmd(rest(1))

	case "song:use":
		if len(parts) < 2 {
			m.status = "usage: song:use <id>"
			return m, nil
		}
		m.practiceView.SetSong(parts[1])
		m.status = "timer song set"
		return m, nil

	case "instrument":
		m.practiceView.SetInstrument(rest(1))
		m.status = "instrument set"
		return m, nil

	case "bpm":
		if len(parts) < 2 {
			m.status = "usage: bpm <40-240>"
			return m, nil
		}
		bpm, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid bpm"
			return m, nil
		}
		m.practiceView.SetBPM(bpm)
		return m, nil

	case "goal:add":
		if len(parts) < 4 {
			m.status = "usage: goal:add <hours> <daily|weekly|monthly> <title>"
			return m, nil
		}
		hours, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			m.status = "invalid hours"
			return m, nil
		}
		period, title, goals := parts[2], rest(3), m.deps.Goals
		m.activeTab = tabGoals
		return m, func() tea.Msg {
			_, err := goals.Add(context.Background(), title, hours, period)
			return goalsview.ChangedMsg{Status: "added goal " + title, Err: err}
		}

	case "goal:recompute":
		m.activeTab = tabGoals
		return m, m.goalsView.RecomputeCmd()

	case "song:add":
		if len(parts) < 3 {
			m.status = "usage: song:add <learning|wishlist|mastered> <title>"
			return m, nil
		}
		input := repertoiredto.AddSongInput{Title: rest(2), Status: parts[1]}
		songs := m.deps.Songs
		m.activeTab = tabRepertoire
		return m, func() tea.Msg {
			song, err := songs.Add(context.Background(), input)
			return repertoireview.SongChangedMsg{Status: "added " + song.Title, Err: err}
		}

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewCapturing reports whether the active tab is taking free text, in
// which case global key bindings must yield.
func (m Model) subViewCapturing() bool {
	switch m.activeTab {
	case tabPractice:
		return m.practiceView.Editing()
	case tabGoals:
		return m.goalsView.Filtering()
	case tabRepertoire:
		return m.repView.Searching()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.dashView, _ = m.dashView.Update(sz)
	m.practiceView, _ = m.practiceView.Update(sz)
	m.goalsView, _ = m.goalsView.Update(sz)
	m.repView, _ = m.repView.Update(sz)
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type dashboardPortBridge struct {
	stats    StatsPort
	practice PracticePort
}

func (b dashboardPortBridge) Summary(ctx context.Context, weeks int) (statsdto.Summary, error) {
	return b.stats.Summary(ctx, weeks)
}
func (b dashboardPortBridge) Recent(ctx context.Context, limit int) ([]practicedto.Session, error) {
	return b.practice.List(ctx, "", limit)
}
