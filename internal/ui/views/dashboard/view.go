package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	practicedto "stringlog/internal/modules/practice/dto"
	statsdto "stringlog/internal/modules/stats/dto"
	"stringlog/internal/ui/components"
	"stringlog/internal/ui/theme"
)

const recentLimit = 5

type Port interface {
	Summary(ctx context.Context, weeks int) (statsdto.Summary, error)
	Recent(ctx context.Context, limit int) ([]practicedto.Session, error)
}

type LoadedMsg struct {
	Summary statsdto.Summary
	Recent  []practicedto.Session
	Err     error
}

type Model struct {
	port    Port
	weeks   int
	summary statsdto.Summary
	recent  []practicedto.Session
	err     error
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port Port, weeks int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	return Model{port: port, weeks: weeks, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the summary and recent sessions again.
func (m Model) Reload() tea.Cmd {
	port, weeks := m.port, m.weeks
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{}
		}
		ctx := context.Background()
		summary, err := port.Summary(ctx, weeks)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		recent, err := port.Recent(ctx, recentLimit)
		return LoadedMsg{Summary: summary, Recent: recent, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.summary = msg.Summary
			m.recent = msg.Recent
		}
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return m.spinner.View() + " loading statistics…"
	}
	if m.err != nil {
		return theme.Warn.Render("statistics unavailable: " + m.err.Error())
	}
	s := m.summary

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total hours", fmt.Sprintf("%.2f", s.TotalHours)),
		card("This week", fmt.Sprintf("%.2f h", s.CurrentWeekHours)),
		card("Last week", fmt.Sprintf("%.2f h", s.LastWeekHours)),
		card("Streak", fmt.Sprintf("%d days", s.StreakDays)),
		card("Sessions", fmt.Sprintf("%d", s.TotalSessions)),
	)

	bars := make([]components.Bar, 0, len(s.Weekly))
	for _, w := range s.Weekly {
		bars = append(bars, components.Bar{Label: w.WeekStart.Format("01/02"), Value: w.TotalHours})
	}
	chart := theme.Title.Render("Weekly hours") + "\n" + components.BarChart(bars, 8)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Recent sessions") + "\n")
	if len(m.recent) == 0 {
		sb.WriteString(theme.Muted.Render("no sessions yet: start the timer on the Practice tab"))
	}
	for _, r := range m.recent {
		line := fmt.Sprintf("%s  %3d min", r.StartedAt.Local().Format("Mon Jan 2 15:04"), r.DurationSec/60)
		if r.Instrument != "" {
			line += "  " + r.Instrument
		}
		if r.Notes != "" {
			line += theme.Muted.Render("  " + firstLine(r.Notes))
		}
		sb.WriteString(line + "\n")
	}
	if s.LastPracticeAt != nil {
		sb.WriteString(theme.Muted.Render("last practice " + s.LastPracticeAt.Local().Format("Mon Jan 2 15:04")))
	}

	var instruments strings.Builder
	instruments.WriteString(theme.Title.Render("By instrument") + "\n")
	for _, ih := range s.ByInstrument {
		instruments.WriteString(fmt.Sprintf("%-12s %6.2f h\n", ih.Instrument, ih.Hours))
	}

	lower := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Render(sb.String()),
		theme.Pane.Render(instruments.String()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, cards, theme.Pane.Render(chart), lower)
}

func card(label, value string) string {
	return theme.Pane.Width(18).Render(theme.Muted.Render(label) + "\n" + theme.Hot.Render(value))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 40 {
		s = s[:40] + "…"
	}
	return s
}
