package goals

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	goalsdto "stringlog/internal/modules/goals/dto"
	"stringlog/internal/ui/theme"
)

type Port interface {
	List(ctx context.Context) ([]goalsdto.Goal, error)
	Complete(ctx context.Context, id string) (goalsdto.Goal, error)
	Delete(ctx context.Context, id string) error
	Recompute(ctx context.Context) (int, error)
}

type LoadedMsg struct {
	Goals []goalsdto.Goal
	Err   error
}

// ChangedMsg reports the outcome of a mutation; the view reloads afterwards.
type ChangedMsg struct {
	Status string
	Err    error
}

type goalItem struct {
	goal goalsdto.Goal
	bar  progress.Model
}

func (i goalItem) Title() string {
	if i.goal.Completed {
		return "✓ " + i.goal.Title
	}
	return i.goal.Title
}

func (i goalItem) Description() string {
	return fmt.Sprintf("%s %5.1f%%  %.1fh %s", i.bar.ViewAs(i.goal.Progress/100), i.goal.Progress, i.goal.TargetHours, i.goal.Period)
}

func (i goalItem) FilterValue() string { return i.goal.Title }

type Model struct {
	port   Port
	list   list.Model
	bar    progress.Model
	status string
	width  int
	height int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Accent).BorderForeground(theme.Accent)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Goals"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	bar := progress.New(progress.WithSolidFill(string(theme.Accent)), progress.WithoutPercentage(), progress.WithWidth(24))
	return Model{port: port, list: l, bar: bar}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		goals, err := port.List(context.Background())
		return LoadedMsg{Goals: goals, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case LoadedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Goals))
		for i, g := range msg.Goals {
			items[i] = goalItem{goal: g, bar: m.bar}
		}
		return m, m.list.SetItems(items)

	case ChangedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.status = msg.Status
		return m, m.Reload()

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "c":
			if g, ok := m.selected(); ok {
				return m, m.mutate(func(ctx context.Context) (string, error) {
					_, err := m.port.Complete(ctx, g.ID)
					return "completed " + g.Title, err
				})
			}
			return m, nil
		case "d":
			if g, ok := m.selected(); ok {
				return m, m.mutate(func(ctx context.Context) (string, error) {
					return "deleted " + g.Title, m.port.Delete(ctx, g.ID)
				})
			}
			return m, nil
		case "R":
			return m, m.RecomputeCmd()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// RecomputeCmd refreshes progress for every open goal from the session history.
func (m Model) RecomputeCmd() tea.Cmd {
	return m.mutate(func(ctx context.Context) (string, error) {
		n, err := m.port.Recompute(ctx)
		return fmt.Sprintf("recomputed %d goals", n), err
	})
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) View() string {
	footer := theme.Muted.Render("c: complete  d: delete  R: recompute  /: filter")
	if m.status != "" {
		footer = theme.Muted.Render(m.status) + "  " + footer
	}
	if len(m.list.Items()) == 0 {
		return theme.Title.Render("Goals") + "\n\n" +
			theme.Muted.Render("no goals yet: try :goal:add 5 weekly Scales") + "\n\n" + footer
	}
	return m.list.View() + "\n" + footer
}

func (m Model) selected() (goalsdto.Goal, bool) {
	if item, ok := m.list.SelectedItem().(goalItem); ok {
		return item.goal, true
	}
	return goalsdto.Goal{}, false
}

func (m Model) mutate(op func(context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := op(context.Background())
		return ChangedMsg{Status: status, Err: err}
	}
}
