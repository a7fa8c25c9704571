package goals_test

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	goalsdto "stringlog/internal/modules/goals/dto"
	goalsview "stringlog/internal/ui/views/goals"
)

type fakeGoals struct {
	goals     []goalsdto.Goal
	completed []string
	deleted   []string
}

func (f *fakeGoals) List(context.Context) ([]goalsdto.Goal, error) { return f.goals, nil }

func (f *fakeGoals) Complete(_ context.Context, id string) (goalsdto.Goal, error) {
	f.completed = append(f.completed, id)
	return goalsdto.Goal{ID: id, Progress: 100, Completed: true}, nil
}

func (f *fakeGoals) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeGoals) Recompute(context.Context) (int, error) { return len(f.goals), nil }

func loaded(t *testing.T, port *fakeGoals) goalsview.Model {
	t.Helper()
	m := goalsview.New(port)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = m.Update(m.Reload()())
	return m
}

func TestCompleteAndDeleteActOnSelection(t *testing.T) {
	t.Parallel()
	port := &fakeGoals{goals: []goalsdto.Goal{
		{ID: "g1", Title: "Scales", TargetHours: 5, Period: "weekly", Progress: 40},
		{ID: "g2", Title: "Repertoire", TargetHours: 1, Period: "daily", Progress: 100, Completed: true},
	}}
	m := loaded(t, port)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	changed, ok := cmd().(goalsview.ChangedMsg)
	if !ok || changed.Err != nil || len(port.completed) != 1 || port.completed[0] != "g1" {
		t.Fatalf("expected g1 completed, got %#v / %v", changed, port.completed)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	_ = cmd()
	if len(port.deleted) != 1 || port.deleted[0] != "g1" {
		t.Fatalf("expected g1 deleted, got %v", port.deleted)
	}
}

func TestRecomputeReportsCount(t *testing.T) {
	t.Parallel()
	port := &fakeGoals{goals: []goalsdto.Goal{{ID: "g1", Title: "Scales", TargetHours: 5, Period: "weekly"}}}
	m := loaded(t, port)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'R'}})
	changed := cmd().(goalsview.ChangedMsg)
	if changed.Status != "recomputed 1 goals" {
		t.Fatalf("unexpected status %q", changed.Status)
	}
	m, _ = m.Update(changed)
	if !strings.Contains(m.View(), "recomputed 1 goals") {
		t.Fatalf("status not rendered:\n%s", m.View())
	}
}

func TestEmptyListShowsHint(t *testing.T) {
	t.Parallel()
	m := loaded(t, &fakeGoals{})
	if !strings.Contains(m.View(), "no goals yet") {
		t.Fatalf("expected empty hint:\n%s", m.View())
	}
}
