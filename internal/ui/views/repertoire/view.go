package repertoire

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	repertoiredto "stringlog/internal/modules/repertoire/dto"
	"stringlog/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type SongPort interface {
	List(ctx context.Context, status, query string) ([]repertoiredto.Song, error)
	AddTrack(ctx context.Context, track repertoiredto.Track, status string) (repertoiredto.Song, error)
	Delete(ctx context.Context, id string) error
}

// SearchPort debounces queries and answers later with a SearchResultMsg.
type SearchPort interface {
	Submit(query string) uint64
}

// ─── messages ────────────────────────────────────────────────────────────────

type SongsLoadedMsg struct {
	Songs []repertoiredto.Song
	Err   error
}

// SearchResultMsg answers the query submitted under Generation.
type SearchResultMsg struct {
	Generation uint64
	Query      string
	Tracks     []repertoiredto.Track
	Err        error
}

type SongChangedMsg struct {
	Status string
	Err    error
}

// UseSongMsg asks the host to attach the song to the practice timer.
type UseSongMsg struct {
	Song repertoiredto.Song
}

const addedStatus = "wishlist"

// ─── list item ───────────────────────────────────────────────────────────────

type songItem struct{ song repertoiredto.Song }

func (i songItem) Title() string { return i.song.Title }
func (i songItem) Description() string {
	parts := []string{i.song.Status}
	if i.song.Artist != "" {
		parts = append([]string{i.song.Artist}, parts...)
	}
	if i.song.TotalPracticeSec > 0 {
		parts = append(parts, fmt.Sprintf("%.1fh", float64(i.song.TotalPracticeSec)/3600))
	}
	return strings.Join(parts, " · ")
}
func (i songItem) FilterValue() string { return i.song.Title + " " + i.song.Artist }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	songs  SongPort
	search SearchPort

	list    list.Model
	detail  viewport.Model
	query   textinput.Model
	tracks  []repertoiredto.Track
	cursor  int
	gen     uint64
	pending bool

	searching bool
	status    string
	width     int
	height    int
}

func New(songs SongPort, search SearchPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Accent).BorderForeground(theme.Accent)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Repertoire"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "search Spotify tracks"
	ti.CharLimit = 120

	vp := viewport.New(0, 0)
	return Model{songs: songs, search: search, list: l, query: ti, detail: vp}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Reload() tea.Cmd {
	songs := m.songs
	return func() tea.Msg {
		all, err := songs.List(context.Background(), "", "")
		return SongsLoadedMsg{Songs: all, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case SongsLoadedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Songs))
		for i, s := range msg.Songs {
			items[i] = songItem{song: s}
		}
		cmd := m.list.SetItems(items)
		m.detail.SetContent(m.renderDetail())
		return m, cmd

	case SearchResultMsg:
		if msg.Generation != m.gen {
			return m, nil
		}
		m.pending = false
		if msg.Err != nil {
			m.tracks = nil
			m.status = msg.Err.Error()
			return m, nil
		}
		m.tracks = msg.Tracks
		m.cursor = 0
		m.status = fmt.Sprintf("%d tracks for %q", len(msg.Tracks), msg.Query)
		return m, nil

	case SongChangedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.status = msg.Status
		return m, m.Reload()

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "/":
			m.searching = true
			m.query.SetValue("")
			m.tracks = nil
			cmd := m.query.Focus()
			return m, cmd
		case "d":
			if s, ok := m.Selected(); ok {
				songs := m.songs
				return m, func() tea.Msg {
					return SongChangedMsg{Status: "deleted " + s.Title, Err: songs.Delete(context.Background(), s.ID)}
				}
			}
			return m, nil
		case "enter":
			if s, ok := m.Selected(); ok {
				return m, func() tea.Msg { return UseSongMsg{Song: s} }
			}
			return m, nil
		}
	}

	prev := m.list.Index()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if m.list.Index() != prev {
		m.detail.SetContent(m.renderDetail())
	}
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.pending = false
		m.query.Blur()
		m.tracks = nil
		return m, nil
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.cursor < len(m.tracks)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if m.cursor >= len(m.tracks) {
			return m, nil
		}
		track := m.tracks[m.cursor]
		songs := m.songs
		m.searching = false
		m.query.Blur()
		m.tracks = nil
		return m, func() tea.Msg {
			song, err := songs.AddTrack(context.Background(), track, addedStatus)
			return SongChangedMsg{Status: "added " + song.Title, Err: err}
		}
	}

	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if value := m.query.Value(); value != before && m.search != nil {
		m.gen = m.search.Submit(value)
		m.pending = strings.TrimSpace(value) != ""
	}
	return m, cmd
}

// Searching reports whether the search field holds the keyboard.
func (m Model) Searching() bool { return m.searching }

func (m Model) Selected() (repertoiredto.Song, bool) {
	if item, ok := m.list.SelectedItem().(songItem); ok {
		return item.song, true
	}
	return repertoiredto.Song{}, false
}

func (m Model) View() string {
	listW := m.width * 45 / 100
	left := lipgloss.NewStyle().Width(listW).Height(max(m.height-2, 1)).Render(m.list.View())

	var right string
	if m.searching {
		right = m.renderSearch()
	} else {
		right = m.detail.View()
	}
	right = theme.Pane.Width(max(m.width-listW-4, 20)).Render(right)

	footer := theme.Muted.Render("/: search spotify  enter: practice this song  d: delete")
	if m.status != "" {
		footer = theme.Muted.Render(m.status) + "  " + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, lipgloss.JoinHorizontal(lipgloss.Top, left, right), footer)
}

func (m Model) renderSearch() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Track search") + "\n\n")
	sb.WriteString(m.query.View() + "\n\n")
	if m.pending {
		sb.WriteString(theme.Muted.Render("searching…") + "\n")
	}
	for i, t := range m.tracks {
		line := t.Name + theme.Muted.Render(" · "+t.Artist)
		if i == m.cursor {
			line = theme.Hot.Render("› ") + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("↑/↓: choose  enter: add to "+addedStatus+"  esc: close"))
	return sb.String()
}

func (m Model) renderDetail() string {
	s, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("no songs yet: press / to search for one")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(s.Title) + "\n\n")
	row := func(label, value string) {
		if value != "" {
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-11s", label)) + value + "\n")
		}
	}
	row("artist", s.Artist)
	row("album", s.Album)
	row("status", s.Status)
	row("difficulty", strings.Repeat("★", s.Difficulty)+strings.Repeat("☆", 5-s.Difficulty))
	row("practiced", (time.Duration(s.TotalPracticeSec) * time.Second).String())
	if s.LastPracticedAt != nil {
		row("last", s.LastPracticedAt.Local().Format("Mon Jan 2 15:04"))
	}
	row("spotify", s.SpotifyURL)
	if s.Notes != "" {
		sb.WriteString("\n" + s.Notes + "\n")
	}
	return sb.String()
}

func (m *Model) resize() {
	listW := m.width * 45 / 100
	m.list.SetSize(listW, max(m.height-2, 1))
	m.detail.Width = max(m.width-listW-8, 10)
	m.detail.Height = max(m.height-6, 1)
	m.query.Width = max(m.width-listW-12, 10)
}
