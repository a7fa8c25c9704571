package repertoire_test

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	repertoiredto "stringlog/internal/modules/repertoire/dto"
	repertoireview "stringlog/internal/ui/views/repertoire"
)

type fakeSongs struct {
	songs []repertoiredto.Song
	added []repertoiredto.Track
}

func (f *fakeSongs) List(context.Context, string, string) ([]repertoiredto.Song, error) {
	return f.songs, nil
}

func (f *fakeSongs) AddTrack(_ context.Context, track repertoiredto.Track, status string) (repertoiredto.Song, error) {
	f.added = append(f.added, track)
	song := repertoiredto.Song{ID: "s-" + track.ID, Title: track.Name, Artist: track.Artist, Status: status}
	f.songs = append(f.songs, song)
	return song, nil
}

func (f *fakeSongs) Delete(context.Context, string) error { return nil }

type fakeSearch struct {
	queries []string
}

func (f *fakeSearch) Submit(query string) uint64 {
	f.queries = append(f.queries, query)
	return uint64(len(f.queries))
}

func typeText(m repertoireview.Model, text string) repertoireview.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func openSearch(t *testing.T, songs *fakeSongs, search *fakeSearch) repertoireview.Model {
	t.Helper()
	m := repertoireview.New(songs, search)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !m.Searching() {
		t.Fatalf("/ should open the search field")
	}
	return m
}

func TestEveryKeystrokeSubmitsTheQuery(t *testing.T) {
	t.Parallel()
	search := &fakeSearch{}
	m := openSearch(t, &fakeSongs{}, search)
	typeText(m, "wish")
	if strings.Join(search.queries, ",") != "w,wi,wis,wish" {
		t.Fatalf("unexpected submissions %v", search.queries)
	}
}

func TestStaleSearchResultsAreIgnored(t *testing.T) {
	t.Parallel()
	m := openSearch(t, &fakeSongs{}, &fakeSearch{})
	m = typeText(m, "wish")

	m, _ = m.Update(repertoireview.SearchResultMsg{Generation: 2, Query: "wi", Tracks: []repertoiredto.Track{{ID: "old", Name: "Old Song"}}})
	if strings.Contains(m.View(), "Old Song") {
		t.Fatalf("stale generation rendered")
	}

	m, _ = m.Update(repertoireview.SearchResultMsg{Generation: 4, Query: "wish", Tracks: []repertoiredto.Track{{ID: "t1", Name: "Wish You Were Here", Artist: "Pink Floyd"}}})
	if !strings.Contains(m.View(), "Wish You Were Here") {
		t.Fatalf("latest results missing:\n%s", m.View())
	}
}

func TestEnterAddsHighlightedTrack(t *testing.T) {
	t.Parallel()
	songs := &fakeSongs{}
	m := openSearch(t, songs, &fakeSearch{})
	m = typeText(m, "ab")
	m, _ = m.Update(repertoireview.SearchResultMsg{Generation: 2, Query: "ab", Tracks: []repertoiredto.Track{
		{ID: "t1", Name: "First"},
		{ID: "t2", Name: "Second"},
	}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Searching() {
		t.Fatalf("enter should close the search")
	}
	changed, ok := cmd().(repertoireview.SongChangedMsg)
	if !ok || changed.Err != nil {
		t.Fatalf("expected SongChangedMsg, got %#v", changed)
	}
	if len(songs.added) != 1 || songs.added[0].ID != "t2" {
		t.Fatalf("expected second track added, got %+v", songs.added)
	}
	if songs.songs[0].Status != "wishlist" {
		t.Fatalf("tracks from search join the wishlist, got %q", songs.songs[0].Status)
	}
}

func TestSearchErrorIsShown(t *testing.T) {
	t.Parallel()
	m := openSearch(t, &fakeSongs{}, &fakeSearch{})
	m = typeText(m, "x")
	m, _ = m.Update(repertoireview.SearchResultMsg{Generation: 1, Query: "x", Err: context.DeadlineExceeded})
	if !strings.Contains(m.View(), "deadline exceeded") {
		t.Fatalf("search error not shown:\n%s", m.View())
	}
}
