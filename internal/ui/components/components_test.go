package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jscyril/mediacore/api"
)

func catalogItems(ids ...string) []api.CatalogItem {
	out := make([]api.CatalogItem, len(ids))
	for i, id := range ids {
		out[i] = api.CatalogItem{ID: id, Title: "Title " + id, Artist: "Artist"}
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestItemListNavigation(t *testing.T) {
	l := NewItemList(5, 60)
	l.SetItems(catalogItems("a", "b", "c", "d", "e"))

	tests := []struct {
		key       string
		want      int
		wantMoved bool
	}{
		{"up", 0, false},
		{"down", 1, true},
		{"j", 2, true},
		{"end", 4, true},
		{"down", 4, false},
		{"home", 0, true},
		{"pgdown", 3, true},
	}
	for _, tt := range tests {
		var moved bool
		l, moved = l.Update(key(tt.key))
		if l.Selected != tt.want || moved != tt.wantMoved {
			t.Errorf("%s: selected %d moved %v, want %d %v", tt.key, l.Selected, moved, tt.want, tt.wantMoved)
		}
	}
}

func TestItemListKeepsCursorOnRefilter(t *testing.T) {
	l := NewItemList(10, 60)
	l.SetItems(catalogItems("a", "b", "c"))
	l, _ = l.Update(key("down"))
	l, _ = l.Update(key("down"))

	l.SetItems(catalogItems("c", "a"))
	if got := l.SelectedItem(); got == nil || got.ID != "c" {
		t.Errorf("cursor should follow c, got %+v", got)
	}

	l.SetItems(catalogItems("x"))
	if got := l.SelectedItem(); got == nil || got.ID != "x" {
		t.Errorf("cursor should reset to the first item, got %+v", got)
	}

	l.SetItems(nil)
	if l.SelectedItem() != nil {
		t.Error("empty list has no selection")
	}
	if !strings.Contains(l.View(), "Nothing matches") {
		t.Error("empty list should say so")
	}
}

func TestItemListMarkers(t *testing.T) {
	l := NewItemList(10, 80)
	l.SetItems(catalogItems("a", "b"))
	l.PlayingID = "a"
	l.PreviewID = "b"

	out := l.View()
	if !strings.Contains(out, "♪") || !strings.Contains(out, "~") {
		t.Errorf("markers missing from %q", out)
	}
}

func TestSearchInputEditing(t *testing.T) {
	s := NewSearchInput(40)

	if _, changed := s.Update(key("a")); changed {
		t.Fatal("unfocused input must ignore keys")
	}

	s.Focus()
	for _, k := range []string{"a", "r", "ı", "j"} {
		s, _ = s.Update(key(k))
	}
	if s.Query() != "arıj" {
		t.Fatalf("query %q", s.Query())
	}

	s, _ = s.Update(key("left"))
	s, changed := s.Update(key("backspace"))
	if !changed || s.Query() != "arj" {
		t.Errorf("backspace before cursor: %q", s.Query())
	}

	s, changed = s.Update(key("left"))
	if changed {
		t.Error("cursor moves do not change the text")
	}
}

func TestSearchInputFilterCycle(t *testing.T) {
	s := NewSearchInput(40)

	s.CycleCategory()
	if s.Filters.Category != api.Categories()[0] {
		t.Errorf("first cycle should pick %q, got %q", api.Categories()[0], s.Filters.Category)
	}
	for range api.Categories() {
		s.CycleCategory()
	}
	if s.Filters.Category != api.CategoryNone {
		t.Errorf("full cycle should clear the filter, got %q", s.Filters.Category)
	}

	s.CycleMood()
	if s.Filters.Mood != api.Moods()[0] {
		t.Errorf("got %q", s.Filters.Mood)
	}
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar(40)
	p.SetProgress(150, 90*time.Second)

	if p.Percent != 100 {
		t.Errorf("percent should clamp to 100, got %v", p.Percent)
	}
	if out := p.View(); !strings.Contains(out, "01:30") || !strings.Contains(out, "100%") {
		t.Errorf("unexpected view %q", out)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{61 * time.Second, "01:01"},
		{1499 * time.Millisecond, "00:01"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Tum Hi Ho", 20); got != "Tum Hi Ho" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("Starlight Avenue", 8); got != "Starl..." {
		t.Errorf("got %q", got)
	}
	if got := Truncate("दिल से", 4); got != "द..." {
		t.Errorf("rune-aware truncate got %q", got)
	}
}

func TestLyricsPanel(t *testing.T) {
	p := NewLyricsPanel(30)
	p.Lines = api.LyricTriple{Previous: "a", Current: "b", Next: ""}

	rows := strings.Split(p.View(), "\n")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if !strings.Contains(rows[1], "b") {
		t.Errorf("current line missing: %q", rows[1])
	}
}
