package main

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"git.sr.ht/~gioverse/scroll/async"
	"git.sr.ht/~gioverse/scroll/list"
	"git.sr.ht/~gioverse/scroll/source"
)

func newTestModel(t *testing.T) *model {
	t.Helper()
	now := time.Date(2022, time.September, 1, 12, 0, 0, 0, time.UTC)
	m := newModel(terminalOptions(list.Config{SeedCount: 5}), &source.Generator{Now: now}, zerolog.Nop())
	m.scheduler = async.Inline
	m.surface.now = func() time.Time { return now }
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m.Update(fetchedMsg{})
	return m
}

func TestModelShowsFirstPage(t *testing.T) {
	m := newTestModel(t)
	if m.ctrl.Window().Len() == 0 {
		t.Fatalf("expected bound rows after the first page")
	}
	first, ok := m.ctrl.Item(0)
	if !ok {
		t.Fatalf("expected the first item to be fetched")
	}
	view := m.View()
	if !strings.Contains(view, first.Author.Name) {
		t.Errorf("expected the view to show %q:\n%s", first.Author.Name, view)
	}
	if got := strings.Count(view, "\n") + 1; got != 20 {
		t.Errorf("expected 20 lines, got %d", got)
	}
}

func TestModelScrollsWithKeys(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	m.Update(frameMsg{})
	if m.scrollTop != 20 {
		t.Errorf("expected to scroll a page down, got %d", m.scrollTop)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyHome})
	m.Update(frameMsg{})
	if m.scrollTop != 0 {
		t.Errorf("expected to return to the top, got %d", m.scrollTop)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.scrollTop != 0 {
		t.Errorf("expected scrolling above the top to clamp, got %d", m.scrollTop)
	}
}

func TestModelSwipeDismisses(t *testing.T) {
	m := newTestModel(t)
	first, _ := m.ctrl.Item(0)
	m.Update(tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.dragging {
		t.Fatalf("expected a drag to start on the first row")
	}
	m.Update(tea.MouseMsg{X: 20, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if view := m.View(); !strings.Contains(view, "✕") {
		t.Errorf("expected a dismissal hint while dragging:\n%s", view)
	}
	m.Update(tea.MouseMsg{X: 50, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if m.dragging {
		t.Errorf("expected the drag to end once committed")
	}
	if !m.ctrl.Dismissed(0) {
		t.Errorf("expected the first item to be dismissed")
	}
	if pos, ok := m.ctrl.Window().HitTest(0); ok {
		r := m.ctrl.Window().Slot(pos).Element.(*row)
		if r.item.ID == first.ID {
			t.Errorf("expected the dismissed row to be replaced")
		}
	}
}

func TestModelQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected quit")
	}
}

func TestShift(t *testing.T) {
	for _, tc := range []struct {
		in    string
		dx    int
		width int
		want  string
	}{
		{"hello", 0, 10, "hello"},
		{"hello", 2, 10, "  hello"},
		{"hello", 2, 4, "  he"},
		{"hello", -2, 10, "llo"},
		{"hello", -9, 10, ""},
	} {
		if got := shift(tc.in, tc.dx, tc.width); got != tc.want {
			t.Errorf("shift(%q, %d, %d): expected %q, got %q", tc.in, tc.dx, tc.width, got, tc.want)
		}
	}
}
