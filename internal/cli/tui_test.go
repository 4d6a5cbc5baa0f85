package cli

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/albumgrid/pkg/album"
	"github.com/matzehuels/albumgrid/pkg/grid"
	"github.com/matzehuels/albumgrid/pkg/media"
)

func newEditModel(t *testing.T, n, size int) EditModel {
	t.Helper()
	items := make([]media.Item, n)
	for i := range items {
		items[i] = media.New(fmt.Sprintf("i%02d", i), []float64{1.5, 0.75, 1}[i%3])
	}
	p, err := album.FromItems(items, album.WithMaxGroupSize(size))
	if err != nil {
		t.Fatal(err)
	}
	return NewEditModel(p, grid.DefaultParams().MaxHeight)
}

func press(m EditModel, keys ...string) EditModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(EditModel)
	}
	return m
}

func ids(p *album.Partitioner) string {
	return strings.Join(media.IDs(p.Items()), " ")
}

func TestEditCursorBounds(t *testing.T) {
	m := newEditModel(t, 3, 2)
	m = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
	m = press(m, "down", "down", "down", "down")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}
}

func TestEditMoveAcrossGroups(t *testing.T) {
	m := newEditModel(t, 5, 2)
	m = press(m, "down", "J")

	if got := ids(m.Partitioner); got != "i00 i02 i01 i03 i04" {
		t.Errorf("items = %s", got)
	}
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (follows the item)", m.Cursor)
	}
	if fmt.Sprint(m.Changed) != "[0 1 2]" {
		t.Errorf("changed = %v, want [0 1 2]", m.Changed)
	}

	m = press(m, "K", "K")
	if got := ids(m.Partitioner); got != "i01 i00 i02 i03 i04" {
		t.Errorf("items = %s", got)
	}
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
}

func TestEditRemove(t *testing.T) {
	m := newEditModel(t, 3, 2)
	m = press(m, "down", "down", "d")
	if got := ids(m.Partitioner); got != "i00 i01" {
		t.Errorf("items = %s", got)
	}
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1 after removing the last item", m.Cursor)
	}
	if m.Partitioner.GroupCount() != 1 {
		t.Errorf("groups = %d, want 1", m.Partitioner.GroupCount())
	}

	m = press(m, "d", "d", "d")
	if m.Partitioner.Len() != 0 {
		t.Errorf("len = %d, want 0", m.Partitioner.Len())
	}
	if !strings.Contains(m.View(), "no items left") {
		t.Error("view should report an empty album")
	}
}

func TestEditSaveAndQuit(t *testing.T) {
	m := newEditModel(t, 2, 10)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	if !next.(EditModel).Saved || cmd == nil {
		t.Error("w should save and quit")
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(EditModel).Saved || cmd == nil {
		t.Error("esc should quit without saving")
	}
}

func TestEditView(t *testing.T) {
	m := newEditModel(t, 12, 10)
	view := m.View()
	for _, want := range []string{"Group 0", "i00", "12 items, 2 groups"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
