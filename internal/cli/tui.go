package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/albumgrid/pkg/album"
	"github.com/matzehuels/albumgrid/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listChangedStyle  = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// EditModel - Interactive group editing
// =============================================================================

// EditModel is the bubbletea model for reordering and removing items.
// Cursor is a global item index; groups are packed, so item i lives in
// group i / MaxGroupSize.
type EditModel struct {
	Partitioner *album.Partitioner
	Cursor      int
	Changed     []int
	Status      string
	Saved       bool
	Height      int
	Offset      int
	MaxHeight   int
}

// NewEditModel creates an edit model over p. maxHeight is the engine's
// MaxHeight, used to scale the preview.
func NewEditModel(p *album.Partitioner, maxHeight int) EditModel {
	return EditModel{
		Partitioner: p,
		Height:      20,
		MaxHeight:   maxHeight,
	}
}

func (m EditModel) Init() tea.Cmd {
	return nil
}

func (m EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "w":
			m.Saved = true
			return m, tea.Quit
		case "up", "k":
			m.setCursor(m.Cursor - 1)
		case "down", "j":
			m.setCursor(m.Cursor + 1)
		case "shift+up", "K":
			m.move(-1)
		case "shift+down", "J":
			m.move(1)
		case "d", "x", "delete":
			m.remove()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.setCursor(m.Cursor)
	}
	return m, nil
}

func (m *EditModel) setCursor(i int) {
	m.Cursor = min(max(i, 0), max(m.Partitioner.Len()-1, 0))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m *EditModel) current() (string, bool) {
	items := m.Partitioner.Items()
	if m.Cursor >= len(items) {
		return "", false
	}
	return items[m.Cursor].ID, true
}

func (m *EditModel) move(delta int) {
	id, ok := m.current()
	if !ok {
		return
	}
	changed, err := m.Partitioner.Move(id, delta)
	if err != nil {
		m.Status = errors.UserMessage(err)
		return
	}
	m.Changed = changed
	m.Status = fmt.Sprintf("moved %s", id)
	if g, i, ok := m.Partitioner.Lookup(id); ok {
		m.setCursor(g*m.Partitioner.MaxGroupSize() + i)
	}
}

func (m *EditModel) remove() {
	id, ok := m.current()
	if !ok {
		return
	}
	changed, err := m.Partitioner.Remove(id)
	if err != nil {
		m.Status = errors.UserMessage(err)
		return
	}
	m.Changed = changed
	m.Status = fmt.Sprintf("removed %s", id)
	m.setCursor(m.Cursor)
}

func (m EditModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Edit Groups"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  J/K move  d remove  w save  q quit"))
	b.WriteString("\n\n")

	p := m.Partitioner
	size := p.MaxGroupSize()
	items := p.Items()
	end := min(m.Offset+m.Height, len(items))

	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		g := i / size
		if i == m.Offset || i%size == 0 {
			list.WriteString(m.groupHeader(g))
			list.WriteString("\n")
		}

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%2d  %-20s %5.2f", cursor, i%size, items[i].ID, items[i].Ratio())
		if i == m.Cursor {
			list.WriteString(listSelectedStyle.Render(line))
		} else {
			list.WriteString(listNormalStyle.Render(line))
		}
		list.WriteString("\n")
	}
	if len(items) == 0 {
		list.WriteString(listDimStyle.Render("  no items left"))
		list.WriteString("\n")
	}

	preview := ""
	if grp, ok := p.Group(m.Cursor / size); ok {
		preview = renderPreview(grp.Layout, m.MaxHeight)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "   ", preview))
	b.WriteString("\n\n")

	status := fmt.Sprintf("  [%d items, %d groups]", len(items), p.GroupCount())
	if m.Status != "" {
		status += "  " + m.Status
	}
	b.WriteString(listDimStyle.Render(status))

	return b.String()
}

func (m EditModel) groupHeader(g int) string {
	grp, ok := m.Partitioner.Group(g)
	if !ok {
		return ""
	}
	header := fmt.Sprintf("Group %d · %s", g, grp.Layout.Plan())
	if slices.Contains(m.Changed, g) {
		return listChangedStyle.Render(header + " (changed)")
	}
	return listDimStyle.Render(header)
}
