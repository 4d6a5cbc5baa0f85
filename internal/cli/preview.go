package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/albumgrid/pkg/grid"
)

// previewCols is the width of the block preview in terminal cells.
const previewCols = 48

const tileLabels = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var tilePalette = []lipgloss.Color{"24", "30", "94", "96", "58", "60", "23", "88", "25", "131"}

// tileLabel returns the one-character label of the i-th tile.
func tileLabel(i int) string {
	return string(tileLabels[i%len(tileLabels)])
}

// renderPositions renders the positions of l as a table.
func renderPositions(l grid.Layout) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := [][]string{}
	for i, p := range l.Positions() {
		rows = append(rows, []string{
			tileLabel(i),
			p.ID,
			span(p.MinX, p.MaxX),
			span(p.MinY, p.MaxY),
			fmt.Sprintf("%d", p.PW),
			fmt.Sprintf("%.3f", p.PH),
			p.Flags.String(),
			fmt.Sprintf("%d", p.SpanSize),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "X", "Y", "Width", "Height", "Edges", "Span").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return cellStyle.Foreground(tilePalette[row%len(tilePalette)]).Bold(true)
			}
			return cellStyle
		})
	return t.Render()
}

func span(lo, hi int) string {
	if lo == hi {
		return fmt.Sprintf("%d", lo)
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}

// renderPreview draws l as coloured blocks, one label per tile. Terminal
// cells are taken to be twice as tall as wide.
func renderPreview(l grid.Layout, maxHeight int) string {
	if l.Empty() || l.Width <= 0 {
		return ""
	}
	ps := l.Positions()
	scaleX := float64(previewCols) / float64(l.Width)
	scaleY := scaleX / 2 * float64(maxHeight)
	rows := max(1, int(math.Round(l.Height*scaleY)))

	canvas := make([][]int, rows)
	for r := range canvas {
		canvas[r] = make([]int, previewCols)
		for c := range canvas[r] {
			canvas[r][c] = -1
		}
	}

	for i, p := range ps {
		x, y := tileOrigin(ps, p)
		c0, c1 := cell(float64(x)*scaleX, previewCols), cell(float64(x+p.PW)*scaleX, previewCols)
		r0, r1 := cell(y*scaleY, rows), cell((y+p.PH)*scaleY, rows)
		for r := r0; r < r1; r++ {
			for c := c0; c < c1; c++ {
				canvas[r][c] = i
			}
		}
	}

	var b strings.Builder
	for r, line := range canvas {
		for c, i := range line {
			if i < 0 {
				b.WriteString(" ")
				continue
			}
			style := lipgloss.NewStyle().Background(tilePalette[i%len(tilePalette)]).Foreground(colorWhite)
			label := " "
			if (r == 0 || canvas[r-1][c] != i) && (c == 0 || line[c-1] != i) {
				label = tileLabel(i)
			}
			b.WriteString(style.Render(label))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// tileOrigin returns the top-left corner of p: the widths of the tiles to
// its left in its first row and the heights of the tiles above it in its
// first column.
func tileOrigin(ps []grid.Position, p grid.Position) (x int, y float64) {
	for _, q := range ps {
		if q.MaxX < p.MinX && q.MinY <= p.MinY && q.MaxY >= p.MinY {
			x += q.PW
		}
		if q.MaxY < p.MinY && q.MinX <= p.MinX && q.MaxX >= p.MinX {
			y += q.PH
		}
	}
	return x, y
}

func cell(v float64, limit int) int {
	return min(max(int(math.Round(v)), 0), limit)
}
