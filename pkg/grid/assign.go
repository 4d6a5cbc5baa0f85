package grid

import (
	"math"
	"slices"
)

// searchTiles turns a search plan into tiles. Lines run top to bottom and
// items left to right. The last tile of each line spans to the group's last
// column and absorbs the line's rounding leftover.
func (p Params) searchTiles(plan Plan) []tile {
	cols := slices.Max(plan.Lines)
	tiles := make([]tile, 0, len(plan.Cropped))

	idx := 0
	for i, c := range plan.Lines {
		lineHeight := plan.Heights[i]
		h := p.floorHeight(lineHeight)
		spanLeft := p.WidthUnit

		for k := 0; k < c; k++ {
			w := int(math.Round(plan.Cropped[idx] * lineHeight))
			spanLeft -= w

			var flags Flags
			if i == 0 {
				flags |= FlagTop
			}
			if i == len(plan.Lines)-1 {
				flags |= FlagBottom
			}
			if k == 0 {
				flags |= FlagLeft
			}
			maxX := k
			if k == c-1 {
				flags |= FlagRight
				maxX = cols - 1
			}
			tiles = append(tiles, tile{minX: k, maxX: maxX, minY: i, maxY: i, pw: w, h: h, flags: flags})
			idx++
		}
		tiles[len(tiles)-1].pw += spanLeft
	}
	return tiles
}

// finalize reconciles tile extents and converts them to positions.
//
// Rows must sum to the width unit: the last single-row tile of a row takes
// whatever the preceding tiles leave. Multi-row tiles take the summed height
// of the rows they span, read from the single-row tiles beside them, and
// keep those heights as SiblingHeights.
func (p Params) finalize(ids []string, tiles []tile) ([]Position, int, float64) {
	rows, cols := 0, 0
	for _, t := range tiles {
		rows = max(rows, t.maxY+1)
		cols = max(cols, t.maxX+1)
	}

	p.reconcileRows(tiles, rows)
	rowHeights := p.reconcileColumns(tiles, rows)

	H := float64(p.MaxHeight)
	positions := make([]Position, len(tiles))
	for i, t := range tiles {
		pos := Position{
			ID:       ids[i],
			MinX:     t.minX,
			MaxX:     t.maxX,
			MinY:     t.minY,
			MaxY:     t.maxY,
			PW:       t.pw,
			PH:       t.h / H,
			Flags:    t.flags,
			SpanSize: t.pw,
		}
		if t.minX == 0 {
			pos.SpanSize += p.AnchorSpan
		}
		if t.maxY > t.minY {
			pos.SiblingHeights = make([]float64, 0, t.maxY-t.minY+1)
			for y := t.minY; y <= t.maxY; y++ {
				pos.SiblingHeights = append(pos.SiblingHeights, rowHeights[y]/H)
			}
		}
		positions[i] = pos
	}

	width := 0
	for y := 0; y < rows; y++ {
		sum := 0
		for _, pos := range positions {
			if pos.MinY <= y && y <= pos.MaxY {
				sum += pos.PW
			}
		}
		width = max(width, sum)
	}

	var height float64
	for x := 0; x < cols; x++ {
		var sum float64
		for _, pos := range positions {
			if pos.MinX <= x && x <= pos.MaxX {
				sum += pos.PH
			}
		}
		height = math.Max(height, sum)
	}

	return positions, width, height
}

// reconcileRows makes every grid row sum exactly to the width unit.
func (p Params) reconcileRows(tiles []tile, rows int) {
	for y := 0; y < rows; y++ {
		designated := -1
		sum := 0
		for i, t := range tiles {
			if t.minY > y || y > t.maxY {
				continue
			}
			sum += t.pw
			if t.minY == t.maxY && (designated < 0 || t.minX > tiles[designated].minX) {
				designated = i
			}
		}
		if designated < 0 || sum == p.WidthUnit {
			continue
		}
		tiles[designated].pw += p.WidthUnit - sum
	}
}

// reconcileColumns sets each multi-row tile's height to the prefix sum of
// the rows it spans and returns the per-row heights.
func (p Params) reconcileColumns(tiles []tile, rows int) []float64 {
	rowHeights := make([]float64, rows)
	known := make([]bool, rows)
	for _, t := range tiles {
		if t.minY == t.maxY && !known[t.minY] {
			rowHeights[t.minY] = t.h
			known[t.minY] = true
		}
	}

	for i, t := range tiles {
		if t.maxY == t.minY {
			continue
		}
		var sum float64
		for y := t.minY; y <= t.maxY; y++ {
			if !known[y] {
				// No neighbour defines this row; split the tile evenly.
				rowHeights[y] = t.h / float64(t.maxY-t.minY+1)
				known[y] = true
			}
			sum += rowHeights[y]
		}
		tiles[i].h = sum
	}
	return rowHeights
}
