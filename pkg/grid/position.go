package grid

import (
	"slices"
	"strings"
)

// Flags mark which outer edges of the group a tile touches.
type Flags uint8

const (
	FlagTop Flags = 1 << iota
	FlagBottom
	FlagLeft
	FlagRight

	FlagAll = FlagTop | FlagBottom | FlagLeft | FlagRight
)

// Has reports whether every bit of f2 is set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// String renders the flags as a subset of "TBLR", or "-" when empty.
func (f Flags) String() string {
	var b strings.Builder
	for _, e := range []struct {
		flag Flags
		c    byte
	}{{FlagTop, 'T'}, {FlagBottom, 'B'}, {FlagLeft, 'L'}, {FlagRight, 'R'}} {
		if f.Has(e.flag) {
			b.WriteByte(e.c)
		}
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

// Position places one item inside its group.
//
// MinX..MaxX and MinY..MaxY are inclusive grid cell ranges. PW is the width
// in logical units; PH the height as a fraction of [Params.MaxHeight].
// SpanSize is PW plus the anchor padding for tiles in the first column.
// SiblingHeights lists the heights of the rows a multi-row tile spans.
type Position struct {
	ID             string    `json:"id"`
	MinX           int       `json:"min_x"`
	MaxX           int       `json:"max_x"`
	MinY           int       `json:"min_y"`
	MaxY           int       `json:"max_y"`
	PW             int       `json:"pw"`
	PH             float64   `json:"ph"`
	Flags          Flags     `json:"flags"`
	SpanSize       int       `json:"span_size"`
	SiblingHeights []float64 `json:"sibling_heights,omitempty"`
}

// Covers reports whether the tile occupies grid cell (x, y).
func (p Position) Covers(x, y int) bool {
	return x >= p.MinX && x <= p.MaxX && y >= p.MinY && y <= p.MaxY
}

// Rows returns the number of grid rows the tile spans.
func (p Position) Rows() int { return p.MaxY - p.MinY + 1 }

// Cols returns the number of grid columns the tile spans.
func (p Position) Cols() int { return p.MaxX - p.MinX + 1 }

func (p Position) clone() Position {
	p.SiblingHeights = slices.Clone(p.SiblingHeights)
	return p
}

func (p Position) equal(o Position) bool {
	return p.ID == o.ID &&
		p.MinX == o.MinX && p.MaxX == o.MaxX &&
		p.MinY == o.MinY && p.MaxY == o.MaxY &&
		p.PW == o.PW && p.PH == o.PH &&
		p.Flags == o.Flags && p.SpanSize == o.SpanSize &&
		slices.Equal(p.SiblingHeights, o.SiblingHeights)
}
