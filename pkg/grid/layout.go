package grid

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

// Layout is an immutable snapshot of a computed group layout.
//
// Width is the group width in logical units and Height the group height as
// a fraction of [Params.MaxHeight]. Positions are kept in item order.
// Accessors return copies; mutating them never affects the layout.
type Layout struct {
	Width  int
	Height float64

	plan      Plan
	positions []Position
	index     map[string]int
}

func newLayout(width int, height float64, plan Plan, positions []Position) Layout {
	l := Layout{
		Width:     width,
		Height:    height,
		plan:      plan,
		positions: positions,
		index:     make(map[string]int, len(positions)),
	}
	for i, p := range positions {
		if _, dup := l.index[p.ID]; !dup {
			l.index[p.ID] = i
		}
	}
	return l
}

// Empty reports whether the layout holds no positions.
func (l Layout) Empty() bool { return len(l.positions) == 0 }

// Len returns the number of positions.
func (l Layout) Len() int { return len(l.positions) }

// Plan returns the plan the layout was built from.
func (l Layout) Plan() Plan { return l.plan.clone() }

// Position returns the position of the item with the given id.
func (l Layout) Position(id string) (Position, bool) {
	i, ok := l.index[id]
	if !ok {
		return Position{}, false
	}
	return l.positions[i].clone(), true
}

// Positions returns all positions in item order.
func (l Layout) Positions() []Position {
	out := make([]Position, len(l.positions))
	for i, p := range l.positions {
		out[i] = p.clone()
	}
	return out
}

// Columns returns the number of grid columns.
func (l Layout) Columns() int {
	n := 0
	for _, p := range l.positions {
		n = max(n, p.MaxX+1)
	}
	return n
}

// Rows returns the number of grid rows.
func (l Layout) Rows() int {
	n := 0
	for _, p := range l.positions {
		n = max(n, p.MaxY+1)
	}
	return n
}

// Equal reports whether two layouts describe the same geometry.
func (l Layout) Equal(o Layout) bool {
	if l.Width != o.Width || l.Height != o.Height || len(l.positions) != len(o.positions) {
		return false
	}
	for i := range l.positions {
		if !l.positions[i].equal(o.positions[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of l.
func (l Layout) Clone() Layout {
	return newLayout(l.Width, l.Height, l.plan.clone(), l.Positions())
}

// =============================================================================
// Serialization
// =============================================================================

// layoutDoc is the JSON form of a Layout.
type layoutDoc struct {
	Width     int        `json:"width"`
	Height    float64    `json:"height"`
	Plan      Plan       `json:"plan"`
	Positions []Position `json:"positions"`
}

// MarshalJSON implements json.Marshaler.
func (l Layout) MarshalJSON() ([]byte, error) {
	doc := layoutDoc{
		Width:     l.Width,
		Height:    l.Height,
		Plan:      l.plan,
		Positions: l.positions,
	}
	if doc.Positions == nil {
		doc.Positions = []Position{}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var doc layoutDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal layout: %w", err)
	}
	if math.IsNaN(doc.Height) || doc.Height < 0 {
		return fmt.Errorf("unmarshal layout: invalid height %v", doc.Height)
	}
	*l = newLayout(doc.Width, doc.Height, doc.Plan, slices.Clone(doc.Positions))
	return nil
}
