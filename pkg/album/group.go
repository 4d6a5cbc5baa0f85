// Package album keeps an ordered sequence of bounded-size media groups and
// their layouts in step as items are appended, removed and reordered.
//
// Groups are packed left-most first: every group except the last holds
// exactly the maximum group size. A mutation returns the indices of the
// groups whose item lists changed, so callers can limit re-rendering to
// those groups. Each group keeps its current layout and the layout it had
// before the last change, which a rendering layer can interpolate between.
//
//	p := album.New(album.WithLayouter(grid.Default()))
//	changed, err := p.Append(media.New("a", 1.5), 0, 0)
package album

import (
	"slices"

	"github.com/matzehuels/albumgrid/pkg/grid"
	"github.com/matzehuels/albumgrid/pkg/media"
)

// DefaultMaxGroupSize is the largest number of items a group may hold.
const DefaultMaxGroupSize = 10

// Layouter computes the layout of one group.
//
// *grid.Engine satisfies Layouter.
type Layouter interface {
	Compute(items []media.Item) grid.Layout
}

// Group is a snapshot of one group. Its fields are copies: modifying them
// never affects the partitioner.
type Group struct {
	Index  int          `json:"index"`
	Items  []media.Item `json:"items"`
	Layout grid.Layout  `json:"layout"`
	// Previous is the layout before the group last changed, or nil for a
	// group created by that change.
	Previous *grid.Layout `json:"previous,omitempty"`
}

// Len returns the number of items in the group.
func (g Group) Len() int { return len(g.Items) }

// IDs returns the item ids in order.
func (g Group) IDs() []string { return media.IDs(g.Items) }

// group is the partitioner's mutable state for one group.
type group struct {
	items    []media.Item
	layout   grid.Layout
	previous *grid.Layout
	created  bool // created by the mutation in progress
}

func (g *group) snapshot(index int) Group {
	s := Group{
		Index:  index,
		Items:  make([]media.Item, len(g.items)),
		Layout: g.layout.Clone(),
	}
	for i, it := range g.items {
		s.Items[i] = it.Clone()
	}
	if g.previous != nil {
		prev := g.previous.Clone()
		s.Previous = &prev
	}
	return s
}

func (g *group) insert(index int, it media.Item) {
	g.items = slices.Insert(g.items, index, it)
}

func (g *group) removeAt(index int) media.Item {
	it := g.items[index]
	g.items = slices.Delete(g.items, index, index+1)
	return it
}

func (g *group) indexOf(id string) int {
	return slices.IndexFunc(g.items, func(it media.Item) bool { return it.ID == id })
}
