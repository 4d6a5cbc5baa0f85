package album

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/albumgrid/pkg/errors"
	"github.com/matzehuels/albumgrid/pkg/grid"
	"github.com/matzehuels/albumgrid/pkg/media"
	"github.com/matzehuels/albumgrid/pkg/observability"
)

// Option configures a Partitioner.
type Option func(*Partitioner)

// WithLayouter sets the layout engine. The default is grid.Default().
func WithLayouter(l Layouter) Option {
	return func(p *Partitioner) {
		if l != nil {
			p.layouter = l
		}
	}
}

// WithMaxGroupSize sets the group capacity. Values outside
// 1..DefaultMaxGroupSize are ignored.
func WithMaxGroupSize(n int) Option {
	return func(p *Partitioner) {
		if n >= 1 && n <= DefaultMaxGroupSize {
			p.maxSize = n
		}
	}
}

// WithLogger sets the logger used for debug output about cascades.
func WithLogger(l *log.Logger) Option {
	return func(p *Partitioner) {
		if l != nil {
			p.logger = l
		}
	}
}

// Partitioner owns an ordered sequence of groups. Groups are addressed by
// index; there are no links between neighbouring groups.
//
// A Partitioner is not safe for concurrent use.
type Partitioner struct {
	layouter Layouter
	maxSize  int
	groups   []*group
	logger   *log.Logger
}

// New returns an empty partitioner.
func New(opts ...Option) *Partitioner {
	p := &Partitioner{
		layouter: grid.Default(),
		maxSize:  DefaultMaxGroupSize,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FromItems packs items, in order, into groups and lays each group out.
func FromItems(items []media.Item, opts ...Option) (*Partitioner, error) {
	p := New(opts...)

	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "item %d has no id", i)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateItem, "duplicate item %q", it.ID)
		}
		seen[it.ID] = struct{}{}
	}

	for chunk := range slices.Chunk(items, p.maxSize) {
		g := &group{items: make([]media.Item, len(chunk))}
		for i, it := range chunk {
			g.items[i] = it.Clone()
		}
		g.layout = p.layouter.Compute(g.items)
		p.groups = append(p.groups, g)
	}
	p.check()
	return p, nil
}

// MaxGroupSize returns the group capacity.
func (p *Partitioner) MaxGroupSize() int { return p.maxSize }

// GroupCount returns the number of groups.
func (p *Partitioner) GroupCount() int { return len(p.groups) }

// Len returns the total number of items.
func (p *Partitioner) Len() int {
	n := 0
	for _, g := range p.groups {
		n += len(g.items)
	}
	return n
}

// Group returns a snapshot of group i.
func (p *Partitioner) Group(i int) (Group, bool) {
	if i < 0 || i >= len(p.groups) {
		return Group{}, false
	}
	return p.groups[i].snapshot(i), true
}

// Groups returns snapshots of every group in order.
func (p *Partitioner) Groups() []Group {
	out := make([]Group, len(p.groups))
	for i, g := range p.groups {
		out[i] = g.snapshot(i)
	}
	return out
}

// Items returns every item in sequence order.
func (p *Partitioner) Items() []media.Item {
	out := make([]media.Item, 0, p.Len())
	for _, g := range p.groups {
		for _, it := range g.items {
			out = append(out, it.Clone())
		}
	}
	return out
}

// Lookup returns the group and index holding the item with the given id.
func (p *Partitioner) Lookup(id string) (group, index int, ok bool) {
	for gi, g := range p.groups {
		if i := g.indexOf(id); i >= 0 {
			return gi, i, true
		}
	}
	return -1, -1, false
}

// Append inserts it at index of group g. If the group overflows, its last
// item moves to the front of the next group, creating one if needed, and
// so on down the sequence. g may equal GroupCount() with index 0 to append
// after the last item.
//
// It returns the indices of the groups whose item lists changed.
func (p *Partitioner) Append(it media.Item, g, index int) ([]int, error) {
	start := time.Now()
	if it.ID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "item has no id")
	}
	if owner, _, ok := p.Lookup(it.ID); ok {
		return nil, errors.New(errors.ErrCodeDuplicateItem, "item %q is already in group %d", it.ID, owner)
	}
	gi, ii, err := p.target(g, index)
	if err != nil {
		return nil, err
	}

	changed := p.commit(p.insert(gi, ii, it.Clone()))
	observability.Partition().OnMutation("append", it.ID, changed, time.Since(start))
	return changed, nil
}

// Remove deletes the item with the given id. The following groups shift
// their items forward to refill the gap; groups left empty are dissolved.
//
// It returns the indices of the surviving groups whose item lists changed.
func (p *Partitioner) Remove(id string) ([]int, error) {
	start := time.Now()
	gi, ii, ok := p.Lookup(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeItemNotFound, "item %q not found", id)
	}

	_, changed := p.remove(gi, ii)
	changed = p.commit(changed)
	observability.Partition().OnMutation("remove", id, changed, time.Since(start))
	return changed, nil
}

// Reorder moves the item with the given id to index of group g. The target
// is interpreted after the item has been removed and is clamped to the
// sequence: a group past the end, or an index past the end of a group,
// means the last possible position.
//
// It returns the indices of the groups whose item lists changed.
func (p *Partitioner) Reorder(id string, g, index int) ([]int, error) {
	start := time.Now()
	gi, ii, ok := p.Lookup(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeItemNotFound, "item %q not found", id)
	}

	// A move inside one group leaves every other group untouched.
	if tg, ti := p.clamp(g, index); tg == gi && ti < len(p.groups[gi].items) {
		if ti == ii {
			return nil, nil
		}
		grp := p.groups[gi]
		grp.insert(ti, grp.removeAt(ii))
		changed := p.commit([]int{gi})
		observability.Partition().OnMutation("reorder", id, changed, time.Since(start))
		return changed, nil
	}

	it, removed := p.remove(gi, ii)
	tg, ti := p.clamp(g, index)
	inserted := p.insert(tg, ti, it)

	changed := p.commit(append(removed, inserted...))
	observability.Partition().OnMutation("reorder", id, changed, time.Since(start))
	return changed, nil
}

// Move shifts the item with the given id by delta places in sequence order,
// stopping at either end.
func (p *Partitioner) Move(id string, delta int) ([]int, error) {
	gi, ii, ok := p.Lookup(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeItemNotFound, "item %q not found", id)
	}
	from := gi*p.maxSize + ii
	to := max(0, min(from+delta, p.Len()-1))
	if to == from {
		return nil, nil
	}
	return p.Reorder(id, to/p.maxSize, to%p.maxSize)
}

// target validates an Append destination.
func (p *Partitioner) target(g, index int) (int, int, error) {
	n := len(p.groups)
	if g < 0 || g > n {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "group %d out of range [0, %d]", g, n)
	}
	if g == n {
		if index != 0 {
			return 0, 0, errors.New(errors.ErrCodeInvalidInput, "index %d out of range for a new group", index)
		}
		gi, ii := p.end()
		return gi, ii, nil
	}
	if size := len(p.groups[g].items); index < 0 || index > size {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "index %d out of range [0, %d] for group %d", index, size, g)
	}
	return g, index, nil
}

// clamp maps any Reorder destination onto a valid insertion point.
func (p *Partitioner) clamp(g, index int) (int, int) {
	n := len(p.groups)
	g = max(0, min(g, n))
	if g == n {
		return p.end()
	}
	return g, max(0, min(index, len(p.groups[g].items)))
}

// end returns the insertion point after the last item.
func (p *Partitioner) end() (int, int) {
	n := len(p.groups)
	if n == 0 {
		return 0, 0
	}
	if last := p.groups[n-1]; len(last.items) < p.maxSize {
		return n - 1, len(last.items)
	}
	return n, 0
}

// insert places it and cascades overflow. It does not recompute layouts.
func (p *Partitioner) insert(gi, ii int, it media.Item) []int {
	if gi == len(p.groups) {
		p.addGroup()
	}
	p.groups[gi].insert(ii, it)
	changed := []int{gi}

	for g := gi; len(p.groups[g].items) > p.maxSize; g++ {
		over := p.groups[g].removeAt(len(p.groups[g].items) - 1)
		if g+1 == len(p.groups) {
			p.addGroup()
		}
		p.groups[g+1].insert(0, over)
		changed = append(changed, g+1)
		p.logger.Debug("group overflow", "item", over.ID, "from", g, "to", g+1)
	}
	return changed
}

// remove deletes the item at ii of group gi, refills from the following
// groups, and dissolves trailing empty groups. It does not recompute layouts.
func (p *Partitioner) remove(gi, ii int) (media.Item, []int) {
	it := p.groups[gi].removeAt(ii)
	changed := []int{gi}

	for g := gi; g+1 < len(p.groups) && len(p.groups[g].items) < p.maxSize; g++ {
		cur, next := p.groups[g], p.groups[g+1]
		pulled := 0
		for len(cur.items) < p.maxSize && len(next.items) > 0 {
			cur.items = append(cur.items, next.removeAt(0))
			pulled++
		}
		changed = append(changed, g+1)
		p.logger.Debug("group underflow", "group", g, "pulled", pulled, "from", g+1)
	}

	for n := len(p.groups); n > 0 && len(p.groups[n-1].items) == 0; n = len(p.groups) {
		p.groups = p.groups[:n-1]
		changed = slices.DeleteFunc(changed, func(i int) bool { return i == n-1 })
		p.logger.Debug("group dissolved", "group", n-1)
		observability.Partition().OnGroupDissolved(n - 1)
	}
	return it, changed
}

func (p *Partitioner) addGroup() {
	p.groups = append(p.groups, &group{created: true})
	index := len(p.groups) - 1
	p.logger.Debug("group created", "group", index)
	observability.Partition().OnGroupCreated(index)
}

// commit recomputes the layouts of the changed groups, keeping each
// group's layout from before the mutation as its previous snapshot, then
// checks the packing invariant. It returns the sorted, unique indices.
func (p *Partitioner) commit(changed []int) []int {
	slices.Sort(changed)
	changed = slices.Compact(changed)
	changed = slices.DeleteFunc(changed, func(i int) bool { return i >= len(p.groups) })

	for _, i := range changed {
		g := p.groups[i]
		if g.created {
			g.previous = nil
			g.created = false
		} else {
			prev := g.layout
			g.previous = &prev
		}
		g.layout = p.layouter.Compute(g.items)
	}
	p.check()
	return changed
}

// check panics if the packing invariant does not hold: every group holds
// between 1 and maxSize items and only the last may hold fewer than maxSize.
// A violation is a partitioner bug, never a consequence of caller input.
func (p *Partitioner) check() {
	for i, g := range p.groups {
		n := len(g.items)
		if n == 0 || n > p.maxSize || (i < len(p.groups)-1 && n != p.maxSize) {
			panic(errors.New(errors.ErrCodeGroupOverflow,
				"group %d of %d holds %d items (max %d)", i, len(p.groups), n, p.maxSize))
		}
	}
}
