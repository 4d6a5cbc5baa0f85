package grid

import (
	"math"

	"github.com/matzehuels/albumgrid/pkg/media"
)

// tile is a position under construction. Heights are in logical units.
type tile struct {
	minX, maxX, minY, maxY int
	pw                     int
	h                      float64
	flags                  Flags
}

// pickRule selects the closed-form rule for two to four items, or RuleNone
// when the group needs the general search.
func (p Params) pickRule(s media.Stats) Rule {
	if s.ForceFullSearch {
		return RuleNone
	}
	c := s.Categories
	switch len(c) {
	case 2:
		switch {
		case c[0] == media.Wide && c[1] == media.Wide && s.Average > p.WideStackFactor*p.CanvasRatio():
			return RulePairStacked
		case c[0] == c[1]:
			return RulePairColumns
		default:
			return RulePairWeighted
		}
	case 3:
		if c[0] == media.Narrow {
			return RuleTrioLeftColumn
		}
		return RuleTrioTopRow
	case 4:
		if c[0] == media.Wide {
			return RuleQuadTopRow
		}
		return RuleQuadLeftColumn
	}
	return RuleNone
}

// single lays out one item as a full-width tile.
func (p Params) single(r float64) []tile {
	w := float64(p.WidthUnit)
	h := p.floorHeight(math.Round(math.Min(w/r, float64(p.MaxHeight))))
	return []tile{{pw: p.WidthUnit, h: h, flags: FlagAll}}
}

// applyRule lays out ratios r with the closed-form rule.
func (p Params) applyRule(rule Rule, r []float64) []tile {
	W := p.WidthUnit
	w := float64(W)
	H := float64(p.MaxHeight)

	switch rule {
	case RulePairStacked:
		h := p.floorHeight(math.Round(min(w/r[0], w/r[1], H/2)))
		return []tile{
			{minY: 0, maxY: 0, pw: W, h: h, flags: FlagTop | FlagLeft | FlagRight},
			{minY: 1, maxY: 1, pw: W, h: h, flags: FlagBottom | FlagLeft | FlagRight},
		}

	case RulePairColumns:
		w0 := W / 2
		w1 := W - w0
		h := p.floorHeight(math.Round(min(float64(w0)/r[0], float64(w1)/r[1], H)))
		return []tile{
			{minX: 0, maxX: 0, pw: w0, h: h, flags: FlagLeft | FlagTop | FlagBottom},
			{minX: 1, maxX: 1, pw: w1, h: h, flags: FlagRight | FlagTop | FlagBottom},
		}

	case RulePairWeighted:
		second := max(int(math.Round(p.TwoColumnMinShare*w)), int(math.Round(w*r[1]/(r[0]+r[1]))))
		second = min(second, W-p.MinTileWidth)
		first := W - second
		if first < p.MinTileWidth {
			first = p.MinTileWidth
			second = W - first
		}
		h := p.floorHeight(math.Min(H, math.Round(math.Min(float64(first)/r[0], float64(second)/r[1]))))
		return []tile{
			{minX: 0, maxX: 0, pw: first, h: h, flags: FlagLeft | FlagTop | FlagBottom},
			{minX: 1, maxX: 1, pw: second, h: h, flags: FlagRight | FlagTop | FlagBottom},
		}

	case RuleTrioLeftColumn:
		hs := splitUnits(p.MaxHeight, inverse(r[1:]), p.MinTileHeight)
		rw := p.columnWidth(math.Min(float64(hs[0])*r[1], float64(hs[1])*r[2]))
		lw := W - rw
		return []tile{
			{minX: 0, maxX: 0, minY: 0, maxY: 1, pw: lw, h: H, flags: FlagLeft | FlagTop | FlagBottom},
			{minX: 1, maxX: 1, minY: 0, maxY: 0, pw: rw, h: float64(hs[0]), flags: FlagRight | FlagTop},
			{minX: 1, maxX: 1, minY: 1, maxY: 1, pw: rw, h: float64(hs[1]), flags: FlagRight | FlagBottom},
		}

	case RuleTrioTopRow:
		h0 := p.topHeight(r[0])
		ws := splitUnits(W, r[1:], p.MinTileWidth)
		h := math.Round(math.Min(float64(ws[0])/r[1], float64(ws[1])/r[2]))
		h = p.floorHeight(math.Min(h, H-h0))
		return []tile{
			{minX: 0, maxX: 1, pw: W, h: h0, flags: FlagLeft | FlagRight | FlagTop},
			{minX: 0, maxX: 0, minY: 1, maxY: 1, pw: ws[0], h: h, flags: FlagLeft | FlagBottom},
			{minX: 1, maxX: 1, minY: 1, maxY: 1, pw: ws[1], h: h, flags: FlagRight | FlagBottom},
		}

	case RuleQuadTopRow:
		h0 := p.topHeight(r[0])
		ws := splitUnits(W, r[1:], p.MinTileWidth)
		h := math.Round(w / (r[1] + r[2] + r[3]))
		h = p.floorHeight(math.Min(h, H-h0))
		return []tile{
			{minX: 0, maxX: 2, pw: W, h: h0, flags: FlagLeft | FlagRight | FlagTop},
			{minX: 0, maxX: 0, minY: 1, maxY: 1, pw: ws[0], h: h, flags: FlagLeft | FlagBottom},
			{minX: 1, maxX: 1, minY: 1, maxY: 1, pw: ws[1], h: h, flags: FlagBottom},
			{minX: 2, maxX: 2, minY: 1, maxY: 1, pw: ws[2], h: h, flags: FlagRight | FlagBottom},
		}

	case RuleQuadLeftColumn:
		inv := inverse(r[1:])
		hs := splitUnits(p.MaxHeight, inv, p.MinTileHeight)
		rw := p.columnWidth(H / (inv[0] + inv[1] + inv[2]))
		lw := W - rw
		return []tile{
			{minX: 0, maxX: 0, minY: 0, maxY: 2, pw: lw, h: H, flags: FlagLeft | FlagTop | FlagBottom},
			{minX: 1, maxX: 1, minY: 0, maxY: 0, pw: rw, h: float64(hs[0]), flags: FlagRight | FlagTop},
			{minX: 1, maxX: 1, minY: 1, maxY: 1, pw: rw, h: float64(hs[1]), flags: FlagRight},
			{minX: 1, maxX: 1, minY: 2, maxY: 2, pw: rw, h: float64(hs[2]), flags: FlagRight | FlagBottom},
		}
	}
	return nil
}

// topHeight is the height of a full-width first row, capped to a share of
// the group height.
func (p Params) topHeight(r float64) float64 {
	w := float64(p.WidthUnit)
	return p.floorHeight(math.Round(math.Min(w/r, float64(p.MaxHeight)*p.TopRowMaxShare)))
}

// columnWidth rounds a natural right-column width into [MinTileWidth, W/2].
func (p Params) columnWidth(natural float64) int {
	cw := int(math.Round(natural))
	return max(p.MinTileWidth, min(cw, p.WidthUnit/2))
}

func (p Params) floorHeight(h float64) float64 {
	return math.Max(h, float64(p.MinTileHeight))
}

func inverse(r []float64) []float64 {
	out := make([]float64, len(r))
	for i, v := range r {
		out[i] = 1 / v
	}
	return out
}

// splitUnits divides total into parts proportional to weights, each at
// least floor. The parts always sum to total: the rounding shortfall or
// excess goes to the last part, and if that pushes it under floor the
// difference is taken from the widest other parts.
func splitUnits(total int, weights []float64, floor int) []int {
	n := len(weights)
	out := make([]int, n)
	if n == 0 {
		return out
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}

	used := 0
	for i, w := range weights {
		out[i] = max(floor, int(math.Round(float64(total)*w/sum)))
		used += out[i]
	}

	last := n - 1
	out[last] += total - used
	if out[last] >= floor {
		return out
	}

	need := floor - out[last]
	out[last] = floor
	for need > 0 {
		j := -1
		for i := 0; i < last; i++ {
			if out[i] > floor && (j < 0 || out[i] > out[j]) {
				j = i
			}
		}
		if j < 0 {
			// total cannot hold n parts of floor; keep the sum exact.
			out[last] -= need
			break
		}
		take := min(need, out[j]-floor)
		out[j] -= take
		need -= take
	}
	return out
}
