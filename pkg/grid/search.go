package grid

import "math"

// CroppedRatio clamps r into [CropMin, CropMax] and biases it toward the
// group's dominant orientation: at least 1 when the average is above
// BiasPivot, at most 1 otherwise.
func (p Params) CroppedRatio(r, average float64) float64 {
	if average > p.BiasPivot {
		r = math.Max(1, r)
	} else {
		r = math.Min(1, r)
	}
	return math.Max(p.CropMin, math.Min(p.CropMax, r))
}

// lineLimit is the largest item count allowed for line i of a k-line
// composition. Narrow groups may put more items on any line that is neither
// the first nor the last.
func (p Params) lineLimit(i, k int, average float64) int {
	if i > 0 && i < k-1 && average < p.WideMiddleThreshold {
		return p.MaxWideLineItems
	}
	return p.MaxLineItems
}

// Compositions enumerates the admissible line-count vectors for n items in
// search order: by line count first, then lexicographically.
func (p Params) Compositions(n int, average float64) [][]int {
	var out [][]int
	for k := 1; k <= p.MaxLines && k <= n; k++ {
		cur := make([]int, 0, k)
		var walk func(left int)
		walk = func(left int) {
			i := len(cur)
			if i == k-1 {
				if left >= 1 && left <= p.lineLimit(i, k, average) {
					c := make([]int, k)
					copy(c, append(cur, left))
					out = append(out, c)
				}
				return
			}
			limit := p.lineLimit(i, k, average)
			for c := 1; c <= limit && c <= left-(k-1-i); c++ {
				cur = append(cur, c)
				walk(left - c)
				cur = cur[:len(cur)-1]
			}
		}
		walk(n)
	}
	return out
}

// fallbackLines fills lines of MaxLineItems greedily. It is only used when
// n exceeds what the composition limits can hold.
func (p Params) fallbackLines(n int) []int {
	var lines []int
	for n > 0 {
		c := min(n, p.MaxLineItems)
		lines = append(lines, c)
		n -= c
	}
	return lines
}

// lineHeights returns the height of each line: the width unit divided by
// the sum of the cropped ratios on that line.
func (p Params) lineHeights(lines []int, cropped []float64) []float64 {
	heights := make([]float64, len(lines))
	idx := 0
	for i, c := range lines {
		var sum float64
		for _, r := range cropped[idx : idx+c] {
			sum += r
		}
		heights[i] = float64(p.WidthUnit) / sum
		idx += c
	}
	return heights
}

// Score rates a candidate: the distance of its total height from the target,
// multiplied by the penalties that apply.
func (p Params) Score(lines []int, heights []float64) float64 {
	var total float64
	minLine := math.MaxFloat64
	for _, h := range heights {
		total += h
		minLine = math.Min(minLine, h)
	}
	score := math.Abs(total - p.TargetHeight())
	if unbalanced(lines) {
		score *= p.UnbalancedPenalty
	}
	if minLine < float64(p.MinTileWidth) {
		score *= p.ThinLinePenalty
	}
	return score
}

// unbalanced reports whether some line holds more items than the line
// below it.
func unbalanced(lines []int) bool {
	for i := 1; i < len(lines); i++ {
		if lines[i-1] > lines[i] {
			return true
		}
	}
	return false
}

// search scores every composition and returns the search plan. Ties keep
// the first candidate in enumeration order.
func (p Params) search(ratios []float64, average float64) Plan {
	cropped := make([]float64, len(ratios))
	for i, r := range ratios {
		cropped[i] = p.CroppedRatio(r, average)
	}

	plan := Plan{Kind: PlanSearch, Cropped: cropped}
	candidates := p.Compositions(len(ratios), average)
	if len(candidates) == 0 {
		plan.Lines = p.fallbackLines(len(ratios))
		plan.Heights = p.lineHeights(plan.Lines, cropped)
		plan.Score = p.Score(plan.Lines, plan.Heights)
		plan.Candidates = 1
		return plan
	}

	for i, lines := range candidates {
		heights := p.lineHeights(lines, cropped)
		score := p.Score(lines, heights)
		if i == 0 || score < plan.Score {
			plan.Lines = lines
			plan.Heights = heights
			plan.Score = score
		}
	}
	plan.Candidates = len(candidates)
	return plan
}
