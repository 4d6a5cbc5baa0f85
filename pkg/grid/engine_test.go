package grid

import (
	"math"
	"math/rand/v2"
	"reflect"
	"slices"
	"testing"

	"github.com/matzehuels/albumgrid/pkg/media"
)

func items(ratios ...float64) []media.Item {
	out := make([]media.Item, len(ratios))
	for i, r := range ratios {
		out[i] = media.New(string(rune('a'+i)), r)
	}
	return out
}

func randomRatios(rng *rand.Rand, n int) []float64 {
	pool := []float64{0.5, 0.5625, 0.75, 1, 1.25, 1.333, 1.5, 1.7778, 2.4, 3, 0.3}
	out := make([]float64, n)
	for i := range out {
		if rng.IntN(4) == 0 {
			out[i] = pool[rng.IntN(len(pool))]
		} else {
			out[i] = 0.25 + rng.Float64()*3
		}
	}
	return out
}

func TestComputeInvariants(t *testing.T) {
	e := Default()
	p := e.Params()
	rng := rand.New(rand.NewPCG(7, 11))

	for n := 1; n <= 10; n++ {
		for trial := 0; trial < 200; trial++ {
			ratios := randomRatios(rng, n)
			l := e.Compute(items(ratios...))
			if err := p.Verify(l); err != nil {
				t.Fatalf("n=%d ratios=%v plan=%s: %v", n, ratios, l.Plan(), err)
			}
			if l.Len() != n {
				t.Fatalf("n=%d: got %d positions", n, l.Len())
			}
		}
	}
}

func TestComputeFixedRatiosAllCounts(t *testing.T) {
	e := Default()
	sets := [][]float64{
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
		{1.78, 1.78, 1.78, 1.78, 1.78, 1.78, 1.78, 1.78, 1.78, 1.78},
		{1.5, 0.66, 1, 2.5, 0.75, 1.33, 0.56, 1.78, 1, 3},
	}
	for _, set := range sets {
		for n := 1; n <= len(set); n++ {
			l := e.Compute(items(set[:n]...))
			if err := e.Params().Verify(l); err != nil {
				t.Errorf("ratios=%v: %v", set[:n], err)
			}
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	l := Default().Compute(nil)
	if !l.Empty() || l.Width != 0 || l.Height != 0 {
		t.Errorf("empty layout = %+v", l)
	}
	if l.Plan().Kind != PlanEmpty {
		t.Errorf("Plan().Kind = %v, want empty", l.Plan().Kind)
	}
}

func TestComputeInvalidRatios(t *testing.T) {
	e := Default()
	bad := []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)}
	for n := 1; n <= 10; n++ {
		ratios := make([]float64, n)
		for i := range ratios {
			ratios[i] = bad[i%len(bad)]
		}
		l := e.Compute(items(ratios...))
		if err := e.Params().Verify(l); err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		for _, pos := range l.Positions() {
			if math.IsNaN(pos.PH) || math.IsInf(pos.PH, 0) || pos.PW <= 0 {
				t.Fatalf("n=%d: invalid position %+v", n, pos)
			}
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	e := Default()
	in := items(1.5, 0.66, 1, 2.5, 0.75, 1.33, 0.56)
	a := e.Compute(in)
	b := e.Compute(in)
	if !a.Equal(b) {
		t.Fatal("Compute should be idempotent")
	}
	if !reflect.DeepEqual(a.Positions(), b.Positions()) {
		t.Fatal("positions differ between identical runs")
	}
}

func TestLayoutIsSnapshot(t *testing.T) {
	l := Default().Compute(items(0.6, 1, 1))

	ps := l.Positions()
	ps[0].PW = 1
	ps[0].SiblingHeights[0] = 42

	pos, _ := l.Position("a")
	if pos.PW == 1 || pos.SiblingHeights[0] == 42 {
		t.Error("mutating returned positions changed the layout")
	}

	pos.SiblingHeights[1] = 42
	again, _ := l.Position("a")
	if again.SiblingHeights[1] == 42 {
		t.Error("mutating a returned position changed the layout")
	}
}

func TestSingle(t *testing.T) {
	tests := []struct {
		ratio  float64
		wantPH float64
	}{
		{2, 0.5},
		{1, 1},
		{0.5, 1},   // capped at the max height
		{100, 0.12}, // floored at the min tile height
	}
	for _, tt := range tests {
		l := Default().Compute(items(tt.ratio))
		pos, _ := l.Position("a")
		if pos.PW != 1000 || pos.PH != tt.wantPH || pos.Flags != FlagAll {
			t.Errorf("ratio %v: got %+v, want pw=1000 ph=%v flags=TBLR", tt.ratio, pos, tt.wantPH)
		}
		if pos.SpanSize != 1200 {
			t.Errorf("SpanSize = %d, want 1200", pos.SpanSize)
		}
	}
}

func TestPairStacked(t *testing.T) {
	l := Default().Compute(items(1.5, 1.5))
	if got := l.Plan().Rule; got != RulePairStacked {
		t.Fatalf("rule = %v, want %v", got, RulePairStacked)
	}
	a, _ := l.Position("a")
	b, _ := l.Position("b")
	if a.PW != 1000 || b.PW != 1000 {
		t.Errorf("widths = %d, %d, want full width", a.PW, b.PW)
	}
	if a.PH != b.PH || a.PH != 0.5 {
		t.Errorf("heights = %v, %v, want 0.5 each", a.PH, b.PH)
	}
	if a.MinY != 0 || b.MinY != 1 {
		t.Errorf("rows = %d, %d, want 0, 1", a.MinY, b.MinY)
	}
	if l.Height != 1 {
		t.Errorf("Height = %v, want 1", l.Height)
	}
}

func TestPairRules(t *testing.T) {
	tests := []struct {
		name   string
		ratios []float64
		rule   Rule
		widths []int
	}{
		{"two squares", []float64{1, 1.1}, RulePairColumns, []int{500, 500}},
		{"two narrow", []float64{0.5, 0.7}, RulePairColumns, []int{500, 500}},
		{"wide but not flat enough", []float64{1.3, 1.3}, RulePairColumns, []int{500, 500}},
		{"mixed", []float64{0.5, 1.5}, RulePairWeighted, []int{250, 750}},
		{"mixed floor", []float64{1.5, 0.5}, RulePairWeighted, []int{600, 400}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Default().Compute(items(tt.ratios...))
			if got := l.Plan().Rule; got != tt.rule {
				t.Fatalf("rule = %v, want %v", got, tt.rule)
			}
			var widths []int
			for _, p := range l.Positions() {
				widths = append(widths, p.PW)
			}
			if !slices.Equal(widths, tt.widths) {
				t.Errorf("widths = %v, want %v", widths, tt.widths)
			}
		})
	}
}

func TestTrioLeftColumn(t *testing.T) {
	l := Default().Compute(items(0.6, 1, 1))
	if got := l.Plan().Rule; got != RuleTrioLeftColumn {
		t.Fatalf("rule = %v, want %v", got, RuleTrioLeftColumn)
	}

	a, _ := l.Position("a")
	b, _ := l.Position("b")
	c, _ := l.Position("c")

	if a.MinY != 0 || a.MaxY != 1 || a.MinX != 0 || a.MaxX != 0 {
		t.Errorf("a should span the full-height left column: %+v", a)
	}
	if b.PH != c.PH {
		t.Errorf("right column heights = %v, %v, want equal", b.PH, c.PH)
	}
	if b.MinX != 1 || c.MinX != 1 || b.MinY != 0 || c.MinY != 1 {
		t.Errorf("b and c should stack on the right: %+v %+v", b, c)
	}
	if !slices.Equal(a.SiblingHeights, []float64{b.PH, c.PH}) {
		t.Errorf("SiblingHeights = %v, want [%v %v]", a.SiblingHeights, b.PH, c.PH)
	}
	if a.PW+b.PW != 1000 {
		t.Errorf("row width = %d, want 1000", a.PW+b.PW)
	}
}

func TestRuleSelection(t *testing.T) {
	tests := []struct {
		ratios []float64
		kind   PlanKind
		rule   Rule
	}{
		{[]float64{1, 1, 1}, PlanRule, RuleTrioTopRow},
		{[]float64{1.5, 0.6, 0.6}, PlanRule, RuleTrioTopRow},
		{[]float64{1.5, 1, 1, 1}, PlanRule, RuleQuadTopRow},
		{[]float64{0.7, 1, 1, 1}, PlanRule, RuleQuadLeftColumn},
		{[]float64{1, 1, 1, 1}, PlanRule, RuleQuadLeftColumn},
		{[]float64{2.5, 1, 1}, PlanSearch, RuleNone},
		{[]float64{2.01, 1.5}, PlanSearch, RuleNone},
		{[]float64{1, 1, 1, 1, 1}, PlanSearch, RuleNone},
	}
	for _, tt := range tests {
		plan := Default().Plan(items(tt.ratios...))
		if plan.Kind != tt.kind || plan.Rule != tt.rule {
			t.Errorf("%v: got %s, want %v/%v", tt.ratios, plan, tt.kind, tt.rule)
		}
	}
}

func TestSearchFiveSquares(t *testing.T) {
	l := Default().Compute(items(1, 1, 1, 1, 1))
	plan := l.Plan()

	if !slices.Equal(plan.Lines, []int{2, 3}) {
		t.Fatalf("Lines = %v, want [2 3]", plan.Lines)
	}
	if plan.Candidates != 12 {
		t.Errorf("Candidates = %d, want 12", plan.Candidates)
	}

	var bottom []int
	for _, p := range l.Positions() {
		if p.MinY == 1 {
			bottom = append(bottom, p.PW)
		}
	}
	if !slices.Equal(bottom, []int{333, 333, 334}) {
		t.Errorf("bottom widths = %v, want [333 333 334]", bottom)
	}

	b, _ := l.Position("b")
	if b.MinX != 1 || b.MaxX != 2 {
		t.Errorf("last tile of a short line should span to the last column: %+v", b)
	}
}

// The chosen compositions below depend on the tuned penalties and
// thresholds in DefaultParams.
func TestSearchChoices(t *testing.T) {
	tests := []struct {
		name   string
		ratios []float64
		lines  []int
	}{
		{"ten squares", []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, []int{2, 2, 3, 3}},
		{"forced pair", []float64{2.5, 2.5}, []int{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Default().Plan(items(tt.ratios...))
			if !slices.Equal(plan.Lines, tt.lines) {
				t.Errorf("Lines = %v, want %v (score %.1f)", plan.Lines, tt.lines, plan.Score)
			}
		})
	}
}

func TestSingleIgnoresForcedSearch(t *testing.T) {
	plan := Default().Plan(items(5))
	if plan.Kind != PlanSingle {
		t.Errorf("Kind = %v, want single", plan.Kind)
	}
}

func TestAnchorSpan(t *testing.T) {
	l := Default().Compute(items(1, 1, 1, 1, 1, 1, 1))
	for _, p := range l.Positions() {
		want := p.PW
		if p.MinX == 0 {
			want += 200
		}
		if p.SpanSize != want {
			t.Errorf("%s: SpanSize = %d, want %d", p.ID, p.SpanSize, want)
		}
	}
}

func TestCustomParams(t *testing.T) {
	p := DefaultParams()
	p.WidthUnit = 800
	p.MaxHeight = 814
	e := New(p)

	for n := 1; n <= 10; n++ {
		l := e.Compute(items(randomRatios(rand.New(rand.NewPCG(uint64(n), 3)), n)...))
		if err := p.Verify(l); err != nil {
			t.Errorf("n=%d: %v", n, err)
		}
	}
}
