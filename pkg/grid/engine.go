package grid

import (
	"github.com/matzehuels/albumgrid/pkg/media"
)

// Engine computes layouts with a fixed set of [Params].
// An Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	params Params
}

// New returns an engine for params. Params are not validated here; use
// [Params.Validate] on values loaded from user configuration.
func New(params Params) *Engine {
	return &Engine{params: params}
}

// Default returns an engine with [DefaultParams].
func Default() *Engine {
	return New(DefaultParams())
}

// Params returns the engine's parameters.
func (e *Engine) Params() Params { return e.params }

// Plan decides how items will be laid out without assigning positions.
func (e *Engine) Plan(items []media.Item) Plan {
	p := e.params
	stats := p.Thresholds().Summarize(items)

	switch n := len(items); {
	case n == 0:
		return Plan{Kind: PlanEmpty, Stats: stats}
	case n == 1:
		return Plan{Kind: PlanSingle, Stats: stats}
	}

	if rule := p.pickRule(stats); rule != RuleNone {
		return Plan{Kind: PlanRule, Rule: rule, Stats: stats}
	}

	plan := p.search(stats.Ratios, stats.Average)
	plan.Stats = stats
	return plan
}

// Compute lays out items. Identical input always yields an identical
// layout; zero items yield an empty layout.
func (e *Engine) Compute(items []media.Item) Layout {
	return e.Realize(e.Plan(items), items)
}

// Realize assigns positions for a plan previously returned by [Engine.Plan]
// for the same items.
func (e *Engine) Realize(plan Plan, items []media.Item) Layout {
	p := e.params

	var tiles []tile
	switch plan.Kind {
	case PlanEmpty:
		return newLayout(0, 0, plan, nil)
	case PlanSingle:
		tiles = p.single(items[0].Ratio())
	case PlanRule:
		tiles = p.applyRule(plan.Rule, media.Ratios(items))
	case PlanSearch:
		tiles = p.searchTiles(plan)
	}

	positions, width, height := p.finalize(media.IDs(items), tiles)
	return newLayout(width, height, plan.clone(), positions)
}
