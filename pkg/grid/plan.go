package grid

import (
	"fmt"
	"slices"

	"github.com/matzehuels/albumgrid/pkg/media"
)

// PlanKind discriminates [Plan].
type PlanKind int

const (
	PlanEmpty PlanKind = iota
	PlanSingle
	PlanRule
	PlanSearch
)

func (k PlanKind) String() string {
	switch k {
	case PlanSingle:
		return "single"
	case PlanRule:
		return "rule"
	case PlanSearch:
		return "search"
	default:
		return "empty"
	}
}

// Rule names a closed-form layout for two to four items.
type Rule int

const (
	RuleNone Rule = iota
	RulePairStacked
	RulePairColumns
	RulePairWeighted
	RuleTrioLeftColumn
	RuleTrioTopRow
	RuleQuadTopRow
	RuleQuadLeftColumn
)

var ruleNames = map[Rule]string{
	RuleNone:           "none",
	RulePairStacked:    "pair-stacked",
	RulePairColumns:    "pair-columns",
	RulePairWeighted:   "pair-weighted",
	RuleTrioLeftColumn: "trio-left-column",
	RuleTrioTopRow:     "trio-top-row",
	RuleQuadTopRow:     "quad-top-row",
	RuleQuadLeftColumn: "quad-left-column",
}

func (r Rule) String() string {
	if s, ok := ruleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("rule(%d)", int(r))
}

// Plan is the decision taken for a group before positions are assigned.
//
// Only the fields of the active Kind are set:
//
//	PlanEmpty:  nothing
//	PlanSingle: Stats
//	PlanRule:   Rule, Stats
//	PlanSearch: Lines, Heights, Cropped, Score, Candidates, Stats
type Plan struct {
	Kind PlanKind `json:"kind"`
	Rule Rule     `json:"rule,omitempty"`

	// Lines holds the item count of each line, top to bottom.
	Lines []int `json:"lines,omitempty"`
	// Heights holds each line's height in logical units.
	Heights []float64 `json:"heights,omitempty"`
	// Cropped holds the per-item ratios used for scoring and widths.
	Cropped []float64 `json:"cropped,omitempty"`
	// Score is the penalised distance from the target height.
	Score float64 `json:"score,omitempty"`
	// Candidates is the number of compositions that were scored.
	Candidates int `json:"candidates,omitempty"`

	// Stats is the classification the decision was based on. It survives
	// a JSON round trip, so cached layouts report it too.
	Stats media.Stats `json:"stats,omitzero"`
}

// String summarises the plan for logs and the CLI.
func (p Plan) String() string {
	switch p.Kind {
	case PlanRule:
		return "rule " + p.Rule.String()
	case PlanSearch:
		return fmt.Sprintf("search %v (score %.1f of %d)", p.Lines, p.Score, p.Candidates)
	default:
		return p.Kind.String()
	}
}

func (p Plan) clone() Plan {
	p.Lines = slices.Clone(p.Lines)
	p.Heights = slices.Clone(p.Heights)
	p.Cropped = slices.Clone(p.Cropped)
	p.Stats.Ratios = slices.Clone(p.Stats.Ratios)
	p.Stats.Categories = slices.Clone(p.Stats.Categories)
	return p
}
