// Package grid computes collage layouts for small groups of media items.
//
// # Overview
//
// Given an ordered list of [media.Item] values (at most ten in practice),
// [Engine.Compute] returns a [Layout]: one [Position] per item describing the
// grid cells it occupies, its width in logical units, its height as a
// fraction of the maximum group height, and edge [Flags] telling a renderer
// which corners touch the outside of the block.
//
// # Units
//
// Widths are integers in a fixed logical unit system ([Params.WidthUnit],
// 1000 by default). Every grid row sums exactly to WidthUnit; rounding
// leftovers are added to the last tile of a line. Heights are fractions of
// [Params.MaxHeight] and may exceed 1 for tall groups.
//
// # Planning
//
// Layout happens in two steps. [Engine.Plan] classifies the items (see
// [media.Thresholds.Summarize]) and picks a [Plan]:
//
//   - One item: a single full-width tile.
//   - Two to four items without extreme ratios: a closed-form [Rule].
//   - Everything else: a brute-force search over line compositions. Each
//     candidate splits the items, in order, into 1-4 lines of 1-3 items and
//     is scored against a target height of WidthUnit * 4/3. Unbalanced and
//     thin candidates are penalised. The lowest score wins and ties keep the
//     first candidate found.
//
// [Engine.Compute] then assigns positions for the plan.
//
// # Tuning
//
// Every empirically tuned constant lives in [Params]. [DefaultParams]
// returns the shipped values; the config package loads overrides from TOML.
// Tests that pin scores or chosen compositions depend on these values.
//
// # Example
//
//	e := grid.New(grid.DefaultParams())
//	l := e.Compute([]media.Item{
//	    media.New("a", 1.5),
//	    media.New("b", 0.75),
//	})
//	for _, p := range l.Positions() {
//	    fmt.Println(p.ID, p.PW, p.PH, p.Flags)
//	}
package grid
