package grid

import (
	"math"

	"github.com/matzehuels/albumgrid/pkg/errors"
)

// Verify checks the structural invariants of a layout computed with p:
//
//   - every grid row sums exactly to WidthUnit
//   - every row has exactly one LEFT and one RIGHT tile
//   - every column has exactly one TOP and one BOTTOM tile
//   - every column sums to the group height within Tolerance
//
// A violation indicates an engine bug and is reported as INTERNAL_ERROR.
func (p Params) Verify(l Layout) error {
	if l.Empty() {
		if l.Width != 0 || l.Height != 0 {
			return errors.New(errors.ErrCodeInternal, "empty layout has size %dx%v", l.Width, l.Height)
		}
		return nil
	}

	rows, cols := l.Rows(), l.Columns()
	for y := 0; y < rows; y++ {
		sum, left, right := 0, 0, 0
		for _, pos := range l.positions {
			if pos.MinY > y || y > pos.MaxY {
				continue
			}
			sum += pos.PW
			if pos.Flags.Has(FlagLeft) {
				left++
			}
			if pos.Flags.Has(FlagRight) {
				right++
			}
		}
		if sum != p.WidthUnit {
			return errors.New(errors.ErrCodeInternal, "row %d sums to %d, want %d", y, sum, p.WidthUnit)
		}
		if left != 1 || right != 1 {
			return errors.New(errors.ErrCodeInternal, "row %d has %d left and %d right tiles", y, left, right)
		}
	}

	for x := 0; x < cols; x++ {
		var sum float64
		top, bottom := 0, 0
		for _, pos := range l.positions {
			if pos.MinX > x || x > pos.MaxX {
				continue
			}
			sum += pos.PH
			if pos.Flags.Has(FlagTop) {
				top++
			}
			if pos.Flags.Has(FlagBottom) {
				bottom++
			}
		}
		if top != 1 || bottom != 1 {
			return errors.New(errors.ErrCodeInternal, "column %d has %d top and %d bottom tiles", x, top, bottom)
		}
		if math.Abs(sum-l.Height) > p.Tolerance {
			return errors.New(errors.ErrCodeInternal, "column %d height %v differs from group height %v", x, sum, l.Height)
		}
	}

	if l.Width != p.WidthUnit {
		return errors.New(errors.ErrCodeInternal, "group width %d, want %d", l.Width, p.WidthUnit)
	}
	return nil
}
