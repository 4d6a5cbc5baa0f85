package grid

import (
	"github.com/matzehuels/albumgrid/pkg/errors"
	"github.com/matzehuels/albumgrid/pkg/media"
)

// Upper bounds for the line limits accepted by [Params.Validate].
const (
	LineCountLimit     = 4
	LineItemsLimit     = 3
	WideLineItemsLimit = 4
)

// Params holds the geometry and the tuned constants of the engine.
// Zero values are not meaningful; start from [DefaultParams].
type Params struct {
	// Geometry in logical units.
	WidthUnit     int `json:"width_unit" toml:"width_unit"`
	MaxHeight     int `json:"max_height" toml:"max_height"`
	AnchorSpan    int `json:"anchor_span" toml:"anchor_span"`
	MinTileWidth  int `json:"min_tile_width" toml:"min_tile_width"`
	MinTileHeight int `json:"min_tile_height" toml:"min_tile_height"`

	// Aspect classification.
	WideThreshold    float64 `json:"wide_threshold" toml:"wide_threshold"`
	NarrowThreshold  float64 `json:"narrow_threshold" toml:"narrow_threshold"`
	ExtremeThreshold float64 `json:"extreme_threshold" toml:"extreme_threshold"`

	// Small-count rules.
	WideStackFactor   float64 `json:"wide_stack_factor" toml:"wide_stack_factor"`
	TwoColumnMinShare float64 `json:"two_column_min_share" toml:"two_column_min_share"`
	TopRowMaxShare    float64 `json:"top_row_max_share" toml:"top_row_max_share"`

	// General search.
	CropMin             float64 `json:"crop_min" toml:"crop_min"`
	CropMax             float64 `json:"crop_max" toml:"crop_max"`
	BiasPivot           float64 `json:"bias_pivot" toml:"bias_pivot"`
	WideMiddleThreshold float64 `json:"wide_middle_threshold" toml:"wide_middle_threshold"`
	UnbalancedPenalty   float64 `json:"unbalanced_penalty" toml:"unbalanced_penalty"`
	ThinLinePenalty     float64 `json:"thin_line_penalty" toml:"thin_line_penalty"`
	TargetHeightRatio   float64 `json:"target_height_ratio" toml:"target_height_ratio"`
	MaxLineItems        int     `json:"max_line_items" toml:"max_line_items"`
	MaxWideLineItems    int     `json:"max_wide_line_items" toml:"max_wide_line_items"`
	MaxLines            int     `json:"max_lines" toml:"max_lines"`

	// Tolerance for comparing aggregate row and column extents.
	Tolerance float64 `json:"tolerance" toml:"tolerance"`
}

// DefaultParams returns the shipped tuning.
func DefaultParams() Params {
	return Params{
		WidthUnit:     1000,
		MaxHeight:     1000,
		AnchorSpan:    200,
		MinTileWidth:  100,
		MinTileHeight: 120,

		WideThreshold:    1.2,
		NarrowThreshold:  0.8,
		ExtremeThreshold: 2.0,

		WideStackFactor:   1.4,
		TwoColumnMinShare: 0.4,
		TopRowMaxShare:    0.66,

		CropMin:             1 / 1.5,
		CropMax:             1.7,
		BiasPivot:           1.1,
		WideMiddleThreshold: 0.85,
		UnbalancedPenalty:   1.2,
		ThinLinePenalty:     1.5,
		TargetHeightRatio:   4.0 / 3.0,
		MaxLineItems:        3,
		MaxWideLineItems:    4,
		MaxLines:            4,

		Tolerance: 1e-6,
	}
}

// Thresholds returns the classification thresholds carried by p.
func (p Params) Thresholds() media.Thresholds {
	return media.Thresholds{
		Wide:    p.WideThreshold,
		Narrow:  p.NarrowThreshold,
		Extreme: p.ExtremeThreshold,
	}
}

// CanvasRatio is the aspect ratio of the reference canvas.
func (p Params) CanvasRatio() float64 {
	return float64(p.WidthUnit) / float64(p.MaxHeight)
}

// TargetHeight is the summed line height the search aims for.
func (p Params) TargetHeight() float64 {
	return float64(p.WidthUnit) * p.TargetHeightRatio
}

// Validate reports the first inconsistent value.
func (p Params) Validate() error {
	switch {
	case p.WidthUnit <= 0 || p.MaxHeight <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "width_unit and max_height must be positive")
	case p.MinTileWidth <= 0 || p.MinTileHeight <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "min_tile_width and min_tile_height must be positive")
	case p.AnchorSpan < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "anchor_span must not be negative")
	case p.WidthUnit < 3*p.MinTileWidth:
		return errors.New(errors.ErrCodeInvalidConfig, "width_unit %d cannot hold three tiles of %d", p.WidthUnit, p.MinTileWidth)
	case p.MaxHeight < 3*p.MinTileHeight:
		return errors.New(errors.ErrCodeInvalidConfig, "max_height %d cannot hold three tiles of %d", p.MaxHeight, p.MinTileHeight)
	case p.NarrowThreshold <= 0 || p.NarrowThreshold > p.WideThreshold:
		return errors.New(errors.ErrCodeInvalidConfig, "narrow_threshold must be positive and not above wide_threshold")
	case p.ExtremeThreshold < p.WideThreshold:
		return errors.New(errors.ErrCodeInvalidConfig, "extreme_threshold must not be below wide_threshold")
	case p.CropMin <= 0 || p.CropMin > 1 || p.CropMax < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "crop bounds must satisfy 0 < crop_min <= 1 <= crop_max")
	case p.UnbalancedPenalty < 1 || p.ThinLinePenalty < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "penalties must be at least 1")
	case p.TwoColumnMinShare < 0 || p.TwoColumnMinShare > 0.5:
		return errors.New(errors.ErrCodeInvalidConfig, "two_column_min_share must be within [0, 0.5]")
	case p.TopRowMaxShare <= 0 || p.TopRowMaxShare >= 1:
		return errors.New(errors.ErrCodeInvalidConfig, "top_row_max_share must be within (0, 1)")
	case p.TargetHeightRatio <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "target_height_ratio must be positive")
	case p.MaxLineItems < 1 || p.MaxWideLineItems < p.MaxLineItems || p.MaxLines < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "line limits must be positive and max_wide_line_items >= max_line_items")
	case p.MaxLines > LineCountLimit || p.MaxLineItems > LineItemsLimit || p.MaxWideLineItems > WideLineItemsLimit:
		return errors.New(errors.ErrCodeInvalidConfig, "line limits exceed max_lines %d, max_line_items %d, max_wide_line_items %d",
			LineCountLimit, LineItemsLimit, WideLineItemsLimit)
	case p.Tolerance < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "tolerance must not be negative")
	}
	return nil
}
