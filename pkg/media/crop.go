package media

// Crop is a crop override in normalised coordinates of the original frame:
// (0,0) is the top-left corner and (1,1) the bottom-right one.
// Orientation is the clockwise rotation in degrees applied after cropping.
type Crop struct {
	Left        float64 `json:"left" yaml:"left" toml:"left"`
	Top         float64 `json:"top" yaml:"top" toml:"top"`
	Right       float64 `json:"right" yaml:"right" toml:"right"`
	Bottom      float64 `json:"bottom" yaml:"bottom" toml:"bottom"`
	Orientation int     `json:"orientation,omitempty" yaml:"orientation,omitempty" toml:"orientation,omitempty"`
}

// Valid reports whether the crop rectangle has a positive area inside the
// unit square.
func (c Crop) Valid() bool {
	return c.Left >= 0 && c.Top >= 0 &&
		c.Right <= 1 && c.Bottom <= 1 &&
		c.Right > c.Left && c.Bottom > c.Top
}

// Rotated reports whether the orientation swaps width and height.
func (c Crop) Rotated() bool {
	o := ((c.Orientation % 360) + 360) % 360
	return o == 90 || o == 270
}

// Apply returns the ratio of the cropped frame. A degenerate rectangle is
// ignored, but the rotation still applies.
func (c Crop) Apply(ratio float64) float64 {
	if c.Valid() {
		ratio = ratio * (c.Right - c.Left) / (c.Bottom - c.Top)
	}
	if c.Rotated() && ratio != 0 {
		ratio = 1 / ratio
	}
	return ratio
}
