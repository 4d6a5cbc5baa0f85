// Package media describes the items an album is built from.
//
// An [Item] is a numeric descriptor: an identifier, the aspect ratio of the
// underlying photo or video (width / height) and an optional [Crop] that the
// user applied in an editor. Nothing here decodes images; callers supply the
// ratio or the pixel size.
//
// The package also hosts the aspect classifier used by the layout engine.
// [Classify] buckets a single ratio into [Wide], [Narrow] or [Square], and
// [Summarize] produces the group-level [Stats] (categories, average ratio and
// the forceFullSearch flag).
package media

import (
	"math"

	"github.com/google/uuid"
)

// Epsilon replaces aspect ratios that are non-positive or non-finite.
// Layout math divides by ratios and their sums, so a ratio must never be zero.
const Epsilon = 0.01

// Item is one selected photo or video.
type Item struct {
	ID          string  `json:"id" yaml:"id" toml:"id"`
	AspectRatio float64 `json:"aspect_ratio" yaml:"aspect_ratio" toml:"aspect_ratio"`
	Crop        *Crop   `json:"crop,omitempty" yaml:"crop,omitempty" toml:"crop,omitempty"`
}

// New returns an item with the given id and ratio. An empty id is replaced
// by a random UUID.
func New(id string, ratio float64) Item {
	if id == "" {
		id = uuid.NewString()
	}
	return Item{ID: id, AspectRatio: ratio}
}

// FromSize returns an item whose ratio is derived from a pixel size.
// A zero height yields a non-finite ratio, which [Item.Ratio] sanitises.
func FromSize(id string, width, height int) Item {
	return New(id, float64(width)/float64(height))
}

// WithCrop returns a copy of it carrying the crop override c.
func (it Item) WithCrop(c Crop) Item {
	it.Crop = &c
	return it
}

// Ratio returns the effective aspect ratio used for layout: the crop
// override is applied first and the result is sanitised.
func (it Item) Ratio() float64 {
	r := it.AspectRatio
	if it.Crop != nil {
		r = it.Crop.Apply(r)
	}
	return Sanitize(r)
}

// Category returns the classification of the effective ratio.
func (it Item) Category() Category {
	return Classify(it.Ratio())
}

// Clone returns a deep copy of it.
func (it Item) Clone() Item {
	if it.Crop != nil {
		c := *it.Crop
		it.Crop = &c
	}
	return it
}

// Sanitize clamps a ratio that is non-positive, NaN or infinite to [Epsilon].
func Sanitize(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return Epsilon
	}
	if r < Epsilon {
		return Epsilon
	}
	return r
}

// Ratios returns the effective ratios of items in order.
func Ratios(items []Item) []float64 {
	out := make([]float64, len(items))
	for i, it := range items {
		out[i] = it.Ratio()
	}
	return out
}

// IDs returns the identifiers of items in order.
func IDs(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
