package media

import (
	"fmt"
	"strings"
)

// Category buckets an aspect ratio.
type Category byte

const (
	Square Category = 'q'
	Wide   Category = 'w'
	Narrow Category = 'n'
)

func (c Category) String() string {
	switch c {
	case Wide:
		return "wide"
	case Narrow:
		return "narrow"
	default:
		return "square"
	}
}

// MarshalText encodes c by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (c *Category) UnmarshalText(b []byte) error {
	switch string(b) {
	case "wide":
		*c = Wide
	case "narrow":
		*c = Narrow
	case "square":
		*c = Square
	default:
		return fmt.Errorf("unknown aspect category %q", b)
	}
	return nil
}

// Thresholds drive classification. The zero value is not useful; start from
// [DefaultThresholds].
type Thresholds struct {
	Wide    float64 // r > Wide is wide
	Narrow  float64 // r < Narrow is narrow
	Extreme float64 // any r > Extreme forces the general search
}

// DefaultThresholds returns the tuned classification thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Wide: 1.2, Narrow: 0.8, Extreme: 2.0}
}

// Classify buckets r with the default thresholds.
func Classify(r float64) Category {
	return DefaultThresholds().Classify(r)
}

// Classify buckets r.
func (t Thresholds) Classify(r float64) Category {
	switch {
	case r > t.Wide:
		return Wide
	case r < t.Narrow:
		return Narrow
	default:
		return Square
	}
}

// Stats summarises a group for rule selection.
type Stats struct {
	Ratios          []float64  `json:"ratios,omitempty"`
	Categories      []Category `json:"categories,omitempty"`
	Average         float64    `json:"average,omitempty"`
	ForceFullSearch bool       `json:"force_full_search,omitempty"`
}

// Proportions renders the categories as a compact string such as "wnq".
func (s Stats) Proportions() string {
	var b strings.Builder
	for _, c := range s.Categories {
		b.WriteByte(byte(c))
	}
	return b.String()
}

// AllSame reports whether every item shares one category.
func (s Stats) AllSame() bool {
	for _, c := range s.Categories {
		if c != s.Categories[0] {
			return false
		}
	}
	return true
}

// Summarize classifies every item of a group and computes the average ratio.
// An empty group has a zero average.
func (t Thresholds) Summarize(items []Item) Stats {
	if len(items) == 0 {
		return Stats{}
	}
	s := Stats{
		Ratios:     make([]float64, len(items)),
		Categories: make([]Category, len(items)),
	}
	var sum float64
	for i, it := range items {
		r := it.Ratio()
		s.Ratios[i] = r
		s.Categories[i] = t.Classify(r)
		sum += r
		if r > t.Extreme {
			s.ForceFullSearch = true
		}
	}
	s.Average = sum / float64(len(items))
	return s
}

// Summarize summarises items with the default thresholds.
func Summarize(items []Item) Stats {
	return DefaultThresholds().Summarize(items)
}
