// Package pipeline runs the item → group → layout pipeline shared by the
// CLI and the HTTP server.
//
// By centralizing this logic, every entry point validates options, derives
// cache keys and reports statistics the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Partition: pack the ordered items into groups of at most MaxGroupSize
//  2. Layout: compute each group's layout, reusing cached layouts
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, items, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, g := range result.Groups {
//	    fmt.Println(g.Index, g.Layout.Plan())
//	}
//
// Lay out a single group:
//
//	layout, err := runner.Layout(ctx, items, opts)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/albumgrid/pkg/album"
	"github.com/matzehuels/albumgrid/pkg/cache"
	"github.com/matzehuels/albumgrid/pkg/errors"
	"github.com/matzehuels/albumgrid/pkg/grid"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	// Params are the engine parameters. The zero value means
	// grid.DefaultParams().
	Params grid.Params `json:"params"`

	// MaxGroupSize caps the items per group. Zero means
	// album.DefaultMaxGroupSize.
	MaxGroupSize int `json:"max_group_size,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// TTL is the lifetime of cached entries. Zero means cache.TTLLayout.
	TTL time.Duration `json:"-"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults fills zero values and validates the parameters.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Params == (grid.Params{}) {
		o.Params = grid.DefaultParams()
	}
	if err := o.Params.Validate(); err != nil {
		return err
	}
	if o.MaxGroupSize == 0 {
		o.MaxGroupSize = album.DefaultMaxGroupSize
	}
	if o.MaxGroupSize < 1 || o.MaxGroupSize > album.DefaultMaxGroupSize {
		return errors.New(errors.ErrCodeInvalidInput, "max_group_size must be within 1..%d, got %d", album.DefaultMaxGroupSize, o.MaxGroupSize)
	}
	if o.TTL == 0 {
		o.TTL = cache.TTLLayout
	}
	o.validated = true
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Groups holds every group with its layout, in order.
	Groups []album.Group `json:"groups"`

	// Hash fingerprints the input items and parameters.
	Hash string `json:"hash"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks how often the cache served a layout.
	CacheInfo CacheInfo `json:"cache"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int            `json:"items"`
	GroupCount int            `json:"groups"`
	LayoutTime time.Duration  `json:"layout_time"`
	Plans      map[string]int `json:"plans"` // plan description → group count
}

// CacheInfo tracks cache hits during a run.
type CacheInfo struct {
	GroupsHit    bool `json:"groups_hit"` // whole result came from cache
	LayoutHits   int  `json:"layout_hits"`
	LayoutMisses int  `json:"layout_misses"`
}
