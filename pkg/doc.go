// Package pkg provides the core libraries for albumgrid collage layouts.
//
// # Overview
//
// Albumgrid turns an ordered list of photos and videos into compact collage
// blocks of at most ten items each. The pkg directory is organized into
// three areas:
//
//  1. Domain logic: [media], [grid], [album]
//  2. Infrastructure: [cache], [config], [errors], [observability]
//  3. Orchestration and I/O: [pipeline], [io]
//
// # Architecture
//
// The typical data flow:
//
//	Item file (JSON, YAML, TOML)
//	         ↓
//	    [io] package (decode items, apply crop overrides)
//	         ↓
//	    [album] package (pack items into groups of at most ten)
//	         ↓
//	    [grid] package (classify, pick a rule or search, assign positions)
//	         ↓
//	    Layout JSON / terminal preview / HTTP response
//
// # Quick Start
//
// Lay out one group:
//
//	import (
//	    "github.com/matzehuels/albumgrid/pkg/grid"
//	    "github.com/matzehuels/albumgrid/pkg/media"
//	)
//
//	l := grid.Default().Compute([]media.Item{
//	    media.New("beach", 1.5),
//	    media.New("portrait", 0.75),
//	    media.New("dog", 1),
//	})
//	for _, p := range l.Positions() {
//	    fmt.Println(p.ID, p.PW, p.PH, p.Flags)
//	}
//
// Keep groups packed while the user edits the selection:
//
//	p, _ := album.FromItems(items)
//	changed, _ := p.Remove("dog")           // groups to re-render
//	changed, _ = p.Reorder("beach", 1, 0)   // move across a group boundary
//	for _, i := range changed {
//	    g, _ := p.Group(i)
//	    animate(g.Previous, g.Layout)
//	}
//
// # Main Packages
//
// [media] - Items, crop overrides and the aspect classifier (wide, narrow,
// square; group average; forced search for extreme ratios).
//
// [grid] - The layout engine. Closed-form rules for one to four items, a
// scored search over line compositions for larger groups, and position
// assignment with exact row widths and edge flags. Layouts are immutable
// snapshots that serialize to JSON.
//
// [album] - The group partitioner. Append, Remove, Reorder and Move keep
// every group but the last full and report which groups changed.
//
// [pipeline] - Item list → groups → layouts with caching, shared by the CLI
// and the HTTP server.
//
// [cache] - Cache interface with file, memory, Redis and null backends.
//
// [config] - TOML configuration with .env loading and variable expansion.
//
// [io] - Item file decoding and layout document encoding.
//
// [observability] - Hooks for layout, partition, cache and server events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/grid/...      # Specific package
//	go test -run Example        # Examples only
//
// [media]: https://pkg.go.dev/github.com/matzehuels/albumgrid/pkg/media
// [grid]: https://pkg.go.dev/github.com/matzehuels/albumgrid/pkg/grid
// [album]: https://pkg.go.dev/github.com/matzehuels/albumgrid/pkg/album
// [cache]: https://pkg.go.dev/github.com/matzehuels/albumgrid/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/albumgrid/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/albumgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/albumgrid/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/albumgrid/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/albumgrid/pkg/io
package pkg
