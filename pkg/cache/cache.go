// Package cache stores computed layouts between runs.
//
// Backends share the [Cache] interface: [FileCache] for the CLI,
// [MemoryCache] for a single server process, [RedisCache] for servers that
// share results, and [NullCache] to disable caching. Keys come from a
// [Keyer] so that every caller derives the same key for the same input.
package cache

import (
	"context"
	"time"
)

// TTLLayout is the default lifetime of cached layouts.
const TTLLayout = 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey is the key of one group's computed layout.
	LayoutKey(opts LayoutKeyOpts) string

	// GroupsKey is the key of a whole partitioned album.
	GroupsKey(opts GroupsKeyOpts) string
}

// LayoutKeyOpts identifies the input of one layout computation.
type LayoutKeyOpts struct {
	IDs    []string  `json:"ids"`
	Ratios []float64 `json:"ratios"`
	// Params is a hash of the engine parameters.
	Params string `json:"params"`
}

// GroupsKeyOpts identifies the input of a partitioning run.
type GroupsKeyOpts struct {
	IDs          []string  `json:"ids"`
	Ratios       []float64 `json:"ratios"`
	Params       string    `json:"params"`
	MaxGroupSize int       `json:"max_group_size"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey("layout", opts)
}

// GroupsKey implements Keyer.
func (DefaultKeyer) GroupsKey(opts GroupsKeyOpts) string {
	return hashKey("groups", opts)
}
