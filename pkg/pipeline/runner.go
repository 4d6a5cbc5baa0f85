package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/albumgrid/pkg/album"
	"github.com/matzehuels/albumgrid/pkg/cache"
	"github.com/matzehuels/albumgrid/pkg/errors"
	"github.com/matzehuels/albumgrid/pkg/grid"
	"github.com/matzehuels/albumgrid/pkg/media"
	"github.com/matzehuels/albumgrid/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute partitions items into groups and lays out every group.
func (r *Runner) Execute(ctx context.Context, items []media.Item, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	if err := validateItems(items); err != nil {
		return nil, err
	}

	start := time.Now()
	paramsHash, err := cache.HashJSON(opts.Params)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.GroupsKey(cache.GroupsKeyOpts{
		IDs:          media.IDs(items),
		Ratios:       media.Ratios(items),
		Params:       paramsHash,
		MaxGroupSize: opts.MaxGroupSize,
	})
	result := &Result{Hash: cache.Hash([]byte(key))}

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var groups []album.Group
			if err := json.Unmarshal(data, &groups); err == nil {
				observability.Cache().OnCacheHit(ctx, "groups")
				result.Groups = groups
				result.CacheInfo.GroupsHit = true
				result.Stats = summarize(groups, time.Since(start))
				opts.Logger.Debug("groups served from cache", "groups", len(groups))
				return result, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "groups")
	}

	l := r.layouter(ctx, opts, paramsHash)
	p, err := album.FromItems(items,
		album.WithLayouter(l),
		album.WithMaxGroupSize(opts.MaxGroupSize),
		album.WithLogger(opts.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}

	result.Groups = p.Groups()
	result.Stats = summarize(result.Groups, time.Since(start))
	result.CacheInfo.LayoutHits = l.hits
	result.CacheInfo.LayoutMisses = l.misses

	opts.Logger.Info("computed groups",
		"items", result.Stats.ItemCount,
		"groups", result.Stats.GroupCount,
		"cached", l.hits,
		"duration", result.Stats.LayoutTime)

	// Cache the result
	if data, err := json.Marshal(result.Groups); err == nil {
		r.store(ctx, opts, "groups", key, data)
	}
	return result, nil
}

// Layout lays out items as a single group. It reports whether the layout
// came from the cache.
func (r *Runner) Layout(ctx context.Context, items []media.Item, opts Options) (grid.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return grid.Layout{}, false, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	if err := validateItems(items); err != nil {
		return grid.Layout{}, false, err
	}
	if len(items) > opts.MaxGroupSize {
		return grid.Layout{}, false, errors.New(errors.ErrCodeInvalidInput,
			"a group holds at most %d items, got %d", opts.MaxGroupSize, len(items))
	}

	paramsHash, err := cache.HashJSON(opts.Params)
	if err != nil {
		return grid.Layout{}, false, err
	}
	l := r.layouter(ctx, opts, paramsHash)
	layout := l.Compute(items)
	return layout, l.hits > 0, nil
}

// Partitioner returns a partitioner over items whose layouts go through the
// runner's cache. ctx bounds the cache calls for the partitioner's lifetime.
func (r *Runner) Partitioner(ctx context.Context, items []media.Item, opts Options) (*album.Partitioner, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	paramsHash, err := cache.HashJSON(opts.Params)
	if err != nil {
		return nil, err
	}
	return album.FromItems(items,
		album.WithLayouter(r.layouter(ctx, opts, paramsHash)),
		album.WithMaxGroupSize(opts.MaxGroupSize),
		album.WithLogger(opts.Logger),
	)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) layouter(ctx context.Context, opts Options, paramsHash string) *cachedLayouter {
	return &cachedLayouter{
		ctx:    ctx,
		runner: r,
		opts:   opts,
		engine: grid.New(opts.Params),
		params: paramsHash,
	}
}

// store writes data to the cache. Write failures only cost a recompute, so
// they are logged rather than returned.
func (r *Runner) store(ctx context.Context, opts Options, keyType, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
		opts.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// cachedLayouter adapts the engine to album.Layouter, reading and writing
// per-group layouts through the runner's cache.
type cachedLayouter struct {
	ctx    context.Context
	runner *Runner
	opts   Options
	engine *grid.Engine
	params string

	hits, misses int
}

func (l *cachedLayouter) Compute(items []media.Item) grid.Layout {
	ctx, r := l.ctx, l.runner
	key := r.Keyer.LayoutKey(cache.LayoutKeyOpts{
		IDs:    media.IDs(items),
		Ratios: media.Ratios(items),
		Params: l.params,
	})

	if !l.opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached grid.Layout
			if err := json.Unmarshal(data, &cached); err == nil && cached.Len() == len(items) {
				observability.Cache().OnCacheHit(ctx, "layout")
				l.hits++
				return cached
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, len(items))
	layout := l.engine.Compute(items)
	observability.Layout().OnLayoutComplete(ctx, layout.Plan().String(), time.Since(start), nil)
	l.misses++

	l.opts.Logger.Debug("computed layout",
		"items", len(items),
		"plan", layout.Plan(),
		"height", layout.Height)

	if data, err := json.Marshal(layout); err == nil {
		r.store(ctx, l.opts, "layout", key, data)
	}
	return layout
}

func summarize(groups []album.Group, d time.Duration) Stats {
	s := Stats{
		GroupCount: len(groups),
		LayoutTime: d,
		Plans:      make(map[string]int),
	}
	for _, g := range groups {
		s.ItemCount += g.Len()
		s.Plans[g.Layout.Plan().String()]++
	}
	return s
}

// validateItems rejects items the partitioner and the layout index cannot
// address: missing or repeated ids.
func validateItems(items []media.Item) error {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "item %d has no id", i)
		}
		if _, dup := seen[it.ID]; dup {
			return errors.New(errors.ErrCodeDuplicateItem, "duplicate item %q", it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}
