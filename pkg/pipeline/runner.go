package pipeline

import (
	"context"
	"encoding/json"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/collagely/collagely/pkg/cache"
	"github.com/collagely/collagely/pkg/observability"
	"github.com/collagely/collagely/pkg/xerrors"
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

// Execute runs the complete resolve → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.Stats.PhotoCount = opts.SlotCount()

	// Stage 1: Resolve photos
	resolveStart := time.Now()
	photos, imageHits, err := r.resolvePhotos(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.CacheInfo.ImageHits = imageHits

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.SolveLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	if data, err := MarshalLayout(l); err == nil {
		result.LayoutHash = cache.Hash(data)
	}

	r.Logger.Info("solved layout",
		"mode", l.Mode,
		"slots", l.SlotCount(),
		"degraded", l.Degraded(),
		"duration", result.Stats.LayoutTime)
	for _, w := range l.Warnings() {
		r.Logger.Warn(w)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, photos, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// resolvePhotos loads the configured photos in slot order. Layout-only
// and placeholder runs return no photos.
func (r *Runner) resolvePhotos(ctx context.Context, opts Options) ([]image.Image, int, error) {
	if len(opts.Photos) == 0 {
		return nil, 0, nil
	}

	start := time.Now()
	observability.Pipeline().OnResolveStart(ctx, len(opts.Photos))

	resolver, remote := r.newResolver(opts)
	photos, err := resolver.Resolve(ctx, orderedRefs(opts))

	duration := time.Since(start)
	observability.Pipeline().OnResolveComplete(ctx, len(opts.Photos), duration, err)
	if err != nil {
		return nil, 0, err
	}

	r.Logger.Info("resolved photos",
		"count", len(photos),
		"cached", remote.hits.Load(),
		"duration", duration)
	return photos, int(remote.hits.Load()), nil
}

// SolveLayoutWithCacheInfo solves the layout with caching and returns
// cache hit info.
func (r *Runner) SolveLayoutWithCacheInfo(ctx context.Context, opts Options) (Layout, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	pageWidth, pageHeight, err := opts.PageSize()
	if err != nil {
		return Layout{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(opts.LayoutKeyOpts(pageWidth, pageHeight))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Malformed cached entries fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Mode, opts.SlotCount())
	l, err := Solve(opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Mode, time.Since(start), err)
	if err != nil {
		return Layout{}, false, err
	}

	if data, err := MarshalLayout(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultLayoutTTL)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return l, false, nil
}

// SolveLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) SolveLayout(ctx context.Context, opts Options) (Layout, error) {
	l, _, err := r.SolveLayoutWithCacheInfo(ctx, opts)
	return l, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache
// hit info. Artifacts are only cacheable when the photo set is known by
// reference, so placeholder-only runs always render.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l Layout, photos []image.Image, opts Options) (map[string][]byte, bool, error) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	r.applyLogger(&opts)

	layoutData, err := MarshalLayout(l)
	if err != nil {
		return nil, false, xerrors.Wrap(err, xerrors.ErrCodeInternal, "serializing layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)
	photosHash := r.photosHash(opts)

	// Try to get all formats from cache.
	cacheable := photosHash != "" && !opts.Refresh
	if cacheable {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, photosHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				artifacts = nil
				break
			}
			artifacts[format] = data
		}
		if artifacts != nil {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	start := time.Now()
	for _, format := range opts.Formats {
		observability.Pipeline().OnRenderStart(ctx, format)
	}
	rendered, err := RenderFromLayout(l, photos, opts)
	for _, format := range opts.Formats {
		observability.Pipeline().OnRenderComplete(ctx, format, time.Since(start), err)
	}
	if err != nil {
		return nil, false, err
	}

	if photosHash != "" {
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(layoutHash, photosHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, key, data, cache.DefaultArtifactTTL)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l Layout, photos []image.Image, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, photos, opts)
	return artifacts, err
}

// photosHash identifies the photo set by its ordered references.
// An empty hash disables artifact caching (nothing stable to key on).
func (r *Runner) photosHash(opts Options) string {
	if len(opts.Photos) == 0 {
		return ""
	}
	data, err := json.Marshal(orderedRefs(opts))
	if err != nil {
		return ""
	}
	return cache.Hash(data)
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
