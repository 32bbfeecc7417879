package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sardine/pkg/cache"
	"github.com/matzehuels/sardine/pkg/geom"
	pkgio "github.com/matzehuels/sardine/pkg/io"
	"github.com/matzehuels/sardine/pkg/lot"
	"github.com/matzehuels/sardine/pkg/observability"
	"github.com/matzehuels/sardine/pkg/solver"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
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

// Execute runs the complete solve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, req solver.Request, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Reach == 0 {
		opts.Reach = DefaultReach(req.Settings)
	}

	hash, err := RequestHash(req)
	if err != nil {
		return nil, err
	}
	result := &Result{RequestHash: hash}

	// Stage 1: Solve
	solveStart := time.Now()
	pl, solveHit, err := r.SolveWithCacheInfo(ctx, req, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Lot = pl
	result.Stats.Stats = pl.Stats()
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolveHit = solveHit

	r.Logger.Info("solved lot",
		"spots", result.Stats.Spots,
		"roads", result.Stats.Roads,
		"warnings", len(pl.Warnings),
		"cached", solveHit,
		"duration", result.Stats.SolveTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, pl, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo solves a lot with caching and returns cache hit info.
// Failed solves are never cached.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, req solver.Request, opts Options) (*lot.ParkingLot, bool, error) {
	r.applyLogger(&opts)
	hash, err := RequestHash(req)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.LotKey(hash)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			pl, err := pkgio.ReadLot(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "lot")
				return pl, true, nil // Cache hit
			}
			opts.Logger.Warn("discarding unreadable cached lot", "key", cacheKey, "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "lot")
	}

	hooks := observability.Pipeline()
	hooks.OnSolveStart(ctx, len(geom.Vertices(req.Boundary)))
	start := time.Now()
	pl, err := solver.New(opts.Logger).SolveRequest(req)
	spots := 0
	if pl != nil {
		spots = len(pl.Spots)
	}
	hooks.OnSolveComplete(ctx, spots, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	var buf bytes.Buffer
	if err := pkgio.WriteLot(pl, &buf); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLLot); err == nil {
			observability.Cache().OnCacheSet(ctx, "lot", buf.Len())
		} else {
			opts.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		}
	}

	return pl, false, nil // Cache miss
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards the cache hit info.
func (r *Runner) Solve(ctx context.Context, req solver.Request, opts Options) (*lot.ParkingLot, error) {
	pl, _, err := r.SolveWithCacheInfo(ctx, req, opts)
	return pl, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, pl *lot.ParkingLot, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	if opts.Reach == 0 {
		opts.Reach = DefaultReach(lot.DefaultSettings())
	}

	// Compute cache key from lot data
	var buf bytes.Buffer
	if err := pkgio.WriteLot(pl, &buf); err != nil {
		return nil, false, fmt.Errorf("serialize lot for cache key: %w", err)
	}
	lotHash := cache.Hash(buf.Bytes())

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(lotHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(pl, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(lotHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, pl *lot.ParkingLot, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, pl, opts)
	return artifacts, err
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
