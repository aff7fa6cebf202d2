package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/bson/filtergen/pkg/cache"
	"github.com/bson/filtergen/pkg/filter"
	"github.com/bson/filtergen/pkg/observability"
	"github.com/bson/filtergen/pkg/schematic"
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
	TTL    time.Duration
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
		TTL:    cache.TTLDesign,
	}
}

// cachedResult is the stored form of a Result.
type cachedResult struct {
	Seed       uint32            `msgpack:"seed"`
	Page       schematic.Page    `msgpack:"page"`
	Summary    filter.Summary    `msgpack:"summary"`
	Parts      schematic.Parts   `msgpack:"parts"`
	Artifacts  map[string][]byte `msgpack:"artifacts"`
	Stages     int               `msgpack:"stages"`
	Components int               `msgpack:"components"`
}

// Execute runs the complete validate → assemble → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{ID: uuid.NewString()}

	if opts.Cacheable() {
		result.CacheInfo.Key = r.Keyer.DesignKey(opts.KeySpec())
		if !opts.Refresh {
			var cached cachedResult
			if hit, err := cache.GetValue(ctx, r.Cache, result.CacheInfo.Key, &cached); err != nil {
				r.Logger.Warn("cache read failed", "err", err)
			} else if hit {
				r.Logger.Debug("cache hit", "key", result.CacheInfo.Key)
				observability.Cache().OnCacheHit(ctx, "design")
				result.fromCache(cached)
				return result, nil
			}
			observability.Cache().OnCacheMiss(ctx, "design")
		}
	}

	// Step 1: Assemble
	order := opts.Order
	if opts.Mode == ModeStage {
		order = 2
	}
	hooks := observability.Pipeline()
	hooks.OnAssembleStart(ctx, opts.Mode, order)
	assembleStart := time.Now()
	sheet, err := Assemble(opts)
	if err != nil {
		hooks.OnAssembleComplete(ctx, opts.Mode, 0, time.Since(assembleStart), err)
		return nil, fmt.Errorf("assemble: %w", err)
	}
	result.Seed = sheet.Doc.Seed()
	result.Page = sheet.Doc.Page
	result.Summary = sheet.Summary
	result.Parts = sheet.Parts
	result.Stats.Stages = len(sheet.Summary.Stages)
	result.Stats.Components = sheet.Components()
	result.Stats.AssembleTime = time.Since(assembleStart)
	hooks.OnAssembleComplete(ctx, opts.Mode, result.Stats.Stages, result.Stats.AssembleTime, nil)

	r.Logger.Info("assembled sheet",
		"mode", opts.Mode,
		"stages", result.Stats.Stages,
		"components", result.Stats.Components,
		"page", result.Page.Name,
		"duration", result.Stats.AssembleTime)

	// Step 2: Render
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, err := Render(ctx, sheet, opts)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	if result.CacheInfo.Key != "" {
		if err := cache.SetValue(ctx, r.Cache, result.CacheInfo.Key, result.toCache(), r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "design", result.artifactBytes())
		}
	}

	return result, nil
}

func (res *Result) fromCache(c cachedResult) {
	res.Seed = c.Seed
	res.Page = c.Page
	res.Summary = c.Summary
	res.Parts = c.Parts
	res.Artifacts = c.Artifacts
	res.Stats.Stages = c.Stages
	res.Stats.Components = c.Components
	res.CacheInfo.Hit = true
}

func (res *Result) toCache() cachedResult {
	return cachedResult{
		Seed:       res.Seed,
		Page:       res.Page,
		Summary:    res.Summary,
		Parts:      res.Parts,
		Artifacts:  res.Artifacts,
		Stages:     res.Stats.Stages,
		Components: res.Stats.Components,
	}
}

func (res *Result) artifactBytes() int {
	n := 0
	for _, a := range res.Artifacts {
		n += len(a)
	}
	return n
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options that carry none.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
