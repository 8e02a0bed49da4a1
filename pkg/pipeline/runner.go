package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/weekplan/pkg/cache"
	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/observability"
	"github.com/matzehuels/weekplan/pkg/render/planner/config"
	"github.com/matzehuels/weekplan/pkg/render/planner/document"
	"github.com/matzehuels/weekplan/pkg/source"
)

// Key types reported to the cache hooks.
const (
	keyDocument = "document"
	keyArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer means [cache.DefaultKeyer]; a nil cache disables caching.
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

// Execute runs load → assemble → render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	loadStart := time.Now()
	events, err := r.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	cfg, err := opts.LayoutConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.EventCount = len(events)

	assembleStart := time.Now()
	doc, docKey, hit, err := r.AssembleWithCacheInfo(ctx, events, cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	result.Document = doc
	result.Stats.AssembleTime = time.Since(assembleStart)
	result.Stats.Diagnostics = len(doc.Diagnostics)
	result.Stats.DegradedPages = len(doc.DegradedPages())
	result.CacheInfo.DocumentHit = hit

	for _, d := range doc.Diagnostics {
		opts.Logger.Warn("diagnostic", "code", d.Code, "page", d.Page, "event", d.EventID, "msg", d.Message)
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, docKey, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered planner",
		"week", doc.WeekStart.Format(time.DateOnly),
		"events", len(events),
		"formats", opts.Formats,
		"cached", hit && renderHit,
		"duration", result.Stats.AssembleTime+result.Stats.RenderTime)

	return result, nil
}

// Load returns the inline events or reads them from opts.EventsPath.
func (r *Runner) Load(opts Options) ([]calendar.Event, error) {
	if opts.EventsPath == "" {
		return opts.Events, nil
	}
	events, err := source.Load(opts.EventsPath, opts.Source)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded events", "path", opts.EventsPath, "count", len(events))
	return events, nil
}

// AssembleWithCacheInfo assembles the document with caching. It returns the
// document's cache key, which also scopes its artifacts.
func (r *Runner) AssembleWithCacheInfo(ctx context.Context, events []calendar.Event, cfg config.LayoutConfig, opts Options) (*document.Document, string, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", false, err
	}
	key := r.Keyer.DocumentKey(document.DocumentID(opts.WeekStart, events), opts.DocumentKeyOpts(cfg))
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var doc document.Document
			if err := json.Unmarshal(data, &doc); err == nil {
				hooks.OnCacheHit(ctx, keyDocument)
				r.Logger.Debug("document cache hit", "id", doc.ID)
				return &doc, key, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		hooks.OnCacheMiss(ctx, keyDocument)
	}

	asm := document.NewAssembler(cfg,
		document.WithLogger(opts.Logger),
		document.WithParallel(opts.Parallel))
	doc, err := asm.Assemble(ctx, events, opts.WeekStart)
	if err != nil {
		return nil, "", false, err
	}

	if data, err := json.Marshal(doc); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLDocument); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, keyDocument, len(data))
		}
	}
	return doc, key, false, nil
}

// Assemble is a convenience wrapper that discards the cache information.
func (r *Runner) Assemble(ctx context.Context, events []calendar.Event, cfg config.LayoutConfig, opts Options) (*document.Document, error) {
	doc, _, _, err := r.AssembleWithCacheInfo(ctx, events, cfg, opts)
	return doc, err
}

// RenderWithCacheInfo renders every requested artifact, serving it from the
// cache when possible. docKey scopes the artifact keys.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *document.Document, docKey string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	pipelineHooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	pipelineHooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte)
	var missing []string
	for _, format := range opts.Formats {
		complete := true
		for _, name := range names(format, opts.Pages) {
			if opts.Refresh {
				complete = false
				break
			}
			key := r.artifactKey(docKey, name, opts)
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				cacheHooks.OnCacheHit(ctx, keyArtifact)
				artifacts[name] = data
				continue
			}
			cacheHooks.OnCacheMiss(ctx, keyArtifact)
			complete = false
		}
		if !complete {
			missing = append(missing, format)
		}
	}
	if len(missing) == 0 {
		pipelineHooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, doc, sub)
	pipelineHooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	for name, data := range rendered {
		artifacts[name] = data
		key := r.artifactKey(docKey, name, opts)
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			cacheHooks.OnCacheSet(ctx, keyArtifact, len(data))
		}
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that discards the cache information.
func (r *Runner) Render(ctx context.Context, doc *document.Document, docKey string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, docKey, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) artifactKey(docKey, name string, opts Options) string {
	format, page := splitName(name)
	return r.Keyer.ArtifactKey(docKey, opts.ArtifactKeyOpts(format, page))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func names(format string, pages []int) []string {
	if !PerPage(format) {
		return []string{format}
	}
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = ArtifactName(format, p)
	}
	return out
}

func splitName(name string) (string, int) {
	format, page, ok := strings.Cut(name, "/")
	if !ok {
		return name, -1
	}
	n, err := strconv.Atoi(page)
	if err != nil {
		return name, -1
	}
	return format, n
}
