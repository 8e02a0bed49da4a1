package document

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/observability"
	"github.com/matzehuels/weekplan/pkg/render/planner/config"
	"github.com/matzehuels/weekplan/pkg/render/planner/lanes"
	"github.com/matzehuels/weekplan/pkg/render/planner/layout"
	"github.com/matzehuels/weekplan/pkg/render/planner/links"
)

// namespace scopes document IDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/weekplan"))

// Renderer renders one page. *layout.Engine is the production renderer.
type Renderer interface {
	Render(spec layout.PageSpec) (layout.Result, error)
}

// Option configures an [Assembler].
type Option func(*Assembler)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option { return func(a *Assembler) { a.logger = l } }

// WithParallel renders up to n pages at once. n <= 1 renders sequentially.
func WithParallel(n int) Option { return func(a *Assembler) { a.parallel = n } }

// WithRenderer replaces the page renderer. Placeholders are still drawn by
// the assembler's engine.
func WithRenderer(r Renderer) Option { return func(a *Assembler) { a.renderer = r } }

// Assembler builds documents. It is safe for concurrent use.
type Assembler struct {
	engine   *layout.Engine
	renderer Renderer
	logger   *log.Logger
	parallel int
}

// NewAssembler returns an assembler for cfg.
func NewAssembler(cfg config.LayoutConfig, opts ...Option) *Assembler {
	a := &Assembler{engine: layout.New(cfg), parallel: 1}
	for _, opt := range opts {
		opt(a)
	}
	if a.renderer == nil {
		a.renderer = a.engine
	}
	if a.logger == nil {
		a.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return a
}

// Assemble renders the week starting on the calendar day of weekStart, in
// weekStart's location.
func (a *Assembler) Assemble(ctx context.Context, events []calendar.Event, weekStart time.Time) (doc *Document, err error) {
	if weekStart.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidWeek, "week start is required")
	}
	week := layout.Week(weekStart)
	label := week[0].Format(time.DateOnly)

	hooks := observability.Pipeline()
	hooks.OnAssembleStart(ctx, label, len(events))
	start := time.Now()
	defer func() {
		pages := 0
		if doc != nil {
			pages = len(doc.Pages)
		}
		hooks.OnAssembleComplete(ctx, label, pages, time.Since(start), err)
	}()

	valid, diags := a.validate(week, events)
	specs := a.specs(week, valid)

	results, err := a.renderAll(ctx, specs)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	regions, err := links.Build(results)
	if err != nil {
		a.logger.Error("link resolution failed", "week", label, "err", err)
		return nil, err
	}

	doc = &Document{
		ID:          DocumentID(week[0], valid),
		WeekStart:   week[0],
		Pages:       make([]Page, len(results)),
		Diagnostics: mergeDiagnostics(diags, results),
	}
	byPage := links.ByPage(regions, len(results))
	for i, res := range results {
		doc.Pages[i] = newPage(i, res, byPage[i])
	}

	a.logger.Info("assembled document",
		"week", label,
		"events", len(valid),
		"diagnostics", len(doc.Diagnostics),
		"degraded", len(doc.DegradedPages()),
		"duration", time.Since(start))
	return doc, nil
}

// validate normalizes events and drops malformed ones, duplicate IDs and
// events not listed on any day of the week.
func (a *Assembler) validate(week []time.Time, events []calendar.Event) ([]calendar.Event, []errors.Diagnostic) {
	var (
		out   []calendar.Event
		diags []errors.Diagnostic
		seen  = make(map[string]bool, len(events))
	)
	for _, e := range events {
		e = e.Normalized()
		if err := e.Validate(); err != nil {
			diags = append(diags, errors.Diagnose(err, errors.SeverityWarning, e.ID, -1))
			continue
		}
		if seen[e.ID] {
			diags = append(diags, errors.Diagnose(
				errors.New(errors.ErrCodeMalformedEvent, "duplicate event id %s", e.ID), errors.SeverityWarning, e.ID, -1))
			continue
		}
		seen[e.ID] = true
		if len(layout.Covers(week, e)) == 0 {
			diags = append(diags, errors.Diagnose(
				errors.New(errors.ErrCodeOutOfWindow, "event %s starts %s, outside the week of %s",
					e.ID, e.Start.Format(time.DateTime), week[0].Format(time.DateOnly)),
				errors.SeverityWarning, e.ID, -1))
			continue
		}
		out = append(out, e)
	}
	for _, d := range diags {
		a.logger.Warn("event skipped", "event", d.EventID, "code", d.Code, "msg", d.Message)
	}
	return lanes.Sorted(out), diags
}

// specs returns the weekly spec followed by one daily spec per day.
func (a *Assembler) specs(week []time.Time, events []calendar.Event) []layout.PageSpec {
	cfg := a.engine.Config()
	perDay := make([][]calendar.Event, layout.DaysPerWeek)
	for _, e := range events {
		for _, d := range layout.Covers(week, e) {
			perDay[d] = append(perDay[d], e)
		}
	}

	specs := make([]layout.PageSpec, 0, links.PageCount)
	specs = append(specs, layout.NewWeeklySpec(cfg, week, events))
	for d := range layout.DaysPerWeek {
		specs = append(specs, layout.NewDailySpec(cfg, week, d, perDay[d]))
	}
	return specs
}

// renderAll renders every spec into its own slot. Page failures become
// placeholders; only context cancellation is returned.
func (a *Assembler) renderAll(ctx context.Context, specs []layout.PageSpec) ([]layout.Result, error) {
	results := make([]layout.Result, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, a.parallel))
	for i, spec := range specs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.renderPage(gctx, i, spec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *Assembler) renderPage(ctx context.Context, index int, spec layout.PageSpec) (res layout.Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = a.degrade(index, spec, errors.New(errors.ErrCodePageRenderFailure, "panic: %v", r))
		}
		observability.Pipeline().OnPageRendered(ctx, string(spec.Kind), index, time.Since(start), res.Degraded)
	}()

	res, err := a.renderer.Render(spec)
	if err != nil {
		return a.degrade(index, spec, err)
	}
	a.logger.Debug("rendered page", "page", index, "kind", spec.Kind, "cards", len(res.Cards), "ops", len(res.Ops))
	return res
}

func (a *Assembler) degrade(index int, spec layout.PageSpec, cause error) layout.Result {
	a.logger.Warn("page replaced by placeholder", "page", index, "kind", spec.Kind, "err", cause)
	return a.engine.Placeholder(spec, cause)
}

func newPage(i int, res layout.Result, regions []links.Region) Page {
	s := res.Spec
	title := layout.WeeklyTitle
	if s.Kind == layout.Daily {
		title = s.Date().Format("Monday, January 2, 2006")
	}
	return Page{
		Index:       i,
		Kind:        s.Kind,
		Day:         s.Day,
		Date:        s.Date(),
		Title:       title,
		Width:       s.Width,
		Height:      s.Height,
		Orientation: s.Orientation,
		Ops:         res.Ops,
		Links:       regions,
		Cards:       res.Cards,
		Stats:       res.Stats,
		Degraded:    res.Degraded,
	}
}

type diagKey struct {
	code    errors.Code
	eventID string
}

// mergeDiagnostics combines input diagnostics with page diagnostics. An
// event reported by both its daily page and the overview is listed once,
// for the daily page.
func mergeDiagnostics(input []errors.Diagnostic, results []layout.Result) []errors.Diagnostic {
	out := slices.Clone(input)
	seen := make(map[diagKey]bool)
	order := make([]int, 0, len(results))
	for i := 1; i < len(results); i++ {
		order = append(order, i)
	}
	order = append(order, links.OverviewPage)

	for _, i := range order {
		for _, d := range results[i].Diagnostics {
			if d.EventID != "" {
				k := diagKey{d.Code, d.EventID}
				if seen[k] {
					continue
				}
				seen[k] = true
			}
			d.Page = i
			out = append(out, d)
		}
	}
	return out
}

// DocumentID derives a name-based UUID from the week start and the events.
func DocumentID(weekStart time.Time, events []calendar.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s\n", weekStart.Format(time.DateOnly), weekStart.Location())
	for _, e := range lanes.Sorted(events) {
		fmt.Fprintf(&b, "%s|%d|%d|%t|%s|%s|%s|%s|%s\n", e.ID, e.Start.Unix(), e.End.Unix(), e.AllDay, e.Title, e.Source, e.Status,
			strings.Join(e.Notes, "\x1f"), strings.Join(e.ActionItems, "\x1f"))
	}
	return uuid.NewSHA1(namespace, []byte(b.String())).String()
}
