package layout

import (
	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/render/planner/config"
	"github.com/matzehuels/weekplan/pkg/render/planner/draw"
	"github.com/matzehuels/weekplan/pkg/render/planner/grid"
	"github.com/matzehuels/weekplan/pkg/render/planner/lanes"
)

// Engine renders pages. It holds only immutable configuration and is safe
// for concurrent use.
type Engine struct {
	cfg      config.LayoutConfig
	resolver lanes.Resolver
}

// New returns an engine for cfg. The configuration is copied.
func New(cfg config.LayoutConfig) *Engine {
	return &Engine{cfg: cfg, resolver: lanes.Resolver{Cap: cfg.Lanes.Cap}}
}

// Config returns the engine's configuration.
func (e *Engine) Config() config.LayoutConfig { return e.cfg }

// Render dispatches on spec.Kind.
func (e *Engine) Render(spec PageSpec) (Result, error) {
	switch spec.Kind {
	case Weekly:
		return e.RenderWeekly(spec)
	case Daily:
		return e.RenderDaily(spec)
	}
	return Result{}, errors.New(errors.ErrCodePageRenderFailure, "unknown page kind %q", spec.Kind)
}

// pageConfig returns the page variant for spec with the spec's dimensions
// applied.
func (e *Engine) pageConfig(spec PageSpec) config.PageConfig {
	pc := e.cfg.Weekly
	if spec.Kind == Daily {
		pc = e.cfg.Daily
	}
	if spec.Width > 0 {
		pc.Width = spec.Width
	}
	if spec.Height > 0 {
		pc.Height = spec.Height
	}
	if spec.Orientation != "" {
		pc.Orientation = spec.Orientation
	}
	return pc
}

// builder accumulates one page.
type builder struct {
	cfg  config.LayoutConfig
	pc   config.PageConfig
	spec PageSpec
	grid grid.Grid
	res  Result

	resolver lanes.Resolver
}

func (e *Engine) newBuilder(spec PageSpec) (*builder, error) {
	pc := e.pageConfig(spec)
	if len(spec.Week) != DaysPerWeek {
		return nil, errors.New(errors.ErrCodePageRenderFailure, "%s page: week has %d days, want %d", spec.Kind, len(spec.Week), DaysPerWeek)
	}
	if pc.GridHeight() <= 0 || pc.ContentWidth()-pc.TimeColumnWidth <= 0 {
		return nil, errors.New(errors.ErrCodePageRenderFailure, "%s page: %.0fx%.0f leaves no room for the time grid", spec.Kind, pc.Width, pc.Height)
	}
	return &builder{
		cfg:  e.cfg,
		pc:   pc,
		spec: spec,
		grid: grid.ForPage(e.cfg, pc),
		res:  Result{Spec: spec},

		resolver: e.resolver,
	}, nil
}

func (b *builder) add(ops ...draw.Op) { b.res.Ops = append(b.res.Ops, ops...) }

func (b *builder) anchor(r draw.Rect, t Target, role string) {
	b.res.Anchors = append(b.res.Anchors, Anchor{Rect: r, Target: t, Role: role})
}

func (b *builder) diagnose(err error, sev errors.Severity, eventID string) {
	b.res.Diagnostics = append(b.res.Diagnostics, errors.Diagnose(err, sev, eventID, -1))
}

// dayColumns splits the grid area right of the time column into n columns.
func (b *builder) dayColumns(n int) []draw.Rect {
	x := b.pc.ContentLeft() + b.pc.TimeColumnWidth
	w := (b.pc.ContentWidth() - b.pc.TimeColumnWidth) / float64(n)
	cols := make([]draw.Rect, n)
	for i := range cols {
		cols[i] = draw.Rect{X: x + float64(i)*w, Y: b.grid.Top(), W: w, H: b.grid.Height()}
	}
	return cols
}
