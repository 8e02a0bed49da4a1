package layout

import (
	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/render/planner/config"
	"github.com/matzehuels/weekplan/pkg/render/planner/draw"
	"github.com/matzehuels/weekplan/pkg/render/planner/grid"
)

func pageError(spec PageSpec, format string, args ...any) error {
	err := errors.New(errors.ErrCodePageRenderFailure, format, args...)
	err.Message = string(spec.Kind) + " page: " + err.Message
	return err
}

// Placeholder returns a degraded page for spec. It carries the same
// anchors, in the same positions, as a successful render so the link
// graph stays intact. cause is recorded as a PAGE_RENDER_FAILURE
// diagnostic.
func (e *Engine) Placeholder(spec PageSpec, cause error) Result {
	pc := e.pageConfig(spec)
	b := &builder{
		cfg:      e.cfg,
		pc:       pc,
		spec:     spec,
		grid:     grid.ForPage(e.cfg, pc),
		res:      Result{Spec: spec, Degraded: true},
		resolver: e.resolver,
	}
	if cause == nil {
		cause = errors.New(errors.ErrCodePageRenderFailure, "page could not be rendered")
	}
	if !errors.Is(cause, errors.ErrCodePageRenderFailure) {
		cause = errors.Wrap(errors.ErrCodePageRenderFailure, cause, "%s page could not be rendered", spec.Kind)
	}
	b.diagnose(cause, errors.SeverityError, "")

	title := WeeklyTitle
	if spec.Kind == Daily && len(spec.Week) > 0 {
		title = spec.Date().Format("Monday, January 2, 2006")
	}
	if !placeable(pc) {
		b.anchorsOnly()
		return b.res
	}

	b.border()
	switch spec.Kind {
	case Weekly:
		b.header(title, "", 0)
		cols := b.dayColumns(DaysPerWeek)
		for d, r := range b.dayHeaderRects(cols) {
			b.add(draw.Outlined("day-header", r, b.cfg.Palette.Panel, b.cfg.Palette.GridLine, hairline))
			b.anchor(r, DayTarget(d), RoleDayHeader)
		}
	default:
		b.header(title, "", pc.ButtonWidth+buttonInset)
		for _, nb := range b.navButtons() {
			b.button(nb.rect, nb.label, nb.target, nb.role)
		}
	}

	area := draw.Rect{X: pc.ContentLeft(), Y: b.grid.Top(), W: pc.ContentWidth(), H: b.grid.Height()}
	b.add(draw.Outlined("placeholder", area, b.cfg.Palette.Panel, b.cfg.Palette.GridLine, hairline))
	b.note(draw.Rect{X: area.X, Y: area.Y + area.H/2 - pc.SubtitleSize, W: area.W, H: 2 * pc.SubtitleSize},
		"This page could not be rendered", pc.SubtitleSize)
	return b.res
}

// anchorsOnly records anchors without drawing, for page configs too small
// to hold any chrome.
func (b *builder) anchorsOnly() {
	if b.spec.Kind == Weekly {
		for d, r := range b.dayHeaderRects(b.dayColumns(DaysPerWeek)) {
			b.anchor(r, DayTarget(d), RoleDayHeader)
		}
		return
	}
	for _, nb := range b.navButtons() {
		b.anchor(nb.rect, nb.target, nb.role)
	}
}

func placeable(pc config.PageConfig) bool {
	return pc.GridHeight() > 0 && pc.ContentWidth()-pc.TimeColumnWidth > 0
}
