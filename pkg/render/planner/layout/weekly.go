package layout

import (
	"fmt"
	"strings"

	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/render/planner/draw"
	"github.com/matzehuels/weekplan/pkg/render/planner/styles"
)

// WeeklyTitle is the heading of the overview page.
const WeeklyTitle = "WEEKLY PLANNER"

// RenderWeekly lays out the seven-day overview. Every day header links to
// its daily page.
func (e *Engine) RenderWeekly(spec PageSpec) (Result, error) {
	b, err := e.newBuilder(spec)
	if err != nil {
		return Result{}, err
	}

	cols := b.dayColumns(DaysPerWeek)
	perDay := make([][]calendar.Event, DaysPerWeek)
	var drawn []calendar.Event
	for d := range perDay {
		perDay[d] = b.visible(d, spec.Events)
		drawn = append(drawn, perDay[d]...)
	}
	b.res.Stats = ComputeStats(b.grid, drawn, DaysPerWeek)

	b.border()
	b.header(WeeklyTitle, weekRange(spec), 0)
	b.statsBand(b.res.Stats)
	b.legend(drawn)
	b.dayHeaders(cols)
	b.timeGrid(cols, nil)
	for d, col := range cols {
		b.placeCards(d, col, perDay[d], false)
	}
	b.footerNote("Tap a day to open its page")
	return b.res, nil
}

// weekRange formats "Jul 7 - Jul 13, 2025 · Week 28".
func weekRange(spec PageSpec) string {
	first, last := spec.Week[0], spec.Week[len(spec.Week)-1]
	_, wk := first.ISOWeek()
	return fmt.Sprintf("%s - %s · Week %d", first.Format("Jan 2"), last.Format("Jan 2, 2006"), wk)
}

// dayHeaderRects returns the clickable header cell above each column.
func (b *builder) dayHeaderRects(cols []draw.Rect) []draw.Rect {
	h := b.pc.ColumnHeaderHeight
	out := make([]draw.Rect, len(cols))
	for i, c := range cols {
		out[i] = draw.Rect{X: c.X, Y: b.grid.Top() - h, W: c.W, H: h}.Inset(1)
	}
	return out
}

func (b *builder) dayHeaders(cols []draw.Rect) {
	pal := b.cfg.Palette
	lh := b.cfg.Card.LineHeight
	for d, r := range b.dayHeaderRects(cols) {
		b.add(draw.Outlined("day-header", r, pal.Panel, pal.GridLine, hairline))
		day := b.spec.Week[d]
		inner := r.Inset(1)

		lines := []string{day.Format("Monday"), day.Format("Jan 2")}
		if titles := b.allDay(d, b.spec.Events); len(titles) > 0 {
			lines[1] += " · " + strings.Join(titles, ", ")
		}
		size := min(b.pc.LabelSize, inner.H/(2*lh))
		if styles.MaxChars(inner.W, size) < len(lines[0]) {
			lines[0] = day.Format("Mon")
		}
		if size < fontFloor {
			lines = []string{day.Format("Mon 2")}
			size = min(b.pc.LabelSize, inner.H/lh)
		}
		y := inner.Y + (inner.H-float64(len(lines))*size*lh)/2
		for i, l := range lines {
			weight := draw.Regular
			if i == 0 {
				weight = draw.Bold
			}
			if t := styles.Truncate(l, inner.W, size); t != "" {
				b.add(draw.Text("day-header-label", draw.Rect{X: inner.X, Y: y, W: inner.W, H: size * lh}, t,
					draw.TextStyle{Size: size, Weight: weight, Align: draw.AlignCenter, Color: pal.Ink}))
			}
			y += size * lh
		}
		b.anchor(r, DayTarget(d), RoleDayHeader)
	}
}

// footerNote writes a muted line in the footer band when it is tall enough.
func (b *builder) footerNote(text string) {
	if b.pc.FooterHeight <= 0 {
		return
	}
	size := min(b.pc.LabelSize, b.pc.FooterHeight/b.cfg.Card.LineHeight)
	r := draw.Rect{X: b.pc.ContentLeft(), Y: b.grid.Bottom(), W: b.pc.ContentWidth(), H: b.pc.FooterHeight}
	b.note(r, text, size)
}
