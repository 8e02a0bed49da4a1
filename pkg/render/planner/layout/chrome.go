package layout

import (
	"fmt"
	"slices"

	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/render/planner/draw"
	"github.com/matzehuels/weekplan/pkg/render/planner/styles"
)

const (
	hairline    = 0.5
	borderWidth = 1.0
	buttonInset = 6.0
	buttonEdge  = 0.35
	swatchW     = 12.0
	swatchH     = 8.0
	fontFloor   = 4.0
)

var halfHourDash = []float64{1, 2}

func (b *builder) contentBox() draw.Rect {
	return draw.Rect{X: b.pc.Margin, Y: b.pc.Margin, W: b.pc.ContentWidth(), H: b.pc.Height - 2*b.pc.Margin}
}

func (b *builder) border() {
	b.add(draw.Outlined("border", b.contentBox(), "", b.cfg.Palette.Border, borderWidth))
}

// header draws a centered title and subtitle, keeping reserve units free
// on both sides for buttons.
func (b *builder) header(title, subtitle string, reserve float64) {
	pal := b.cfg.Palette
	lh := b.cfg.Card.LineHeight
	x := b.pc.ContentLeft() + reserve
	w := b.pc.ContentWidth() - 2*reserve
	top := b.pc.Margin

	titleH := b.pc.TitleSize * lh
	subH := b.pc.SubtitleSize * lh
	y := top + max(0, (b.pc.HeaderHeight-titleH-subH)/2)

	size := styles.FitSize(title, w, b.pc.TitleSize)
	if t := styles.Truncate(title, w, size); t != "" {
		b.add(draw.Text("title", draw.Rect{X: x, Y: y, W: w, H: titleH}, t,
			draw.TextStyle{Size: size, Weight: draw.Bold, Align: draw.AlignCenter, Color: pal.Ink}))
	}
	if y+titleH+subH <= top+b.pc.HeaderHeight {
		if s := styles.Truncate(subtitle, w, b.pc.SubtitleSize); s != "" {
			b.add(draw.Text("subtitle", draw.Rect{X: x, Y: y + titleH, W: w, H: subH}, s,
				draw.TextStyle{Size: b.pc.SubtitleSize, Align: draw.AlignCenter, Color: pal.Muted}))
		}
	}
	bottom := top + b.pc.HeaderHeight
	b.add(draw.Line("header-rule", b.pc.ContentLeft(), bottom, b.pc.ContentLeft()+b.pc.ContentWidth(), bottom, pal.Border, hairline))
}

// statsBand draws one cell per statistic.
func (b *builder) statsBand(s Stats) {
	if b.pc.StatsHeight <= 0 {
		return
	}
	pal := b.cfg.Palette
	lh := b.cfg.Card.LineHeight
	cells := []struct{ label, value string }{
		{"Appointments", fmt.Sprintf("%d", s.Appointments)},
		{"Canceled", fmt.Sprintf("%d", s.Canceled)},
		{"Scheduled", fmt.Sprintf("%.1fh", s.ScheduledHours())},
		{"Available", fmt.Sprintf("%.1fh", s.AvailableHours())},
		{"Free Time", fmt.Sprintf("%d%%", s.FreePercent)},
	}

	y := b.pc.Margin + b.pc.HeaderHeight
	w := b.pc.ContentWidth() / float64(len(cells))
	for i, c := range cells {
		cell := draw.Rect{X: b.pc.ContentLeft() + float64(i)*w, Y: y, W: w, H: b.pc.StatsHeight}.Inset(2)
		b.add(draw.Outlined("stats-cell", cell, pal.Panel, pal.GridLine, hairline))

		labelH := b.pc.LabelSize * lh
		valueH := b.pc.SubtitleSize * lh
		inner := cell.Inset(2)
		if labelH+valueH <= inner.H {
			top := inner.Y + (inner.H-labelH-valueH)/2
			b.add(draw.Text("stats-label", draw.Rect{X: inner.X, Y: top, W: inner.W, H: labelH},
				styles.Truncate(c.label, inner.W, b.pc.LabelSize),
				draw.TextStyle{Size: b.pc.LabelSize, Align: draw.AlignCenter, Color: pal.Muted}))
			b.add(draw.Text("stats-value", draw.Rect{X: inner.X, Y: top + labelH, W: inner.W, H: valueH},
				styles.Truncate(c.value, inner.W, b.pc.SubtitleSize),
				draw.TextStyle{Size: b.pc.SubtitleSize, Weight: draw.Bold, Align: draw.AlignCenter, Color: pal.Ink}))
			continue
		}
		if labelH <= inner.H {
			line := styles.Truncate(c.label+": "+c.value, inner.W, b.pc.LabelSize)
			b.add(draw.Text("stats-value", draw.Rect{X: inner.X, Y: inner.Y + (inner.H-labelH)/2, W: inner.W, H: labelH}, line,
				draw.TextStyle{Size: b.pc.LabelSize, Weight: draw.Bold, Align: draw.AlignCenter, Color: pal.Ink}))
		}
	}
}

// legend draws one entry per source present in events, in the fixed
// source order.
func (b *builder) legend(events []calendar.Event) {
	if b.pc.LegendHeight <= 0 {
		return
	}
	present := make(map[calendar.Source]bool)
	for _, e := range events {
		present[e.Source] = true
	}

	pal := b.cfg.Palette
	y := b.pc.Margin + b.pc.HeaderHeight + b.pc.StatsHeight
	h := b.pc.LegendHeight
	right := b.pc.ContentLeft() + b.pc.ContentWidth()
	x := b.pc.ContentLeft() + buttonInset
	size := min(b.pc.LabelSize, h/b.cfg.Card.LineHeight)

	for _, src := range calendar.Sources {
		if !present[src] {
			continue
		}
		label := src.Label()
		labelW := styles.TextWidth(label, size) + 2
		if x+swatchW+4+labelW > right {
			break
		}
		st := pal.Source(src)
		sw := draw.Outlined("legend-swatch", draw.Rect{X: x, Y: y + (h-swatchH)/2, W: swatchW, H: swatchH}, st.Fill, st.Stroke, borderWidth)
		if st.Dashed {
			sw = sw.WithDash(2, 1)
		}
		b.add(sw)
		b.add(draw.Text("legend-label", draw.Rect{X: x + swatchW + 4, Y: y, W: labelW, H: h}, label,
			draw.TextStyle{Size: size, Color: pal.Ink}))
		x += swatchW + 4 + labelW + 14
	}
	b.add(draw.Line("legend-rule", b.pc.ContentLeft(), y+h, right, y+h, pal.GridLine, hairline))
}

// timeGrid draws slot rows, the time column and column separators. Slots
// marked in free get a highlighted time label.
func (b *builder) timeGrid(cols []draw.Rect, free []bool) {
	pal := b.cfg.Palette
	g := b.grid
	left := b.pc.ContentLeft()
	right := left + b.pc.ContentWidth()
	sh := g.SlotHeight()
	labelSize := min(b.pc.LabelSize, sh/b.cfg.Card.LineHeight)

	for _, slot := range g.Slots() {
		y := g.PixelY(slot.Index)
		if slot.OnHour() {
			b.add(draw.Filled("hour-shade", draw.Rect{X: left, Y: y, W: right - left, H: sh}, pal.HourShade))
		}
		if slot.Index < len(free) && free[slot.Index] {
			b.add(draw.Filled("free-slot", draw.Rect{X: left, Y: y, W: b.pc.TimeColumnWidth, H: sh}, pal.FreeSlot))
		}
	}
	for _, slot := range g.Slots() {
		y := g.PixelY(slot.Index)
		if slot.Index > 0 {
			if slot.OnHour() {
				b.add(draw.Line("hour-line", left, y, right, y, pal.GridLine, hairline))
			} else {
				b.add(draw.Line("half-hour-line", left+b.pc.TimeColumnWidth, y, right, y, pal.GridLine, hairline*0.6).
					WithDash(slices.Clone(halfHourDash)...))
			}
		}
		weight := draw.Regular
		if slot.OnHour() {
			weight = draw.Bold
		}
		box := draw.Rect{X: left + 2, Y: y, W: b.pc.TimeColumnWidth - 4, H: sh}
		if lbl := styles.Truncate(slot.Label, box.W, labelSize); lbl != "" {
			b.add(draw.Text("time-label", box, lbl, draw.TextStyle{Size: labelSize, Weight: weight, Align: draw.AlignCenter, Color: pal.Ink}))
		}
	}

	x := left + b.pc.TimeColumnWidth
	b.add(draw.Line("column-line", x, g.Top(), x, g.Bottom(), pal.Border, borderWidth))
	for _, c := range cols[:max(0, len(cols)-1)] {
		b.add(draw.Line("column-line", c.Right(), g.Top(), c.Right(), g.Bottom(), pal.GridLine, hairline))
	}
	b.add(draw.Outlined("grid", draw.Rect{X: left, Y: g.Top(), W: right - left, H: g.Height()}, "", pal.Border, borderWidth))
}

// button draws a labeled button and records its anchor.
func (b *builder) button(r draw.Rect, label string, t Target, role string) {
	pal := b.cfg.Palette
	b.add(draw.Outlined("button", r, pal.Button, styles.Darken(pal.Button, buttonEdge), hairline*1.5))
	size := min(b.pc.LabelSize, r.H/b.cfg.Card.LineHeight)
	inner := r.Inset(2)
	if txt := styles.Truncate(label, inner.W, size); txt != "" {
		b.add(draw.Text("button-label", inner, txt, draw.TextStyle{Size: size, Weight: draw.Bold, Align: draw.AlignCenter, Color: pal.Ink}))
	}
	b.anchor(r, t, role)
}

// note draws a single centered muted line in r.
func (b *builder) note(r draw.Rect, text string, size float64) {
	if txt := styles.Truncate(text, r.W, size); txt != "" && size*b.cfg.Card.LineHeight <= r.H+1e-9 {
		b.add(draw.Text("note", r, txt, draw.TextStyle{Size: size, Align: draw.AlignCenter, Color: b.cfg.Palette.Muted}))
	}
}
