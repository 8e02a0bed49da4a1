package layout

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/render/planner/draw"
	"github.com/matzehuels/weekplan/pkg/render/planner/styles"
)

const (
	canceledFade   = 0.6
	minRegionWidth = 60.0
	regionGap      = 4.0
	bullet         = "- "
)

var dashedCard = []float64{3, 2}

// cardMode selects how much of an event fits on its card.
type cardMode int

const (
	modeCompact cardMode = iota
	modeStandard
	modeExpanded
)

// visible keeps timed events that fall on day and intersect the time window.
// Events on day that miss the window are reported as OUT_OF_WINDOW.
func (b *builder) visible(day int, events []calendar.Event) []calendar.Event {
	loc := b.spec.Week[0].Location()
	var out []calendar.Event
	for _, e := range events {
		if e.AllDay {
			continue
		}
		e = e.In(loc)
		if DayOf(b.spec.Week, e.Start) != day {
			continue
		}
		if _, err := b.grid.SlotsForInterval(e.Start, e.End); err != nil {
			b.diagnose(errors.Wrap(errors.ErrCodeOutOfWindow, err, "event %s not drawn", e.ID), errors.SeverityWarning, e.ID)
			continue
		}
		out = append(out, e)
	}
	return out
}

// allDay returns the titles of the all-day events listed on day.
func (b *builder) allDay(day int, events []calendar.Event) []string {
	var out []string
	for _, e := range events {
		if e.AllDay && slices.Contains(Covers(b.spec.Week, e), day) {
			out = append(out, cmp.Or(e.Title, e.ID))
		}
	}
	return out
}

// placeCards resolves lanes for one day and draws its cards into col.
func (b *builder) placeCards(day int, col draw.Rect, events []calendar.Event, expanded bool) {
	assign := b.resolver.Assign(events)
	for _, id := range assign.Overflow {
		b.diagnose(errors.New(errors.ErrCodeLaneOverflow, "event %s stacked into lane %d: more than %d concurrent events",
			id, assign.Count-1, b.cfg.Lanes.Cap), errors.SeverityWarning, id)
	}

	byID := make(map[string]calendar.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	for _, id := range assign.Order {
		e := byID[id]
		p := assign.Lanes[id]
		laneW := col.W / float64(p.LaneCount)
		r := draw.Rect{
			X: col.X + float64(p.Lane)*laneW,
			Y: b.grid.TimeY(e.Start),
			W: max(1, laneW-b.cfg.Lanes.Padding),
			H: b.grid.HeightFor(e.Start, e.End),
		}
		mode := b.drawCard(e, r, expanded)
		b.res.Cards = append(b.res.Cards, Card{
			EventID:   e.ID,
			Day:       day,
			Rect:      r,
			Lane:      p.Lane,
			LaneCount: p.LaneCount,
			Compact:   mode == modeCompact,
			Expanded:  mode == modeExpanded,
		})
	}
}

// drawCard draws the card body and as much text as fits.
func (b *builder) drawCard(e calendar.Event, r draw.Rect, daily bool) cardMode {
	pal := b.cfg.Palette
	cc := b.cfg.Card
	st := pal.Source(e.Source)
	fill, stroke, ink := st.Fill, st.Stroke, styles.TextOn(st.Fill, pal.Ink, "#ffffff")
	if e.Canceled() {
		fill, stroke, ink = styles.Fade(fill, canceledFade), styles.Fade(stroke, canceledFade/2), pal.Muted
	}

	body := draw.Outlined("card", r, fill, stroke, hairline*1.5)
	if st.Dashed {
		body = body.WithDash(dashedCard...)
	}
	b.add(body)

	stripe := min(cc.StripeWidth, r.W/4)
	if stripe > 0 {
		b.add(draw.Filled("card-stripe", draw.Rect{X: r.X, Y: r.Y, W: stripe, H: r.H}, stroke))
	}

	inner := draw.Rect{X: r.X + stripe + cc.Padding, Y: r.Y + cc.Padding, W: r.W - stripe - 2*cc.Padding, H: r.H - 2*cc.Padding}
	if inner.Empty() {
		return modeCompact
	}

	titleSize, bodySize := cc.TitleSize, cc.BodySize
	if !daily {
		titleSize, bodySize = cc.BodySize, cc.BodySize*0.9
	}
	need := (titleSize + bodySize) * cc.LineHeight
	if inner.H+1e-9 < need {
		b.compactText(e, inner, ink)
		return modeCompact
	}

	if daily && e.HasDetails() && inner.W >= 3*minRegionWidth {
		b.expandedText(e, r, inner, ink, stroke)
		return modeExpanded
	}

	col := b.column(inner)
	col.summary(e, titleSize, bodySize, ink, daily)
	return modeStandard
}

// compactText writes title and time range on a single line.
func (b *builder) compactText(e calendar.Event, inner draw.Rect, ink string) {
	lh := b.cfg.Card.LineHeight
	size := b.cfg.Card.BodySize
	if size*lh > inner.H {
		size = inner.H / lh
	}
	if size < fontFloor {
		return
	}

	tr := e.Start.Format("15:04") + "-" + e.End.Format("15:04")
	text := styles.Truncate(tr, inner.W, size)
	if avail := inner.W - styles.TextWidth(" "+tr, size); styles.MaxChars(avail, size) >= 3 {
		text = styles.Truncate(e.Title, avail, size) + " " + tr
	}
	if text == "" {
		return
	}
	b.add(draw.Text("card-title", draw.Rect{X: inner.X, Y: inner.Y, W: inner.W, H: size * lh}, text,
		draw.TextStyle{Size: size, Weight: draw.Bold, Color: ink}))
}

// expandedText splits the card into summary, notes and action items.
func (b *builder) expandedText(e calendar.Event, r, inner draw.Rect, ink, stroke string) {
	cc := b.cfg.Card
	rw := (inner.W - 2*regionGap) / 3
	regions := make([]draw.Rect, 3)
	for i := range regions {
		regions[i] = draw.Rect{X: inner.X + float64(i)*(rw+regionGap), Y: inner.Y, W: rw, H: inner.H}
	}
	for _, reg := range regions[1:] {
		x := reg.X - regionGap/2
		b.add(draw.Line("card-divider", x, r.Y+cc.Padding, x, r.Bottom()-cc.Padding, stroke, hairline))
	}

	b.column(regions[0]).summary(e, cc.TitleSize, cc.BodySize, ink, true)

	for i, part := range []struct {
		heading string
		items   []string
	}{
		{"Event Notes", e.Notes},
		{"Action Items", e.ActionItems},
	} {
		col := b.column(regions[i+1])
		if !col.line("card-heading", part.heading, cc.BodySize, draw.Bold, ink) {
			continue
		}
		items := part.items
		if len(items) == 0 {
			items = []string{"None"}
		}
		for _, l := range styles.WrapItems(items, bullet, col.box.W, cc.BodySize, col.room(cc.BodySize)) {
			col.line("card-body", l, cc.BodySize, draw.Regular, ink)
		}
	}
}

// textColumn stacks lines top-down inside box and refuses lines that would
// overflow it.
type textColumn struct {
	b   *builder
	box draw.Rect
	y   float64
}

func (b *builder) column(box draw.Rect) *textColumn {
	return &textColumn{b: b, box: box, y: box.Y}
}

func (c *textColumn) room(size float64) int {
	lh := size * c.b.cfg.Card.LineHeight
	return int((c.box.Bottom() - c.y + 1e-9) / lh)
}

func (c *textColumn) line(role, text string, size float64, w draw.Weight, color string) bool {
	h := size * c.b.cfg.Card.LineHeight
	if c.y+h > c.box.Bottom()+1e-9 {
		return false
	}
	text = styles.Truncate(text, c.box.W, size)
	if text != "" {
		c.b.add(draw.Text(role, draw.Rect{X: c.box.X, Y: c.y, W: c.box.W, H: h}, text,
			draw.TextStyle{Size: size, Weight: w, Color: color}))
	}
	c.y += h
	return true
}

// summary writes the wrapped title, the time line and, on daily cards, the
// status line when there is room.
func (c *textColumn) summary(e calendar.Event, titleSize, bodySize float64, ink string, daily bool) {
	extra := 1
	if daily && e.Status != calendar.StatusNone {
		extra = 2
	}
	bodyH := bodySize * c.b.cfg.Card.LineHeight
	titleRoom := int((c.box.H - float64(extra)*bodyH + 1e-9) / (titleSize * c.b.cfg.Card.LineHeight))
	if titleRoom < 1 {
		titleRoom = 1
		extra = 1
	}
	for _, l := range styles.WrapItems([]string{e.Title}, "", c.box.W, titleSize, titleRoom) {
		c.line("card-title", l, titleSize, draw.Bold, ink)
	}

	tr := e.Start.Format("15:04") + " - " + e.End.Format("15:04")
	if daily {
		tr += fmt.Sprintf(" · %d min", int(e.Duration().Minutes()))
	}
	c.line("card-time", tr, bodySize, draw.Regular, ink)
	if extra == 2 {
		c.line("card-status", e.Status.Label(), bodySize, draw.Regular, ink)
	}
}
