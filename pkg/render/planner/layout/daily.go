package layout

import (
	"fmt"
	"strings"

	"github.com/matzehuels/weekplan/pkg/render/planner/draw"
)

// Button labels on daily pages.
const (
	LabelOverview = "Weekly Overview"
	LabelPrev     = "< Previous Day"
	LabelNext     = "Next Day >"
)

// navButton is a link button on a daily page.
type navButton struct {
	rect   draw.Rect
	label  string
	target Target
	role   string
}

// RenderDaily lays out one day in a single column with expanded cards.
func (e *Engine) RenderDaily(spec PageSpec) (Result, error) {
	b, err := e.newBuilder(spec)
	if err != nil {
		return Result{}, err
	}
	if spec.Day < 0 || spec.Day >= DaysPerWeek {
		return Result{}, pageError(spec, "day index %d out of range", spec.Day)
	}

	col := b.dayColumns(1)[0]
	drawn := b.visible(spec.Day, spec.Events)
	b.res.Stats = ComputeStats(b.grid, drawn, 1)

	b.border()
	subtitle := appointmentCount(len(drawn))
	if titles := b.allDay(spec.Day, spec.Events); len(titles) > 0 {
		subtitle += " · All day: " + strings.Join(titles, ", ")
	}
	b.header(spec.Date().Format("Monday, January 2, 2006"), subtitle, b.pc.ButtonWidth+buttonInset)
	b.statsBand(b.res.Stats)
	b.legend(drawn)
	b.timeGrid([]draw.Rect{col}, FreeSlots(b.grid, drawn))
	b.placeCards(spec.Day, col, drawn, true)
	for _, nb := range b.navButtons() {
		b.button(nb.rect, nb.label, nb.target, nb.role)
	}
	return b.res, nil
}

func appointmentCount(n int) string {
	if n == 1 {
		return "1 appointment"
	}
	return fmt.Sprintf("%d appointments", n)
}

// navButtons returns the header overview button and the footer buttons.
// Prev is omitted on the first day and next on the last.
func (b *builder) navButtons() []navButton {
	w, h := b.pc.ButtonWidth, b.pc.ButtonHeight
	if w <= 0 || h <= 0 {
		return nil
	}
	left := b.pc.ContentLeft() + buttonInset
	right := b.pc.ContentLeft() + b.pc.ContentWidth() - buttonInset - w
	center := b.pc.ContentLeft() + (b.pc.ContentWidth()-w)/2
	headY := b.pc.Margin + (b.pc.HeaderHeight-h)/2
	footY := b.grid.Bottom() + (b.pc.FooterHeight-h)/2

	out := []navButton{{draw.Rect{X: left, Y: headY, W: w, H: h}, LabelOverview, Overview(), RoleOverview}}
	if b.pc.FooterHeight < h {
		return out
	}
	d := b.spec.Day
	if d > 0 {
		out = append(out, navButton{draw.Rect{X: left, Y: footY, W: w, H: h}, LabelPrev, DayTarget(d - 1), RolePrev})
	}
	out = append(out, navButton{draw.Rect{X: center, Y: footY, W: w, H: h}, LabelOverview, Overview(), RoleOverview})
	if d < DaysPerWeek-1 {
		out = append(out, navButton{draw.Rect{X: right, Y: footY, W: w, H: h}, LabelNext, DayTarget(d + 1), RoleNext})
	}
	return out
}
