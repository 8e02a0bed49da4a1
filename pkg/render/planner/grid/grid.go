// Package grid maps wall-clock time onto the planner's vertical time axis.
//
// The visible window is a fixed run of equal slots starting at a fixed
// minute after local midnight. Times are reduced to minutes since midnight
// in the time's own location, so callers control the day boundary by the
// location they put on their times.
//
// Vertical geometry is linear in slots with one exception: [Grid.HeightFor]
// never returns less than the configured minimum card height, so short
// events stay legible at the cost of exact time proportionality.
package grid

import (
	"fmt"
	"math"
	"time"

	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/render/planner/config"
)

// SlotState qualifies a slot index.
type SlotState int

const (
	// InRange means the time falls inside the visible window.
	InRange SlotState = iota
	// Clamped means the time precedes the window and was floored to slot 0.
	Clamped
	// OutOfRange means the time is at or after the end of the window.
	OutOfRange
)

func (s SlotState) String() string {
	switch s {
	case InRange:
		return "in-range"
	case Clamped:
		return "clamped"
	case OutOfRange:
		return "out-of-range"
	}
	return fmt.Sprintf("SlotState(%d)", int(s))
}

// Slot is one row of the time grid.
type Slot struct {
	Index int
	Label string
}

// OnHour reports whether the slot starts on a full hour.
func (s Slot) OnHour() bool { return s.Label != "" && s.Label[len(s.Label)-2:] == "00" }

// Span is a half-open slot range [Start, EndExclusive).
type Span struct {
	Start        int
	EndExclusive int
}

// Len returns the number of slots covered.
func (s Span) Len() int { return s.EndExclusive - s.Start }

// Grid is the time axis of one page. It is a value type and safe to share.
type Grid struct {
	cfg        config.GridConfig
	top        float64
	slotHeight float64
	minSlots   float64
}

// New returns a grid whose first slot row starts at top and whose rows are
// slotHeight tall. minSlots is the minimum card height in slot units.
func New(cfg config.GridConfig, top, slotHeight, minSlots float64) Grid {
	return Grid{cfg: cfg, top: top, slotHeight: slotHeight, minSlots: minSlots}
}

// ForPage builds the grid for a page variant of lc.
func ForPage(lc config.LayoutConfig, page config.PageConfig) Grid {
	return New(lc.Grid, page.GridTop(), page.SlotHeight(lc.Grid.SlotCount), lc.Card.MinSlots)
}

// VisibleSlotCount returns the number of slot rows.
func (g Grid) VisibleSlotCount() int { return g.cfg.SlotCount }

// SlotHeight returns the height of one slot row.
func (g Grid) SlotHeight() float64 { return g.slotHeight }

// Top returns the y coordinate of slot 0.
func (g Grid) Top() float64 { return g.top }

// Bottom returns the y coordinate below the last slot.
func (g Grid) Bottom() float64 { return g.PixelY(g.cfg.SlotCount) }

// Height returns the full grid height.
func (g Grid) Height() float64 { return float64(g.cfg.SlotCount) * g.slotHeight }

// minuteOfDay returns minutes since local midnight, including seconds as a
// fraction so that 10:00:30 sorts after 10:00.
func minuteOfDay(t time.Time) float64 {
	h, m, s := t.Clock()
	return float64(h*60+m) + float64(s)/60 + float64(t.Nanosecond())/6e10
}

// SlotIndex returns the slot containing t.
func (g Grid) SlotIndex(t time.Time) (int, SlotState) {
	off := minuteOfDay(t) - float64(g.cfg.StartMinute)
	if off < 0 {
		return 0, Clamped
	}
	if off >= float64(g.cfg.WindowMinutes()) {
		return -1, OutOfRange
	}
	return int(math.Floor(off / float64(g.cfg.SlotMinutes))), InRange
}

// SlotsForInterval returns the slots touched by [start, end). The end is
// clipped to the window and the span always covers at least one slot. An
// interval that misses the window entirely returns ErrCodeOutOfWindow.
//
// start and end must fall on the same calendar day; end may be the
// following midnight.
func (g Grid) SlotsForInterval(start, end time.Time) (Span, error) {
	startMin := minuteOfDay(start)
	endMin := startMin + end.Sub(start).Minutes()
	winStart := float64(g.cfg.StartMinute)
	winEnd := float64(g.cfg.EndMinute())

	if endMin <= winStart || startMin >= winEnd {
		return Span{}, errors.New(errors.ErrCodeOutOfWindow, "interval %s-%s lies outside the visible window %s-%s",
			start.Format("15:04"), end.Format("15:04"), clock(g.cfg.StartMinute), clock(g.cfg.EndMinute()))
	}

	first, _ := g.SlotIndex(start)
	clipped := math.Min(endMin, winEnd) - winStart
	last := int(math.Ceil(clipped / float64(g.cfg.SlotMinutes)))
	if last <= first {
		last = first + 1
	}
	if last > g.cfg.SlotCount {
		last = g.cfg.SlotCount
	}
	return Span{Start: first, EndExclusive: last}, nil
}

// PixelY returns the y coordinate of the top of slot i. Values outside the
// grid are extrapolated linearly.
func (g Grid) PixelY(i int) float64 { return g.top + float64(i)*g.slotHeight }

// TimeY returns the exact y coordinate of t, clamped to the grid.
func (g Grid) TimeY(t time.Time) float64 {
	off := minuteOfDay(t) - float64(g.cfg.StartMinute)
	off = math.Max(0, math.Min(off, float64(g.cfg.WindowMinutes())))
	return g.top + off/float64(g.cfg.SlotMinutes)*g.slotHeight
}

// MinHeight returns the legibility floor for cards.
func (g Grid) MinHeight() float64 { return g.minSlots * g.slotHeight }

// HeightFor returns the card height for an event running from start to end.
// The linear height is ceil(minutes/slot) slot rows, measured from the
// clamped start. It is raised to the minimum card height and then limited so
// the card never extends below the grid.
func (g Grid) HeightFor(start, end time.Time) float64 {
	top := g.TimeY(start)
	visible := end.Sub(start).Minutes()
	if lead := float64(g.cfg.StartMinute) - minuteOfDay(start); lead > 0 {
		visible -= lead
	}
	if visible < 0 {
		visible = 0
	}
	h := math.Ceil(visible/float64(g.cfg.SlotMinutes)) * g.slotHeight
	h = math.Max(h, g.MinHeight())
	return math.Min(h, g.Bottom()-top)
}

// Slots returns every visible slot with its "15:04" label.
func (g Grid) Slots() []Slot {
	out := make([]Slot, g.cfg.SlotCount)
	for i := range out {
		out[i] = Slot{Index: i, Label: clock(g.cfg.StartMinute + i*g.cfg.SlotMinutes)}
	}
	return out
}

// Clip returns the visible part of [start, end) in minutes. It is zero
// when the interval misses the window.
func (g Grid) Clip(start, end time.Time) time.Duration {
	s := minuteOfDay(start)
	e := s + end.Sub(start).Minutes()
	s = math.Max(s, float64(g.cfg.StartMinute))
	e = math.Min(e, float64(g.cfg.EndMinute()))
	if e <= s {
		return 0
	}
	return time.Duration((e - s) * float64(time.Minute))
}

// WindowDuration returns the length of the visible window.
func (g Grid) WindowDuration() time.Duration {
	return time.Duration(g.cfg.WindowMinutes()) * time.Minute
}

func clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", (minute/60)%24, minute%60)
}
