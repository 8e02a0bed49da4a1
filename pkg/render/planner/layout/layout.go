package layout

import (
	"fmt"
	"time"

	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/render/planner/config"
	"github.com/matzehuels/weekplan/pkg/render/planner/draw"
)

// DaysPerWeek is the number of daily pages in a document.
const DaysPerWeek = 7

// Kind is the page variant.
type Kind string

const (
	Weekly Kind = "weekly"
	Daily  Kind = "daily"
)

// PageSpec describes one page to render.
type PageSpec struct {
	Kind        Kind
	Orientation config.Orientation
	Width       float64
	Height      float64
	// Week holds the local midnight of every day of the week, in order.
	Week []time.Time
	// Day is the index into Week covered by a daily page, -1 for the
	// weekly page.
	Day int
	// Events relevant to the page. Events outside the page's days are
	// ignored.
	Events []calendar.Event
}

// NewWeeklySpec returns the overview spec for week.
func NewWeeklySpec(cfg config.LayoutConfig, week []time.Time, events []calendar.Event) PageSpec {
	return PageSpec{
		Kind:        Weekly,
		Orientation: cfg.Weekly.Orientation,
		Width:       cfg.Weekly.Width,
		Height:      cfg.Weekly.Height,
		Week:        week,
		Day:         -1,
		Events:      events,
	}
}

// NewDailySpec returns the spec for day d of week.
func NewDailySpec(cfg config.LayoutConfig, week []time.Time, d int, events []calendar.Event) PageSpec {
	return PageSpec{
		Kind:        Daily,
		Orientation: cfg.Daily.Orientation,
		Width:       cfg.Daily.Width,
		Height:      cfg.Daily.Height,
		Week:        week,
		Day:         d,
		Events:      events,
	}
}

// Date returns the day a daily page covers, or the first day of the week.
func (s PageSpec) Date() time.Time {
	if s.Day >= 0 && s.Day < len(s.Week) {
		return s.Week[s.Day]
	}
	if len(s.Week) > 0 {
		return s.Week[0]
	}
	return time.Time{}
}

// TargetKind distinguishes anchor destinations.
type TargetKind string

const (
	TargetOverview TargetKind = "overview"
	TargetDay      TargetKind = "day"
)

// Target is an unresolved link destination.
type Target struct {
	Kind TargetKind `json:"kind"`
	Day  int        `json:"day"`
}

// Overview returns the target of the weekly page.
func Overview() Target { return Target{Kind: TargetOverview, Day: -1} }

// DayTarget returns the target of the daily page for day d.
func DayTarget(d int) Target { return Target{Kind: TargetDay, Day: d} }

func (t Target) String() string {
	if t.Kind == TargetOverview {
		return "overview"
	}
	return fmt.Sprintf("day %d", t.Day)
}

// Anchor roles.
const (
	RoleDayHeader = "day-header"
	RoleOverview  = "overview"
	RolePrev      = "prev"
	RoleNext      = "next"
)

// Anchor is a clickable chrome element with its local target.
type Anchor struct {
	Rect   draw.Rect
	Target Target
	Role   string
}

// Card is the placed rectangle of one event.
type Card struct {
	EventID   string
	Day       int
	Rect      draw.Rect
	Lane      int
	LaneCount int
	Compact   bool
	Expanded  bool
}

// Result is a rendered page.
type Result struct {
	Spec    PageSpec
	Ops     []draw.Op
	Anchors []Anchor
	Cards   []Card
	Stats   Stats
	// Diagnostics are page-local: their Page field is -1 until the caller
	// knows the page index.
	Diagnostics []errors.Diagnostic
	Degraded    bool
}

// DayOf returns the index of the day in week that contains t, in the
// location of week[0], or -1.
func DayOf(week []time.Time, t time.Time) int {
	if len(week) == 0 {
		return -1
	}
	y, m, d := t.In(week[0].Location()).Date()
	for i, day := range week {
		dy, dm, dd := day.Date()
		if dy == y && dm == m && dd == d {
			return i
		}
	}
	return -1
}

// Covers returns the indexes of the days in week an event is listed on: the
// day a timed event starts, or every day an all-day event spans.
func Covers(week []time.Time, e calendar.Event) []int {
	if !e.AllDay {
		if d := DayOf(week, e.Start); d >= 0 {
			return []int{d}
		}
		return nil
	}
	if len(week) == 0 {
		return nil
	}
	e = e.In(week[0].Location())
	var out []int
	for i, day := range week {
		if !day.Before(e.Start) && day.Before(e.End) {
			out = append(out, i)
		}
	}
	return out
}

// Week returns the seven local midnights starting at the day of start.
// Days are built from calendar dates, so weeks crossing a DST change still
// start every day at midnight.
func Week(start time.Time) []time.Time {
	y, m, d := start.Date()
	loc := start.Location()
	week := make([]time.Time, DaysPerWeek)
	for i := range week {
		week[i] = time.Date(y, m, d+i, 0, 0, 0, 0, loc)
	}
	return week
}
