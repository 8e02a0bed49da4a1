// Package lanes assigns overlapping events to side-by-side lanes.
//
// # Ordering
//
// Events are placed in a fixed order: earlier start first; for equal starts
// the longer event first; for equal starts and durations the smaller ID
// first. The first event in this order always lands in lane 0, so the
// leftmost card of a group of simultaneous events is the longest one.
//
// # Placement
//
// Each lane remembers the end of the last event placed in it. An event goes
// into the leftmost lane whose end is at or before the event's start. If no
// lane is free a new lane is opened.
//
// # Cap
//
// At most Cap lanes are opened per day. When every lane is busy and the cap
// is reached, the event is stacked into the last lane and listed in
// [Assignment.Overflow]. Stacked cards overlap visually; this keeps column
// width bounded instead of shrinking cards without limit.
package lanes

import (
	"cmp"
	"slices"
	"time"

	"github.com/matzehuels/weekplan/pkg/calendar"
)

// Placement is the lane of one event.
type Placement struct {
	Lane      int
	LaneCount int
}

// Assignment is the result of resolving one day.
type Assignment struct {
	// Lanes maps event ID to its placement.
	Lanes map[string]Placement
	// Count is the number of lanes opened. Every placement carries it as
	// LaneCount.
	Count int
	// Overflow lists events stacked into the last lane because of the cap,
	// in placement order.
	Overflow []string
	// Order lists event IDs in placement order.
	Order []string
}

// Resolver assigns lanes. The zero value has no cap.
type Resolver struct {
	Cap int
}

func compare(a, b calendar.Event) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Duration(), a.Duration()); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Sorted returns a copy of events in placement order.
func Sorted(events []calendar.Event) []calendar.Event {
	out := slices.Clone(events)
	slices.SortStableFunc(out, compare)
	return out
}

// Assign places events into lanes. The input is not modified.
func (r Resolver) Assign(events []calendar.Event) Assignment {
	a := Assignment{Lanes: make(map[string]Placement, len(events))}
	if len(events) == 0 {
		return a
	}

	var ends []time.Time
	lane := make(map[string]int, len(events))

	for _, e := range Sorted(events) {
		i := slices.IndexFunc(ends, func(end time.Time) bool { return !end.After(e.Start) })
		switch {
		case i >= 0:
			ends[i] = e.End
		case r.Cap <= 0 || len(ends) < r.Cap:
			ends = append(ends, e.End)
			i = len(ends) - 1
		default:
			i = len(ends) - 1
			if e.End.After(ends[i]) {
				ends[i] = e.End
			}
			a.Overflow = append(a.Overflow, e.ID)
		}
		lane[e.ID] = i
		a.Order = append(a.Order, e.ID)
	}

	a.Count = len(ends)
	for id, l := range lane {
		a.Lanes[id] = Placement{Lane: l, LaneCount: a.Count}
	}
	return a
}
