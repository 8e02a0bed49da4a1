package calendar

import (
	"slices"
	"time"
)

// MondayOf returns local midnight of the Monday on or before t, in t's
// location.
func MondayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// Week summarizes the events that start in one Monday-based week.
type Week struct {
	Start    time.Time
	Events   int
	Canceled int
}

// Weeks groups events by the Monday-based week they start in, evaluated in
// loc. The result is ordered by week start.
func Weeks(events []Event, loc *time.Location) []Week {
	byStart := make(map[time.Time]*Week)
	for _, e := range events {
		start := MondayOf(e.In(loc).Start)
		w, ok := byStart[start]
		if !ok {
			w = &Week{Start: start}
			byStart[start] = w
		}
		w.Events++
		if e.Canceled() {
			w.Canceled++
		}
	}
	out := make([]Week, 0, len(byStart))
	for _, w := range byStart {
		out = append(out, *w)
	}
	slices.SortFunc(out, func(a, b Week) int { return a.Start.Compare(b.Start) })
	return out
}
