package layout

import (
	"math"
	"time"

	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/render/planner/grid"
)

// Stats summarizes the events drawn on a page.
type Stats struct {
	// Appointments counts every drawn event, canceled ones included.
	Appointments int `json:"appointments"`
	// Canceled counts drawn events with a canceled status.
	Canceled int `json:"canceled"`
	// Scheduled is the visible time booked by non-canceled events.
	Scheduled time.Duration `json:"scheduled"`
	// Available is the window time not booked, never negative.
	Available time.Duration `json:"available"`
	// FreePercent is Available as a rounded percentage of the window.
	FreePercent int `json:"free_percent"`
}

// ComputeStats derives statistics from the events drawn on a page that
// shows days days of g's window. Events are clipped to the window before
// their durations are summed.
func ComputeStats(g grid.Grid, events []calendar.Event, days int) Stats {
	var s Stats
	for _, e := range events {
		s.Appointments++
		if e.Canceled() {
			s.Canceled++
			continue
		}
		s.Scheduled += g.Clip(e.Start, e.End)
	}
	window := g.WindowDuration() * time.Duration(days)
	if window <= 0 {
		return s
	}
	s.Available = max(0, window-s.Scheduled)
	s.FreePercent = int(math.Round(float64(s.Available) * 100 / float64(window)))
	return s
}

// FreeSlots reports, per visible slot of g, whether no event in events
// books it. Canceled events leave their slots free.
func FreeSlots(g grid.Grid, events []calendar.Event) []bool {
	free := make([]bool, g.VisibleSlotCount())
	for i := range free {
		free[i] = true
	}
	for _, e := range events {
		if e.Canceled() {
			continue
		}
		span, err := g.SlotsForInterval(e.Start, e.End)
		if err != nil {
			continue
		}
		for i := span.Start; i < span.EndExclusive; i++ {
			free[i] = false
		}
	}
	return free
}

// ScheduledHours returns Scheduled in hours rounded to one decimal.
func (s Stats) ScheduledHours() float64 { return roundHours(s.Scheduled) }

// AvailableHours returns Available in hours rounded to one decimal.
func (s Stats) AvailableHours() float64 { return roundHours(s.Available) }

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*10) / 10
}
