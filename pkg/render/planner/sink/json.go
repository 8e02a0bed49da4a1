package sink

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/render/planner/document"
	"github.com/matzehuels/weekplan/pkg/render/planner/draw"
	"github.com/matzehuels/weekplan/pkg/render/planner/links"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	ops bool
}

// WithJSONOps includes every drawing operation. Without it pages carry
// only cards, links and statistics.
func WithJSONOps() JSONOption { return func(r *jsonRenderer) { r.ops = true } }

type jsonOutput struct {
	ID          string              `json:"id"`
	WeekStart   string              `json:"week_start"`
	Pages       []jsonPage          `json:"pages"`
	Diagnostics []errors.Diagnostic `json:"diagnostics,omitempty"`
}

type jsonPage struct {
	Index       int            `json:"index"`
	Kind        string         `json:"kind"`
	Date        string         `json:"date"`
	Title       string         `json:"title"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	Orientation string         `json:"orientation"`
	Degraded    bool           `json:"degraded,omitempty"`
	Stats       jsonStats      `json:"stats"`
	Cards       []jsonCard     `json:"cards,omitempty"`
	Links       []links.Region `json:"links"`
	Ops         []draw.Op      `json:"ops,omitempty"`
}

type jsonStats struct {
	Appointments   int     `json:"appointments"`
	Canceled       int     `json:"canceled"`
	ScheduledHours float64 `json:"scheduled_hours"`
	AvailableHours float64 `json:"available_hours"`
	FreePercent    int     `json:"free_percent"`
}

type jsonCard struct {
	EventID   string    `json:"event_id"`
	Day       int       `json:"day"`
	Rect      draw.Rect `json:"rect"`
	Lane      int       `json:"lane"`
	LaneCount int       `json:"lane_count"`
	Compact   bool      `json:"compact,omitempty"`
	Expanded  bool      `json:"expanded,omitempty"`
}

// RenderJSON serializes doc.
func RenderJSON(doc *document.Document, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		ID:          doc.ID,
		WeekStart:   doc.WeekStart.Format(time.DateOnly),
		Pages:       make([]jsonPage, len(doc.Pages)),
		Diagnostics: doc.Diagnostics,
	}
	for i, p := range doc.Pages {
		jp := jsonPage{
			Index:       p.Index,
			Kind:        string(p.Kind),
			Date:        p.Date.Format(time.DateOnly),
			Title:       p.Title,
			Width:       p.Width,
			Height:      p.Height,
			Orientation: string(p.Orientation),
			Degraded:    p.Degraded,
			Stats: jsonStats{
				Appointments:   p.Stats.Appointments,
				Canceled:       p.Stats.Canceled,
				ScheduledHours: p.Stats.ScheduledHours(),
				AvailableHours: p.Stats.AvailableHours(),
				FreePercent:    p.Stats.FreePercent,
			},
			Links: p.Links,
		}
		if jp.Links == nil {
			jp.Links = []links.Region{}
		}
		for _, c := range p.Cards {
			jp.Cards = append(jp.Cards, jsonCard{
				EventID:   c.EventID,
				Day:       c.Day,
				Rect:      c.Rect,
				Lane:      c.Lane,
				LaneCount: c.LaneCount,
				Compact:   c.Compact,
				Expanded:  c.Expanded,
			})
		}
		if r.ops {
			jp.Ops = p.Ops
		}
		out.Pages[i] = jp
	}
	return json.MarshalIndent(out, "", "  ")
}
