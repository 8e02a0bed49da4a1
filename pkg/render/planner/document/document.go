package document

import (
	"strconv"
	"time"

	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/render/planner/config"
	"github.com/matzehuels/weekplan/pkg/render/planner/draw"
	"github.com/matzehuels/weekplan/pkg/render/planner/layout"
	"github.com/matzehuels/weekplan/pkg/render/planner/links"
)

// Document is an ordered, linked set of planner pages.
type Document struct {
	// ID is stable for a given week start and event set.
	ID          string              `json:"id"`
	WeekStart   time.Time           `json:"week_start"`
	Pages       []Page              `json:"pages"`
	Diagnostics []errors.Diagnostic `json:"diagnostics,omitempty"`
}

// Page is one rendered page with its resolved links.
type Page struct {
	Index       int                `json:"index"`
	Kind        layout.Kind        `json:"kind"`
	Day         int                `json:"day"`
	Date        time.Time          `json:"date"`
	Title       string             `json:"title"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Orientation config.Orientation `json:"orientation"`
	Ops         []draw.Op          `json:"ops"`
	Links       []links.Region     `json:"links"`
	Cards       []layout.Card      `json:"cards,omitempty"`
	Stats       layout.Stats       `json:"stats"`
	Degraded    bool               `json:"degraded,omitempty"`
}

// Overview returns the weekly page.
func (d *Document) Overview() Page { return d.Pages[links.OverviewPage] }

// Day returns the daily page for day index i (0 is the week start).
func (d *Document) Day(i int) Page { return d.Pages[links.DayPage(i)] }

// DegradedPages returns the indices of pages replaced by placeholders.
func (d *Document) DegradedPages() []int {
	var out []int
	for _, p := range d.Pages {
		if p.Degraded {
			out = append(out, p.Index)
		}
	}
	return out
}

// HasErrors reports whether any diagnostic has error severity.
func (d *Document) HasErrors() bool {
	for _, diag := range d.Diagnostics {
		if diag.Severity == errors.SeverityError {
			return true
		}
	}
	return false
}

// Anchor returns the fragment name used for page i in linked outputs.
func Anchor(i int) string { return "page-" + strconv.Itoa(i) }
