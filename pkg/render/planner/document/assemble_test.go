package document

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/render/planner/config"
	"github.com/matzehuels/weekplan/pkg/render/planner/layout"
	"github.com/matzehuels/weekplan/pkg/render/planner/links"
)

var monday = time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)

func ev(id string, day, sh, sm, eh, em int) calendar.Event {
	d := monday.AddDate(0, 0, day)
	return calendar.Event{
		ID:    id,
		Title: "Session " + id,
		Start: d.Add(time.Duration(sh)*time.Hour + time.Duration(sm)*time.Minute),
		End:   d.Add(time.Duration(eh)*time.Hour + time.Duration(em)*time.Minute),
	}
}

func sampleWeek() []calendar.Event {
	return []calendar.Event{
		ev("mon-1", 0, 9, 0, 10, 0),
		ev("mon-2", 0, 9, 30, 10, 30),
		ev("wed", 2, 14, 0, 15, 30),
		ev("sun", 6, 18, 0, 19, 0),
	}
}

func assemble(t *testing.T, a *Assembler, events []calendar.Event) *Document {
	t.Helper()
	doc, err := a.Assemble(context.Background(), events, monday)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	return doc
}

func TestEmptyWeek(t *testing.T) {
	doc := assemble(t, NewAssembler(config.Default()), nil)

	if len(doc.Pages) != links.PageCount {
		t.Fatalf("pages = %d, want %d", len(doc.Pages), links.PageCount)
	}
	if doc.Pages[0].Kind != layout.Weekly {
		t.Errorf("page 0 kind = %s, want weekly", doc.Pages[0].Kind)
	}
	var headers []int
	for _, r := range doc.Overview().Links {
		if r.Role == layout.RoleDayHeader {
			headers = append(headers, r.TargetPageIndex)
		}
	}
	if want := []int{1, 2, 3, 4, 5, 6, 7}; !reflect.DeepEqual(headers, want) {
		t.Errorf("day header targets = %v, want %v", headers, want)
	}
	for d := range layout.DaysPerWeek {
		p := doc.Day(d)
		if p.Kind != layout.Daily || p.Day != d {
			t.Errorf("page %d = %s day %d, want daily day %d", p.Index, p.Kind, p.Day, d)
		}
		if !p.Date.Equal(monday.AddDate(0, 0, d)) {
			t.Errorf("page %d date = %v", p.Index, p.Date)
		}
	}
	if len(doc.Diagnostics) != 0 {
		t.Errorf("diagnostics = %v, want none", doc.Diagnostics)
	}
}

func TestNoDanglingLinks(t *testing.T) {
	doc := assemble(t, NewAssembler(config.Default()), sampleWeek())
	for _, p := range doc.Pages {
		if len(p.Links) == 0 {
			t.Errorf("page %d has no links", p.Index)
		}
		for _, r := range p.Links {
			if r.PageIndex != p.Index {
				t.Errorf("page %d holds region for page %d", p.Index, r.PageIndex)
			}
			if r.TargetPageIndex < 0 || r.TargetPageIndex >= len(doc.Pages) {
				t.Errorf("page %d links to missing page %d", p.Index, r.TargetPageIndex)
			}
		}
	}
}

func TestOutOfWindowEvent(t *testing.T) {
	events := append(sampleWeek(), ev("late", 1, 23, 45, 23, 59))
	doc := assemble(t, NewAssembler(config.Default()), events)

	if n := errors.CountCode(doc.Diagnostics, errors.ErrCodeOutOfWindow); n != 1 {
		t.Fatalf("OUT_OF_WINDOW diagnostics = %d, want 1: %v", n, doc.Diagnostics)
	}
	for _, d := range doc.Diagnostics {
		if d.Code == errors.ErrCodeOutOfWindow && (d.EventID != "late" || d.Page != links.DayPage(1)) {
			t.Errorf("diagnostic = %+v, want event late on page %d", d, links.DayPage(1))
		}
	}
	for _, p := range doc.Pages {
		for _, c := range p.Cards {
			if c.EventID == "late" {
				t.Errorf("page %d draws out-of-window event", p.Index)
			}
		}
	}
}

func TestMalformedEvent(t *testing.T) {
	bad := ev("bad", 3, 11, 0, 10, 0)
	dup := ev("wed", 4, 9, 0, 10, 0)
	events := append(sampleWeek(), bad, dup)
	doc := assemble(t, NewAssembler(config.Default()), events)

	if n := errors.CountCode(doc.Diagnostics, errors.ErrCodeMalformedEvent); n != 2 {
		t.Errorf("MALFORMED_EVENT diagnostics = %d, want 2: %v", n, doc.Diagnostics)
	}
	if got := doc.Overview().Stats.Appointments; got != len(sampleWeek()) {
		t.Errorf("weekly appointments = %d, want %d", got, len(sampleWeek()))
	}
	if n := len(doc.Day(3).Cards); n != 0 {
		t.Errorf("day 3 cards = %d, want 0", n)
	}
	if n := len(doc.Day(0).Cards); n != 2 {
		t.Errorf("day 0 cards = %d, want 2", n)
	}
}

func TestEventOutsideWeek(t *testing.T) {
	events := append(sampleWeek(), ev("next-week", 7, 9, 0, 10, 0))
	doc := assemble(t, NewAssembler(config.Default()), events)
	if n := errors.CountCode(doc.Diagnostics, errors.ErrCodeOutOfWindow); n != 1 {
		t.Errorf("OUT_OF_WINDOW diagnostics = %d, want 1", n)
	}
}

func TestLocalDayPartition(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	start := time.Date(2025, 7, 7, 0, 0, 0, 0, loc)
	// 02:00 UTC on Tuesday is 21:00 Monday local time.
	e := calendar.Event{
		ID:    "evening",
		Title: "Evening call",
		Start: time.Date(2025, 7, 8, 2, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 7, 8, 3, 0, 0, 0, time.UTC),
	}
	doc, err := NewAssembler(config.Default()).Assemble(context.Background(), []calendar.Event{e}, start)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if n := len(doc.Day(0).Cards); n != 1 {
		t.Errorf("monday cards = %d, want 1", n)
	}
	if n := len(doc.Day(1).Cards); n != 0 {
		t.Errorf("tuesday cards = %d, want 0", n)
	}
}

type failingRenderer struct {
	engine *layout.Engine
	day    int
	panic  bool
}

func (r failingRenderer) Render(spec layout.PageSpec) (layout.Result, error) {
	if spec.Kind == layout.Daily && spec.Day == r.day {
		if r.panic {
			panic("geometry exploded")
		}
		return layout.Result{}, errors.New(errors.ErrCodePageRenderFailure, "geometry failed")
	}
	return r.engine.Render(spec)
}

func TestDegradedPage(t *testing.T) {
	for _, panics := range []bool{false, true} {
		cfg := config.Default()
		r := failingRenderer{engine: layout.New(cfg), day: 2, panic: panics}
		doc := assemble(t, NewAssembler(cfg, WithRenderer(r)), sampleWeek())

		if got, want := doc.DegradedPages(), []int{links.DayPage(2)}; !reflect.DeepEqual(got, want) {
			t.Errorf("panic=%v: DegradedPages() = %v, want %v", panics, got, want)
		}
		if !doc.HasErrors() {
			t.Errorf("panic=%v: HasErrors() = false, want true", panics)
		}
		if n := len(doc.Day(2).Links); n != 4 {
			t.Errorf("panic=%v: placeholder links = %d, want 4", panics, n)
		}
		healthy := assemble(t, NewAssembler(cfg), sampleWeek())
		if !reflect.DeepEqual(doc.Day(2).Links, healthy.Day(2).Links) {
			t.Errorf("panic=%v: placeholder links differ from a healthy render", panics)
		}
	}
}

type brokenLinks struct{ engine *layout.Engine }

func (r brokenLinks) Render(spec layout.PageSpec) (layout.Result, error) {
	res, err := r.engine.Render(spec)
	if err == nil && spec.Kind == layout.Weekly {
		res.Anchors[3].Target = layout.DayTarget(8)
	}
	return res, err
}

func TestLinkFailureIsFatal(t *testing.T) {
	cfg := config.Default()
	_, err := NewAssembler(cfg, WithRenderer(brokenLinks{layout.New(cfg)})).Assemble(context.Background(), sampleWeek(), monday)
	if !errors.Is(err, errors.ErrCodeLinkResolutionFailure) {
		t.Fatalf("Assemble() error = %v, want LINK_RESOLUTION_FAILURE", err)
	}
	le, ok := err.(*errors.LinkError)
	if !ok || le.PageIndex != 0 || le.Anchor != layout.RoleDayHeader {
		t.Errorf("error = %#v, want page 0 day-header", err)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	cfg := config.Default()
	seq := assemble(t, NewAssembler(cfg), sampleWeek())
	again := assemble(t, NewAssembler(cfg), sampleWeek())
	par := assemble(t, NewAssembler(cfg, WithParallel(4)), sampleWeek())

	if !reflect.DeepEqual(seq, again) {
		t.Error("two sequential runs differ")
	}
	if !reflect.DeepEqual(seq, par) {
		t.Error("parallel run differs from sequential run")
	}

	shuffled := sampleWeek()
	shuffled[0], shuffled[3] = shuffled[3], shuffled[0]
	if id := assemble(t, NewAssembler(cfg), shuffled).ID; id != seq.ID {
		t.Errorf("ID depends on event order: %s != %s", id, seq.ID)
	}
	if id := assemble(t, NewAssembler(cfg), sampleWeek()[:2]).ID; id == seq.ID {
		t.Error("ID did not change with the event set")
	}
}

func TestAssembleErrors(t *testing.T) {
	a := NewAssembler(config.Default())
	if _, err := a.Assemble(context.Background(), nil, time.Time{}); !errors.Is(err, errors.ErrCodeInvalidWeek) {
		t.Errorf("zero week start error = %v, want INVALID_WEEK", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.Assemble(ctx, sampleWeek(), monday); err != context.Canceled {
		t.Errorf("canceled context error = %v, want %v", err, context.Canceled)
	}
}

func TestMinimalNavigationConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.LayoutConfig)
	}{
		{"short day headers", func(c *config.LayoutConfig) { c.Weekly.ColumnHeaderHeight = 3 }},
		{"footer fits buttons exactly", func(c *config.LayoutConfig) { c.Daily.FooterHeight = c.Daily.ButtonHeight }},
		{"tiny buttons", func(c *config.LayoutConfig) {
			c.Daily.ButtonWidth = 4
			c.Daily.ButtonHeight = 4
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			for _, events := range [][]calendar.Event{nil, sampleWeek()} {
				doc := assemble(t, NewAssembler(cfg), events)
				var regions []links.Region
				for _, p := range doc.Pages {
					regions = append(regions, p.Links...)
				}
				if err := links.Validate(regions); err != nil {
					t.Errorf("links.Validate() = %v", err)
				}
			}
		})
	}
}

func TestRejectedNavigationConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.LayoutConfig)
	}{
		{"no daily buttons", func(c *config.LayoutConfig) { c.Daily.ButtonWidth = 0 }},
		{"flat day headers", func(c *config.LayoutConfig) { c.Weekly.ColumnHeaderHeight = 2 }},
		{"short footer", func(c *config.LayoutConfig) { c.Daily.FooterHeight = c.Daily.ButtonHeight / 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestAllDayHoliday(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	start := time.Date(2025, 7, 7, 0, 0, 0, 0, loc)
	// Date-only values arrive as UTC midnights.
	holiday := func(id string, y int, m time.Month, d, days int) calendar.Event {
		s := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return calendar.Event{ID: id, Title: "Holiday " + id, Start: s, End: s.AddDate(0, 0, days),
			Source: calendar.SourceHoliday, AllDay: true}
	}
	tests := []struct {
		name     string
		event    calendar.Event
		wantDays []int
	}{
		{"single day", holiday("one", 2025, time.July, 9, 1), []int{2}},
		{"long weekend", holiday("weekend", 2025, time.July, 11, 4), []int{4, 5, 6}},
		{"next week", holiday("later", 2025, time.July, 14, 1), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := []calendar.Event{tt.event, ev("wed", 2, 14, 0, 15, 0)}
			doc, err := NewAssembler(config.Default()).Assemble(context.Background(), events, start)
			if err != nil {
				t.Fatalf("Assemble() error = %v", err)
			}
			wantOut := 0
			if len(tt.wantDays) == 0 {
				wantOut = 1
			}
			if n := errors.CountCode(doc.Diagnostics, errors.ErrCodeOutOfWindow); n != wantOut {
				t.Errorf("OUT_OF_WINDOW diagnostics = %d, want %d", n, wantOut)
			}
			if got := doc.Overview().Stats.Scheduled; got != time.Hour {
				t.Errorf("weekly Scheduled = %v, want %v", got, time.Hour)
			}

			var got []int
			for d := range layout.DaysPerWeek {
				page := doc.Day(d)
				for _, c := range page.Cards {
					if c.EventID == tt.event.ID {
						t.Errorf("day %d draws the all-day event as a card", d)
					}
				}
				for _, op := range page.Ops {
					if op.Role == "subtitle" && strings.Contains(op.Text, tt.event.Title) {
						got = append(got, d)
					}
				}
			}
			if !reflect.DeepEqual(got, tt.wantDays) {
				t.Errorf("days listing the event = %v, want %v", got, tt.wantDays)
			}
		})
	}
}
